package queries

import (
	"context"
	"errors"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/guard"
)

var (
	ErrGetOrderByIDQueryIsNotConstructed = errors.New(
		"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
	)
)

type GetOrderByIDQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderByIDQuery(orderID kernel.UUID) (GetOrderByIDQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderByIDQuery{}, err
	}
	return GetOrderByIDQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

func (q GetOrderByIDQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderByIDQueryHandler returns one order with purchaser and waiter names, or
// errs.ObjectNotFoundError.
type GetOrderByIDQueryHandler struct {
	reader    ports.OrderReader
	directory ports.UserDirectory
}

func NewGetOrderByIDQueryHandler(reader ports.OrderReader, directory ports.UserDirectory) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{reader: reader, directory: directory}
}

func (h GetOrderByIDQueryHandler) Handle(ctx context.Context, query GetOrderByIDQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	orders := []*order.Order{o}
	names, err := lookupNames(ctx, h.directory, orders)
	if err != nil {
		return OrderView{}, err
	}

	return toViews(orders, names)[0], nil
}
