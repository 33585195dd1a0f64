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
	ErrGetMyOrdersQueryIsNotConstructed = errors.New(
		"GetMyOrdersQuery must be created via NewGetMyOrdersQuery constructor",
	)
)

// GetMyOrdersQuery lists the caller's own orders.
type GetMyOrdersQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetMyOrdersQuery(userID kernel.UUID) (GetMyOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetMyOrdersQuery{}, err
	}
	return GetMyOrdersQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMyOrdersQueryIsNotConstructed)
}

func (q GetMyOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// GetMyOrdersQueryHandler returns a user's orders, newest first.
type GetMyOrdersQueryHandler struct {
	reader ports.OrderReader
}

func NewGetMyOrdersQueryHandler(reader ports.OrderReader) GetMyOrdersQueryHandler {
	return GetMyOrdersQueryHandler{reader: reader}
}

func (h GetMyOrdersQueryHandler) Handle(ctx context.Context, query GetMyOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.ListByUser(ctx, query.UserID())
}
