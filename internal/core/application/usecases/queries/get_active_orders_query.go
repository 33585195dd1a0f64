package queries

import (
	"context"
	"errors"

	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery is the waiters' work queue: every Placed or InProgress order.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryHandler returns active orders oldest first, with purchaser names.
type GetActiveOrdersQueryHandler struct {
	reader    ports.OrderReader
	directory ports.UserDirectory
}

func NewGetActiveOrdersQueryHandler(reader ports.OrderReader, directory ports.UserDirectory) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{reader: reader, directory: directory}
}

func (h GetActiveOrdersQueryHandler) Handle(ctx context.Context, query GetActiveOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	names, err := lookupNames(ctx, h.directory, orders)
	if err != nil {
		return nil, err
	}

	return toViews(orders, names), nil
}
