package commands

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
)

// StartOrderCommandHandler records that a waiter began preparing an order.
type StartOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewStartOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) StartOrderCommandHandler {
	return StartOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h StartOrderCommandHandler) Handle(ctx context.Context, cmd StartOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Start(cmd.ActorID(), h.clock.Now())
	})
}
