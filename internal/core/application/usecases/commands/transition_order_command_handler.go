package commands

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler completes or cancels orders.
//
// Errors:
//   - errs.ObjectNotFoundError for an unknown order
//   - errs.ConflictError when the order is already finalized
//   - errs.ValueIsInvalidError when the target is not final
//   - errs.VersionIsInvalidError when a concurrent writer won
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Finalize(cmd.ActorID(), cmd.Target(), h.clock.Now())
	})
}
