package commands

import (
	"errors"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
	"cafeteria/internal/pkg/guard"
)

var (
	ErrStartOrderCommandIsNotConstructed = errors.New(
		"StartOrderCommand must be created via NewStartOrderCommand constructor",
	)
)

// StartOrderCommand moves a Placed order to InProgress.
type StartOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartOrderCommand(orderID, actorID kernel.UUID) (StartOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return StartOrderCommand{}, err
	}
	if err := actorID.Validate(); err != nil {
		return StartOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	return StartOrderCommand{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c StartOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
}

func (c StartOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c StartOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}
