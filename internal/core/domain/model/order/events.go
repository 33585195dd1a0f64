package order

import (
	"time"

	"cafeteria/internal/core/domain/model/kernel"
)

// StatusChanged is published after an order write commits: once on placement and once
// per transition.
type StatusChanged struct {
	OrderID    kernel.UUID
	UserID     kernel.UUID
	WaiterID   *kernel.UUID
	Status     Status
	TotalCost  kernel.Money
	OccurredAt time.Time
}

// NewStatusChanged captures the current state of o.
func NewStatusChanged(o *Order) StatusChanged {
	return StatusChanged{
		OrderID:    o.ID(),
		UserID:     o.User(),
		WaiterID:   o.Waiter(),
		Status:     o.Status(),
		TotalCost:  o.TotalCost(),
		OccurredAt: o.UpdatedAt(),
	}
}
