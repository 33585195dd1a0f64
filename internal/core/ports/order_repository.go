// Package ports defines the contracts between the core and its adapters: persistence,
// transactions, the user directory and event publication.
package ports

import (
	"context"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
)

// OrderRepository defines the write-side persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a newly placed order. Orders are never deleted.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable fields of an order (status, waiter, updatedAt) on the
	// condition that the stored version still equals aggregate.Version(). On success the
	// stored version is incremented. A stale version yields errs.VersionIsInvalidError and
	// an unknown id errs.ObjectNotFoundError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// CompletedOrdersCriteria selects the orders of a monthly bill.
// From is inclusive and To exclusive.
type CompletedOrdersCriteria struct {
	From     time.Time
	To       time.Time
	UserID   *kernel.UUID
	WaiterID *kernel.UUID
}

// OrderReader is the read side used by queries.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByUser returns the orders of userID, newest first.
	ListByUser(ctx context.Context, userID kernel.UUID) ([]*order.Order, error)

	// ListActive returns Placed and InProgress orders, oldest first.
	ListActive(ctx context.Context) ([]*order.Order, error)

	// ListCompleted returns the Completed orders matching criteria, oldest first, read
	// from a single consistent snapshot.
	ListCompleted(ctx context.Context, criteria CompletedOrdersCriteria) ([]*order.Order, error)
}
