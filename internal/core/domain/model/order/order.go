package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order that bypassed NewOrder and RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// InitialVersion is the version of a freshly placed order.
const InitialVersion = 1

// Order is the aggregate root of a cafeteria purchase on credit.
//
// Order follows these invariants:
//   - Has a valid id and purchaser
//   - Holds at least one line item
//   - totalCost equals the sum of line subtotals
//   - Only Placed orders have no waiter
//   - version grows by one with every persisted change
type Order struct {
	id        kernel.UUID
	userID    kernel.UUID
	waiterID  *kernel.UUID
	items     []LineItem
	totalCost kernel.Money
	status    Status
	createdAt time.Time
	updatedAt time.Time
	version   int

	isConstructed bool
}

// Snapshot is the full persisted state of an Order. Storage adapters build one from their
// records and pass it to RestoreOrder.
type Snapshot struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	WaiterID  *kernel.UUID
	Items     []LineItem
	TotalCost kernel.Money
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// NewOrder places a new order for userID. The total is computed from items; there is no
// way to supply it.
//
// Example:
//
//	item, _ := order.NewLineItem(productID, "Espresso", price, 2)
//	o, err := order.NewOrder(kernel.NewUUID(), userID, []order.LineItem{item}, clock.Now())
func NewOrder(id, userID kernel.UUID, items []LineItem, now time.Time) (*Order, error) {
	now = now.UTC()
	o := &Order{
		status:        Placed,
		createdAt:     now,
		updatedAt:     now,
		version:       InitialVersion,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an Order from storage and re-checks every invariant, including
// that the stored total still matches the line items.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		createdAt:     s.CreatedAt.UTC(),
		updatedAt:     s.UpdatedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setUserID(s.UserID),
		o.setItems(s.Items),
		o.setStatus(s.Status, s.WaiterID),
		o.setVersion(s.Version),
	); err != nil {
		return nil, err
	}

	if !o.totalCost.IsEqual(s.TotalCost) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"totalCost", fmt.Errorf("stored %s does not match line items %s", s.TotalCost, o.totalCost),
		)
	}

	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// User returns the purchaser.
func (o *Order) User() kernel.UUID {
	return o.userID
}

// Waiter returns the staff member behind the last transition, nil while Placed.
func (o *Order) Waiter() *kernel.UUID {
	if o.waiterID == nil {
		return nil
	}
	id := *o.waiterID
	return &id
}

// Items returns a copy of the line items in order.
func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

func (o *Order) TotalCost() kernel.Money {
	return o.totalCost
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version is the version the order was read at. Repositories write conditionally on it.
func (o *Order) Version() int {
	return o.version
}

// Snapshot exports the current state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:        o.id,
		UserID:    o.userID,
		WaiterID:  o.Waiter(),
		Items:     o.Items(),
		TotalCost: o.totalCost,
		Status:    o.status,
		CreatedAt: o.createdAt,
		UpdatedAt: o.updatedAt,
		Version:   o.version,
	}
}

// Start moves a Placed order to InProgress on behalf of waiterID.
func (o *Order) Start(waiterID kernel.UUID, now time.Time) error {
	if err := waiterID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("waiter", err)
	}

	next, err := o.status.Start()
	if err != nil {
		return err
	}

	o.apply(next, waiterID, now)
	return nil
}

// Finalize moves an active order to Completed or Cancelled on behalf of waiterID.
//
// Errors:
//   - ConflictError when the order is already Completed or Cancelled
//   - ValueIsInvalidError when target is not a final status
func (o *Order) Finalize(waiterID kernel.UUID, target Status, now time.Time) error {
	if err := waiterID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("waiter", err)
	}

	next, err := o.status.Finalize(target)
	if err != nil {
		return err
	}

	o.apply(next, waiterID, now)
	return nil
}

// Deliver finalizes the order as Completed.
func (o *Order) Deliver(waiterID kernel.UUID, now time.Time) error {
	return o.Finalize(waiterID, Completed, now)
}

// Cancel finalizes the order as Cancelled.
func (o *Order) Cancel(waiterID kernel.UUID, now time.Time) error {
	return o.Finalize(waiterID, Cancelled, now)
}

func (o *Order) apply(status Status, waiterID kernel.UUID, now time.Time) {
	o.status = status
	o.waiterID = &waiterID
	o.updatedAt = now.UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	o.userID = userID
	return nil
}

// setItems stores a copy of items and recomputes the total.
func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("order must contain at least one item"))
	}

	for i, item := range items {
		if item.quantity < 1 || item.name == "" {
			return errs.NewValueIsInvalidErrorWithCause(
				"items", fmt.Errorf("item %d must be created via NewLineItem", i),
			)
		}
	}

	total, err := totalOf(items)
	if err != nil {
		return err
	}

	o.items = slices.Clone(items)
	o.totalCost = total
	return nil
}

func (o *Order) setStatus(status Status, waiterID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.validateWaiter(waiterID != nil); err != nil {
		return err
	}
	if waiterID != nil {
		if err := waiterID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("waiter", err)
		}
		id := *waiterID
		o.waiterID = &id
	}
	o.status = status
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < InitialVersion {
		return errs.NewValueIsOutOfRangeError("version", version, InitialVersion, "unbounded")
	}
	o.version = version
	return nil
}
