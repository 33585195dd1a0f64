package order

import (
	"errors"
	"fmt"

	"cafeteria/internal/pkg/errs"
)

var (
	ErrOrderAlreadyFinalized = errors.New("order already finalized")
	ErrOrderAlreadyStarted   = errors.New("order already in progress")
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Placed ──┬──> InProgress ──┬──> Completed
//	         │                 └──> Cancelled
//	         ├──────────────────────> Completed
//	         └──────────────────────> Cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	// Unknown catches uninitialised Status values.
	Unknown Status = iota

	// Placed is the initial status of every new order.
	Placed

	// InProgress means a waiter has started preparing the order.
	InProgress

	// Completed means the order was delivered. Only completed orders are billed.
	Completed

	// Cancelled means the order will not be delivered and is never billed.
	Cancelled
)

var statusNames = map[Status]string{
	Placed:     "Placed",
	InProgress: "InProgress",
	Completed:  "Completed",
	Cancelled:  "Cancelled",
}

// Validate reports statuses read from external sources that are not part of the state machine.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(name string) (Status, error) {
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}

// IsTerminal reports Completed and Cancelled.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsActive reports orders still waiting in the fulfilment queue.
func (s Status) IsActive() bool {
	return s == Placed || s == InProgress
}

// Start transitions Placed to InProgress.
func (s Status) Start() (Status, error) {
	switch {
	case s.IsTerminal():
		return Unknown, errs.NewConflictErrorWithCause("order", ErrOrderAlreadyFinalized)
	case s == InProgress:
		return Unknown, errs.NewConflictErrorWithCause("order", ErrOrderAlreadyStarted)
	case s != Placed:
		return Unknown, s.Validate()
	}
	return InProgress, nil
}

// Finalize transitions an active status to target, which must be Completed or Cancelled.
// A terminal current status is reported before an invalid target.
func (s Status) Finalize(target Status) (Status, error) {
	if s.IsTerminal() {
		return Unknown, errs.NewConflictErrorWithCause("order", ErrOrderAlreadyFinalized)
	}
	if !s.IsActive() {
		return Unknown, s.Validate()
	}
	if !target.IsTerminal() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"target status", fmt.Errorf("%s is not a final status", target),
		)
	}
	return target, nil
}

// validateWaiter checks that only Placed orders lack a waiter.
func (s Status) validateWaiter(hasWaiter bool) error {
	if hasWaiter && s == Placed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%s is not a valid status to have a waiter", s),
		)
	}
	if !hasWaiter && s != Placed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%s is not a valid status to have no waiter", s),
		)
	}
	return nil
}
