package queries

import (
	"errors"
	"time"

	"cafeteria/internal/core/domain/model/billing"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
	"cafeteria/internal/pkg/guard"
)

var (
	ErrGetMonthlyBillQueryIsNotConstructed = errors.New(
		"GetMonthlyBillQuery must be created via NewGetMonthlyBillQuery constructor",
	)
)

// GetMonthlyBillQuery asks for the bill of one month, optionally narrowed to a purchaser
// and/or the waiter who last handled the order. A nil year or month means the current one
// in the billing timezone.
type GetMonthlyBillQuery struct {
	year     *int
	month    *int
	userID   *kernel.UUID
	waiterID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetMonthlyBillQuery(year, month *int, userID, waiterID *kernel.UUID) (GetMonthlyBillQuery, error) {
	q := GetMonthlyBillQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setYear(year),
		q.setMonth(month),
		q.setUserID(userID),
		q.setWaiterID(waiterID),
	); err != nil {
		return GetMonthlyBillQuery{}, err
	}

	return q, nil
}

func (q GetMonthlyBillQuery) Validate() error {
	return q.guard.Validate(ErrGetMonthlyBillQueryIsNotConstructed)
}

func (q GetMonthlyBillQuery) UserID() *kernel.UUID {
	return q.userID
}

func (q GetMonthlyBillQuery) WaiterID() *kernel.UUID {
	return q.waiterID
}

// Period resolves the requested month, filling gaps from now.
func (q GetMonthlyBillQuery) Period(now time.Time, location *time.Location) (billing.Period, error) {
	current := billing.PeriodOf(now, location)

	year, month := current.Year(), int(current.Month())
	if q.year != nil {
		year = *q.year
	}
	if q.month != nil {
		month = *q.month
	}

	return billing.NewPeriod(year, month, current.Location())
}

func (q *GetMonthlyBillQuery) setYear(year *int) error {
	if year == nil {
		return nil
	}
	if *year < billing.MinYear || *year > billing.MaxYear {
		return errs.NewValueIsOutOfRangeError("year", *year, billing.MinYear, billing.MaxYear)
	}
	q.year = year
	return nil
}

func (q *GetMonthlyBillQuery) setMonth(month *int) error {
	if month == nil {
		return nil
	}
	if *month < int(time.January) || *month > int(time.December) {
		return errs.NewValueIsOutOfRangeError("month", *month, int(time.January), int(time.December))
	}
	q.month = month
	return nil
}

func (q *GetMonthlyBillQuery) setUserID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("userId", err)
	}
	q.userID = id
	return nil
}

func (q *GetMonthlyBillQuery) setWaiterID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("waiterId", err)
	}
	q.waiterID = id
	return nil
}
