// Package billing turns completed orders into monthly bills.
package billing

import (
	"fmt"
	"time"

	"cafeteria/internal/pkg/errs"
)

const (
	MinYear = 2000
	MaxYear = 9999
)

// Period is one calendar month in the billing timezone.
type Period struct {
	year     int
	month    time.Month
	location *time.Location
}

// NewPeriod validates year and month. A nil location means UTC.
func NewPeriod(year, month int, location *time.Location) (Period, error) {
	if month < int(time.January) || month > int(time.December) {
		return Period{}, errs.NewValueIsOutOfRangeError("month", month, int(time.January), int(time.December))
	}
	if year < MinYear || year > MaxYear {
		return Period{}, errs.NewValueIsOutOfRangeError("year", year, MinYear, MaxYear)
	}
	if location == nil {
		location = time.UTC
	}
	return Period{year: year, month: time.Month(month), location: location}, nil
}

// PeriodOf returns the month containing now in location.
func PeriodOf(now time.Time, location *time.Location) Period {
	if location == nil {
		location = time.UTC
	}
	local := now.In(location)
	return Period{year: local.Year(), month: local.Month(), location: location}
}

func (p Period) Year() int {
	return p.year
}

func (p Period) Month() time.Month {
	return p.month
}

func (p Period) Location() *time.Location {
	return p.location
}

// Start is the first instant of the month.
func (p Period) Start() time.Time {
	return time.Date(p.year, p.month, 1, 0, 0, 0, 0, p.location)
}

// End is the first instant of the next month. The window is [Start, End).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Contains reports whether t falls inside the window.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start()) && t.Before(p.End())
}

// Previous is the month before p.
func (p Period) Previous() Period {
	start := p.Start().AddDate(0, -1, 0)
	return Period{year: start.Year(), month: start.Month(), location: p.location}
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.year, int(p.month))
}
