package kernel

import (
	"fmt"
	"math"

	"cafeteria/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const centsExponent = -2

// Money is a non-negative amount kept in cents so that long sums never drift.
type Money struct {
	cents int64
}

// Zero is the additive identity.
var Zero = Money{}

func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", cents, 0, int64(math.MaxInt64))
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromDecimal converts a boundary amount such as 10.5 into cents.
// More than two fractional digits are rejected instead of rounded.
func NewMoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", d.String(), 0, "unbounded")
	}
	if !d.Equal(d.Truncate(-centsExponent)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s has more than two decimal places", d.String()),
		)
	}

	cents := d.Shift(-centsExponent)
	if !cents.LessThanOrEqual(decimal.NewFromInt(math.MaxInt64)) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", d.String(), 0, "too large")
	}
	return Money{cents: cents.IntPart()}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

// Decimal renders the amount for transport, e.g. 2700 cents -> 27.00.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, centsExponent)
}

// String always prints two decimals.
func (m Money) String() string {
	return m.Decimal().StringFixed(-centsExponent)
}

func (m Money) Add(other Money) (Money, error) {
	if m.cents > math.MaxInt64-other.cents {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", "overflow", 0, int64(math.MaxInt64))
	}
	return Money{cents: m.cents + other.cents}, nil
}

// Multiply returns m × quantity; quantity must be positive.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity <= 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32)
	}
	if m.cents != 0 && int64(quantity) > math.MaxInt64/m.cents {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", "overflow", 0, int64(math.MaxInt64))
	}
	return Money{cents: m.cents * int64(quantity)}, nil
}

func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}
