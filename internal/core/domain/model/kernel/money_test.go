package kernel_test

import (
	"math"
	"testing"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromDecimal(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected int64
	}{
		{"whole amount", "10", 1000},
		{"two decimals", "7.25", 725},
		{"one decimal", "0.5", 50},
		{"zero", "0", 0},
		{"trailing zeros beyond cents", "3.100", 310},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := kernel.NewMoneyFromDecimal(decimal.RequireFromString(tc.input))

			require.NoError(t, err)
			assert.Equal(t, tc.expected, m.Cents())
		})
	}

	t.Run("rejects sub-cent precision", func(t *testing.T) {
		_, err := kernel.NewMoneyFromDecimal(decimal.RequireFromString("1.005"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "more than two decimal places")
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoneyFromDecimal(decimal.RequireFromString("-0.01"))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewMoneyFromCents(t *testing.T) {
	m, err := kernel.NewMoneyFromCents(2700)
	require.NoError(t, err)
	assert.Equal(t, "27.00", m.String())

	_, err = kernel.NewMoneyFromCents(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestMoney_Arithmetic(t *testing.T) {
	coffee, err := kernel.NewMoneyFromCents(1000)
	require.NoError(t, err)
	tea, err := kernel.NewMoneyFromCents(700)
	require.NoError(t, err)

	twoCoffees, err := coffee.Multiply(2)
	require.NoError(t, err)

	total, err := twoCoffees.Add(tea)
	require.NoError(t, err)

	assert.Equal(t, int64(2700), total.Cents())
	assert.True(t, total.Decimal().Equal(decimal.RequireFromString("27")))
	assert.Equal(t, "27.00", total.String())

	t.Run("multiply rejects non-positive quantity", func(t *testing.T) {
		_, err := coffee.Multiply(0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("overflow is reported", func(t *testing.T) {
		big, err := kernel.NewMoneyFromCents(math.MaxInt64)
		require.NoError(t, err)

		_, err = big.Add(tea)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = big.Multiply(2)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestMoney_SummationDoesNotDrift(t *testing.T) {
	dime, err := kernel.NewMoneyFromDecimal(decimal.RequireFromString("0.10"))
	require.NoError(t, err)

	sum := kernel.Zero
	for range 1000 {
		sum, err = sum.Add(dime)
		require.NoError(t, err)
	}

	assert.Equal(t, "100.00", sum.String())
}
