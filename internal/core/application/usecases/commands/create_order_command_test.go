package commands_test

import (
	"testing"

	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromCents(cents)
	require.NoError(t, err)
	return m
}

func TestNewCreateOrderCommand(t *testing.T) {
	orderID, userID := kernel.NewUUID(), kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(orderID, userID, []commands.OrderLine{
			{ProductID: kernel.NewUUID(), Name: "Espresso", UnitPrice: price(t, 180), Quantity: 2},
		})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.UserID().IsEqual(userID))
		require.Len(t, cmd.Items(), 1)
		assert.Equal(t, "Espresso", cmd.Items()[0].Name())
	})

	t.Run("no items", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(orderID, userID, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("bad lines are reported with their index", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(orderID, userID, []commands.OrderLine{
			{ProductID: kernel.NewUUID(), Name: "Tea", UnitPrice: price(t, 100), Quantity: 1},
			{ProductID: kernel.NewUUID(), Name: "Cake", UnitPrice: price(t, 100), Quantity: 0},
			{ProductID: kernel.NewUUID(), Name: "", UnitPrice: price(t, 100), Quantity: 1},
		})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "items[1]")
		assert.Contains(t, err.Error(), "items[2]")
		assert.NotContains(t, err.Error(), "items[0]")
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(orderID, kernel.UUID{}, []commands.OrderLine{
			{ProductID: kernel.NewUUID(), Name: "Tea", UnitPrice: price(t, 100), Quantity: 1},
		})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value command", func(t *testing.T) {
		require.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
