package queries_test

import (
	"context"
	"testing"
	"time"

	"cafeteria/internal/adapters/out/memory"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) DisplayNames(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]string, error) {
	args := m.Called(ctx, ids)
	names, _ := args.Get(0).(map[kernel.UUID]string)
	return names, args.Error(1)
}

type fixture struct {
	store     *memory.OrderStore
	directory *memory.UserDirectory
}

func newFixture() fixture {
	return fixture{
		store:     memory.NewOrderStore(nil, nil),
		directory: memory.NewUserDirectory(),
	}
}

// place stores a Placed order costing cents for userID at the given time.
func (f fixture) place(t *testing.T, userID kernel.UUID, cents int64, at time.Time) *order.Order {
	t.Helper()
	price, err := kernel.NewMoneyFromCents(cents)
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), "Meal", price, 1)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), userID, []order.LineItem{item}, at)
	require.NoError(t, err)

	require.NoError(t, f.store.Create().OrderRepository().Add(t.Context(), o))
	return o
}

// finalize moves a stored order to target.
func (f fixture) finalize(t *testing.T, o *order.Order, waiterID kernel.UUID, target order.Status) {
	t.Helper()
	loaded, err := f.store.Get(t.Context(), o.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.Finalize(waiterID, target, loaded.CreatedAt().Add(time.Minute)))
	require.NoError(t, f.store.Create().OrderRepository().Update(t.Context(), loaded))
}
