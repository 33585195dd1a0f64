package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cafeteria/internal/adapters/out/memory"
	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, store *memory.OrderStore) *order.Order {
	t.Helper()
	h := commands.NewCreateOrderCommandHandler(storeFactory{store},
		kernel.ClockFunc(func() time.Time { return now.Add(-time.Hour) }))
	created, err := h.Handle(t.Context(), newCreateCommand(t))
	require.NoError(t, err)
	return created
}

func transition(
	ctx context.Context,
	t *testing.T,
	store *memory.OrderStore,
	id, actor kernel.UUID,
	target order.Status,
) (*order.Order, error) {
	t.Helper()
	cmd, err := commands.NewTransitionOrderCommand(id, actor, target)
	require.NoError(t, err)
	return commands.NewTransitionOrderCommandHandler(storeFactory{store}, fixedClock).Handle(ctx, cmd)
}

func TestTransitionOrderCommandHandler_Deliver(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore(nil, nil)
	placed := seedOrder(t, store)
	waiter := kernel.NewUUID()

	delivered, err := transition(ctx, t, store, placed.ID(), waiter, order.Completed)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, delivered.Status())
	assert.True(t, delivered.Waiter().IsEqual(waiter))
	assert.Equal(t, now, delivered.UpdatedAt())

	stored, err := store.Get(ctx, placed.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Completed, stored.Status())
	assert.Equal(t, 2, stored.Version())
}

func TestTransitionOrderCommandHandler_Errors(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore(nil, nil)

	t.Run("unknown order", func(t *testing.T) {
		_, err := transition(ctx, t, store, kernel.NewUUID(), kernel.NewUUID(), order.Completed)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("already finalized", func(t *testing.T) {
		o := seedOrder(t, store)
		_, err := transition(ctx, t, store, o.ID(), kernel.NewUUID(), order.Cancelled)
		require.NoError(t, err)

		_, err = transition(ctx, t, store, o.ID(), kernel.NewUUID(), order.Completed)
		require.ErrorIs(t, err, errs.ErrConflict)

		stored, err := store.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, stored.Status())
	})

	t.Run("target is not final", func(t *testing.T) {
		o := seedOrder(t, store)
		_, err := transition(ctx, t, store, o.ID(), kernel.NewUUID(), order.InProgress)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTransitionOrderCommandHandler_ConcurrentTransitions(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore(nil, nil)
	o := seedOrder(t, store)

	const workers = 20
	var wg sync.WaitGroup
	errsCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		target := order.Completed
		if i%2 == 0 {
			target = order.Cancelled
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewTransitionOrderCommand(o.ID(), kernel.NewUUID(), target)
			if err != nil {
				errsCh <- err
				return
			}
			_, err = commands.NewTransitionOrderCommandHandler(storeFactory{store}, fixedClock).Handle(ctx, cmd)
			errsCh <- err
		}()
	}
	wg.Wait()
	close(errsCh)

	succeeded := 0
	for err := range errsCh {
		if err == nil {
			succeeded++
			continue
		}
		conflict := errors.Is(err, errs.ErrConflict) || errors.Is(err, errs.ErrVersionIsInvalid)
		assert.True(t, conflict, err.Error())
	}
	assert.Equal(t, 1, succeeded)

	stored, err := store.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.True(t, stored.Status().IsTerminal())
	assert.Equal(t, 2, stored.Version())
}

func TestTransitionOrderCommandHandler_UpdateConflictIsNotRetried(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore(nil, nil)
	placed := seedOrder(t, store)
	loaded, err := store.Get(ctx, placed.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, placed.ID()).Return(loaded, nil).Once()
	repo.On("Update", ctx, loaded).Return(errs.NewVersionIsInvalidError("order")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewTransitionOrderCommand(placed.ID(), kernel.NewUUID(), order.Completed)
	require.NoError(t, err)

	_, err = commands.NewTransitionOrderCommandHandler(factory, fixedClock).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	repo.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestStartOrderCommandHandler(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore(nil, nil)
	o := seedOrder(t, store)
	waiter := kernel.NewUUID()
	h := commands.NewStartOrderCommandHandler(storeFactory{store}, fixedClock)

	cmd, err := commands.NewStartOrderCommand(o.ID(), waiter)
	require.NoError(t, err)

	started, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.InProgress, started.Status())
	assert.True(t, started.Waiter().IsEqual(waiter))

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)

	delivered, err := transition(ctx, t, store, o.ID(), kernel.NewUUID(), order.Completed)
	require.NoError(t, err)
	assert.Equal(t, order.Completed, delivered.Status())
}
