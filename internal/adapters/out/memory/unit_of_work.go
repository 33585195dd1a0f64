package memory

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
)

type write struct {
	isNew     bool
	snapshot  order.Snapshot
	aggregate *order.Order
}

// UnitOfWork stages writes and applies them to the store on Commit. Without Begin every
// write is applied immediately.
type UnitOfWork struct {
	store  *OrderStore
	active bool
	staged []write
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	u.active = true
	return nil
}

// Commit re-checks every staged write against the committed state; a lost race fails the
// whole commit with errs.VersionIsInvalidError.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	staged := u.staged
	u.active, u.staged = false, nil
	return u.store.apply(ctx, staged)
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.active, u.staged = false, nil
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.stage(ctx, write{isNew: true, snapshot: aggregate.Snapshot(), aggregate: aggregate})
}

// Update fails early when the version is already stale and again at commit if another
// writer got there first.
func (r *orderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.stage(ctx, write{snapshot: aggregate.Snapshot(), aggregate: aggregate})
}

// Get sees the unit of work's own staged writes.
func (r *orderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	for i := len(r.uow.staged) - 1; i >= 0; i-- {
		if w := r.uow.staged[i]; w.snapshot.ID.IsEqual(id) {
			return order.RestoreOrder(w.snapshot)
		}
	}
	return r.uow.store.Get(ctx, id)
}

func (u *UnitOfWork) stage(ctx context.Context, w write) error {
	u.store.mu.RLock()
	err := u.store.check(w)
	u.store.mu.RUnlock()
	if err != nil {
		return err
	}

	if !u.active {
		return u.store.apply(ctx, []write{w})
	}
	u.staged = append(u.staged, w)
	return nil
}
