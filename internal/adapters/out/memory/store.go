// Package memory keeps orders in process memory. It implements the same contracts as the
// postgres adapter, including the version check on update, and backs handler tests and
// local runs without a database.
package memory

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"
)

var ErrNoTransaction = errors.New("no active transaction")

type entry struct {
	seq      uint64
	snapshot order.Snapshot
}

// OrderStore holds committed orders. Writes are applied under a single mutex.
type OrderStore struct {
	mu      sync.RWMutex
	orders  map[kernel.UUID]entry
	nextSeq uint64

	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

// NewOrderStore creates an empty store. publisher may be nil.
func NewOrderStore(publisher ports.OrderEventPublisher, logger *slog.Logger) *OrderStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderStore{
		orders:    make(map[kernel.UUID]entry),
		publisher: publisher,
		logger:    logger.With("component", "memory_store"),
	}
}

// Create implements ports.UnitOfWorkFactory.
func (s *OrderStore) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

func (s *OrderStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	e, ok := s.orders[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return order.RestoreOrder(e.snapshot)
}

// ListByUser returns the user's orders, newest first.
func (s *OrderStore) ListByUser(_ context.Context, userID kernel.UUID) ([]*order.Order, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	entries := s.filter(func(snap order.Snapshot) bool {
		return snap.UserID.IsEqual(userID)
	})
	slices.Reverse(entries)
	return restoreAll(entries)
}

// ListActive returns Placed and InProgress orders, oldest first.
func (s *OrderStore) ListActive(_ context.Context) ([]*order.Order, error) {
	return restoreAll(s.filter(func(snap order.Snapshot) bool {
		return snap.Status.IsActive()
	}))
}

// ListCompleted reads under one read lock, which gives the same single-snapshot view the
// database transaction does.
func (s *OrderStore) ListCompleted(_ context.Context, c ports.CompletedOrdersCriteria) ([]*order.Order, error) {
	return restoreAll(s.filter(func(snap order.Snapshot) bool {
		if snap.Status != order.Completed {
			return false
		}
		if snap.CreatedAt.Before(c.From) || !snap.CreatedAt.Before(c.To) {
			return false
		}
		if c.UserID != nil && !snap.UserID.IsEqual(*c.UserID) {
			return false
		}
		if c.WaiterID != nil && (snap.WaiterID == nil || !snap.WaiterID.IsEqual(*c.WaiterID)) {
			return false
		}
		return true
	}))
}

// filter returns matching entries sorted by createdAt ascending, insertion order breaking ties.
func (s *OrderStore) filter(match func(order.Snapshot) bool) []entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entry, 0)
	for _, e := range s.orders {
		if match(e.snapshot) {
			result = append(result, e)
		}
	}

	slices.SortFunc(result, func(a, b entry) int {
		if c := a.snapshot.CreatedAt.Compare(b.snapshot.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return result
}

// check reports whether w can be applied to the committed state. Callers hold mu.
func (s *OrderStore) check(w write) error {
	current, exists := s.orders[w.snapshot.ID]
	if w.isNew {
		if exists {
			return errs.NewConflictErrorWithCause("order", errors.New("order already exists"))
		}
		return nil
	}
	if !exists {
		return errs.NewObjectNotFoundError("order", w.snapshot.ID.String())
	}
	if current.snapshot.Version != w.snapshot.Version {
		return errs.NewVersionIsInvalidErrorWithCause("order", errors.New("order was modified concurrently"))
	}
	return nil
}

// apply validates and stores all writes atomically, then publishes their events.
func (s *OrderStore) apply(ctx context.Context, writes []write) error {
	s.mu.Lock()
	for _, w := range writes {
		if err := s.check(w); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	for _, w := range writes {
		snapshot := w.snapshot
		if w.isNew {
			s.nextSeq++
			s.orders[snapshot.ID] = entry{seq: s.nextSeq, snapshot: snapshot}
			continue
		}
		current := s.orders[snapshot.ID]
		snapshot.Version++
		s.orders[snapshot.ID] = entry{seq: current.seq, snapshot: snapshot}
	}
	s.mu.Unlock()

	s.publish(ctx, writes)
	return nil
}

func (s *OrderStore) publish(ctx context.Context, writes []write) {
	if s.publisher == nil {
		return
	}
	for _, w := range writes {
		event := order.NewStatusChanged(w.aggregate)
		if err := s.publisher.PublishStatusChanged(ctx, event); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order event",
				"order_id", event.OrderID.String(),
				"status", event.Status.String(),
				"error", err,
			)
		}
	}
}

func restoreAll(entries []entry) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(entries))
	for _, e := range entries {
		o, err := order.RestoreOrder(e.snapshot)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
