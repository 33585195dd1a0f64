package memory

import (
	"context"
	"sync"

	"cafeteria/internal/core/domain/model/kernel"
)

// UserDirectory is a fixed map of display names.
type UserDirectory struct {
	mu    sync.RWMutex
	names map[kernel.UUID]string
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{names: make(map[kernel.UUID]string)}
}

func (d *UserDirectory) Put(id kernel.UUID, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[id] = name
}

func (d *UserDirectory) DisplayNames(_ context.Context, ids []kernel.UUID) (map[kernel.UUID]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make(map[kernel.UUID]string, len(ids))
	for _, id := range ids {
		if name, ok := d.names[id]; ok {
			names[id] = name
		}
	}
	return names, nil
}
