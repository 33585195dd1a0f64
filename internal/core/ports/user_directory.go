package ports

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
)

// UserDirectory resolves display names of purchasers and waiters.
type UserDirectory interface {
	// DisplayNames returns the names of the given users. Unknown ids are absent from the map.
	DisplayNames(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]string, error)
}
