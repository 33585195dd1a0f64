package ports

import (
	"context"

	"cafeteria/internal/core/domain/model/order"
)

// OrderEventPublisher delivers order events to interested parties outside the service.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event order.StatusChanged) error
}
