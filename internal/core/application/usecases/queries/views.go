// Package queries contains read-only operations over orders.
package queries

import (
	"context"
	"fmt"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
)

// OrderView is an order with the display names of its purchaser and waiter.
// Names are empty when the directory does not know the user.
type OrderView struct {
	Order      *order.Order
	UserName   string
	WaiterName string
}

// lookupNames fetches the names of every purchaser and waiter of orders in one call.
func lookupNames(ctx context.Context, directory ports.UserDirectory, orders []*order.Order) (map[kernel.UUID]string, error) {
	if len(orders) == 0 {
		return map[kernel.UUID]string{}, nil
	}

	seen := make(map[kernel.UUID]struct{}, len(orders))
	ids := make([]kernel.UUID, 0, len(orders))
	collect := func(id kernel.UUID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	for _, o := range orders {
		collect(o.User())
		if waiter := o.Waiter(); waiter != nil {
			collect(*waiter)
		}
	}

	names, err := directory.DisplayNames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve display names: %w", err)
	}
	return names, nil
}

func toViews(orders []*order.Order, names map[kernel.UUID]string) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		view := OrderView{Order: o, UserName: names[o.User()]}
		if waiter := o.Waiter(); waiter != nil {
			view.WaiterName = names[*waiter]
		}
		views = append(views, view)
	}
	return views
}
