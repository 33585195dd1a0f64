// Package orderrepo persists order aggregates with GORM. Line items live in their own
// table keyed by (order_id, position) so item order survives a round trip.
package orderrepo

import (
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row of the orders table.
type OrderDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	WaiterID   *uuid.UUID     `gorm:"type:uuid;index"`
	Items      []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalCents int64          `gorm:"type:bigint;not null"`
	Status     int            `gorm:"type:smallint;not null;index"`
	CreatedAt  time.Time      `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt  time.Time      `gorm:"not null;autoUpdateTime:false"`
	Version    int            `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line item. Name and price are the values captured at order time.
type OrderItemDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position       int       `gorm:"primaryKey;autoIncrement:false"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null"`
	Name           string    `gorm:"type:varchar(255);not null"`
	UnitPriceCents int64     `gorm:"type:bigint;not null"`
	Quantity       int       `gorm:"type:int;not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	var waiterID *uuid.UUID
	if id := o.Waiter(); id != nil {
		raw := id.Bytes()
		waiterID = &raw
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:        orderID,
			Position:       i,
			ProductID:      item.ProductID().Bytes(),
			Name:           item.Name(),
			UnitPriceCents: item.UnitPrice().Cents(),
			Quantity:       item.Quantity(),
		})
	}

	return OrderDTO{
		ID:         orderID,
		UserID:     o.User().Bytes(),
		WaiterID:   waiterID,
		Items:      items,
		TotalCents: o.TotalCost().Cents(),
		Status:     int(o.Status()),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
		Version:    o.Version(),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder; Items must be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromRaw(dto.UserID)
	if err != nil {
		return nil, err
	}

	var waiterID *kernel.UUID
	if dto.WaiterID != nil {
		wID, waiterErr := kernel.UUIDFromRaw(*dto.WaiterID)
		if waiterErr != nil {
			return nil, waiterErr
		}
		waiterID = &wID
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoneyFromCents(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:        id,
		UserID:    userID,
		WaiterID:  waiterID,
		Items:     items,
		TotalCost: total,
		Status:    order.Status(dto.Status),
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		Version:   dto.Version,
	})
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	productID, err := kernel.UUIDFromRaw(dto.ProductID)
	if err != nil {
		return order.LineItem{}, err
	}

	price, err := kernel.NewMoneyFromCents(dto.UnitPriceCents)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.NewLineItem(productID, dto.Name, price, dto.Quantity)
}
