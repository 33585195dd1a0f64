package http

import (
	"encoding/json"
	"fmt"

	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/domain/model/billing"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toOrderLines(items []servers.NewOrderItem) ([]commands.OrderLine, error) {
	lines := make([]commands.OrderLine, 0, len(items))
	for i, item := range items {
		productID, err := kernel.UUIDFromRaw(item.Product)
		if err != nil {
			return nil, fmt.Errorf("items[%d].product: %w", i, err)
		}
		price, err := kernel.NewMoneyFromDecimal(item.PriceAtPurchase)
		if err != nil {
			return nil, fmt.Errorf("items[%d].priceAtPurchase: %w", i, err)
		}
		lines = append(lines, commands.OrderLine{
			ProductID: productID,
			Name:      item.Name,
			UnitPrice: price,
			Quantity:  item.Quantity,
		})
	}
	return lines, nil
}

func optionalUUID(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromRaw(*id)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func money(m kernel.Money) json.Number {
	return json.Number(m.String())
}

func optionalName(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}

func toOrder(view queries.OrderView) servers.Order {
	o := view.Order

	items := make([]servers.OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, servers.OrderItem{
			Product:         item.ProductID().Bytes(),
			Name:            item.Name(),
			PriceAtPurchase: money(item.UnitPrice()),
			Quantity:        item.Quantity(),
		})
	}

	response := servers.Order{
		Id:        o.ID().Bytes(),
		UserId:    o.User().Bytes(),
		UserName:  optionalName(view.UserName),
		Items:     items,
		TotalCost: money(o.TotalCost()),
		Status:    servers.OrderStatus(o.Status().String()),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
	if waiter := o.Waiter(); waiter != nil {
		waiterID := waiter.Bytes()
		response.WaiterId = &waiterID
		response.WaiterName = optionalName(view.WaiterName)
	}
	return response
}

func toOrders(views []queries.OrderView) []servers.Order {
	response := make([]servers.Order, len(views))
	for i, view := range views {
		response[i] = toOrder(view)
	}
	return response
}

func toMonthlyBill(report billing.Report) servers.MonthlyBill {
	orders := make([]servers.Order, len(report.Orders))
	for i, billed := range report.Orders {
		orders[i] = toOrder(queries.OrderView{
			Order:      billed.Order,
			UserName:   billed.UserName,
			WaiterName: billed.WaiterName,
		})
	}

	return servers.MonthlyBill{
		Year:       report.Period.Year(),
		Month:      int(report.Period.Month()),
		OrderCount: report.OrderCount,
		TotalBill:  money(report.TotalBill),
		Orders:     orders,
	}
}
