package billing

import (
	"fmt"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"
)

// BilledOrder is a completed order with display names resolved.
type BilledOrder struct {
	Order      *order.Order
	UserName   string
	WaiterName string
}

// Report is the bill of one period.
type Report struct {
	Period     Period
	OrderCount int
	TotalBill  kernel.Money
	Orders     []BilledOrder
}

// NewReport sums orders into a report. Every order must be Completed and created inside
// the period; names maps user ids to display names and may miss entries.
func NewReport(period Period, orders []*order.Order, names map[kernel.UUID]string) (Report, error) {
	report := Report{
		Period:    period,
		TotalBill: kernel.Zero,
		Orders:    make([]BilledOrder, 0, len(orders)),
	}

	for _, o := range orders {
		if o.Status() != order.Completed {
			return Report{}, errs.NewValueIsInvalidErrorWithCause(
				"orders", fmt.Errorf("order %s is %s, only completed orders are billed", o.ID(), o.Status()),
			)
		}
		if !period.Contains(o.CreatedAt()) {
			return Report{}, errs.NewValueIsInvalidErrorWithCause(
				"orders", fmt.Errorf("order %s is outside %s", o.ID(), period),
			)
		}

		total, err := report.TotalBill.Add(o.TotalCost())
		if err != nil {
			return Report{}, err
		}
		report.TotalBill = total

		billed := BilledOrder{Order: o, UserName: names[o.User()]}
		if waiter := o.Waiter(); waiter != nil {
			billed.WaiterName = names[*waiter]
		}
		report.Orders = append(report.Orders, billed)
	}

	report.OrderCount = len(report.Orders)
	return report, nil
}
