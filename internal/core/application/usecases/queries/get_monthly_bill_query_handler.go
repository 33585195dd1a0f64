package queries

import (
	"context"
	"time"

	"cafeteria/internal/core/domain/model/billing"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/ports"
)

// GetMonthlyBillQueryHandler totals the Completed orders created in a month.
type GetMonthlyBillQueryHandler struct {
	reader    ports.OrderReader
	directory ports.UserDirectory
	clock     kernel.Clock
	location  *time.Location
}

// NewGetMonthlyBillQueryHandler creates the handler; location is the billing timezone and
// defaults to UTC.
func NewGetMonthlyBillQueryHandler(
	reader ports.OrderReader,
	directory ports.UserDirectory,
	clock kernel.Clock,
	location *time.Location,
) GetMonthlyBillQueryHandler {
	if location == nil {
		location = time.UTC
	}
	return GetMonthlyBillQueryHandler{
		reader:    reader,
		directory: directory,
		clock:     clock,
		location:  location,
	}
}

func (h GetMonthlyBillQueryHandler) Handle(ctx context.Context, query GetMonthlyBillQuery) (billing.Report, error) {
	if err := query.Validate(); err != nil {
		return billing.Report{}, err
	}

	period, err := query.Period(h.clock.Now(), h.location)
	if err != nil {
		return billing.Report{}, err
	}

	orders, err := h.reader.ListCompleted(ctx, ports.CompletedOrdersCriteria{
		From:     period.Start(),
		To:       period.End(),
		UserID:   query.UserID(),
		WaiterID: query.WaiterID(),
	})
	if err != nil {
		return billing.Report{}, err
	}

	names, err := lookupNames(ctx, h.directory, orders)
	if err != nil {
		return billing.Report{}, err
	}

	return billing.NewReport(period, orders, names)
}
