package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/domain/model/billing"
	"cafeteria/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// DefaultBillingSummarySchedule runs at 00:05:00 on the first day of every month.
const DefaultBillingSummarySchedule = "0 5 0 1 * *"

const billingSummaryTimeout = time.Minute

// MonthlyBillHandler computes a monthly report.
type MonthlyBillHandler interface {
	Handle(ctx context.Context, query queries.GetMonthlyBillQuery) (billing.Report, error)
}

// BillingSummaryJob logs the bill of the month preceding each run.
type BillingSummaryJob struct {
	schedule string
	handler  MonthlyBillHandler
	clock    kernel.Clock
	location *time.Location
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewBillingSummaryJob creates the job. schedule is a six-field cron expression.
func NewBillingSummaryJob(
	schedule string,
	handler MonthlyBillHandler,
	clock kernel.Clock,
	location *time.Location,
	logger *slog.Logger,
) *BillingSummaryJob {
	if location == nil {
		location = time.UTC
	}
	return &BillingSummaryJob{
		schedule: schedule,
		handler:  handler,
		clock:    clock,
		location: location,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		logger:   logger.With("component", "billing_summary_job"),
	}
}

// Start schedules the job.
func (j *BillingSummaryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), billingSummaryTimeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Billing summary job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Billing summary job started", "schedule", j.schedule)
	return nil
}

// Run reports the month before the current one in the billing timezone.
func (j *BillingSummaryJob) Run(ctx context.Context) (billing.Report, error) {
	period := billing.PeriodOf(j.clock.Now(), j.location).Previous()
	year, month := period.Year(), int(period.Month())

	query, err := queries.NewGetMonthlyBillQuery(&year, &month, nil, nil)
	if err != nil {
		return billing.Report{}, err
	}

	report, err := j.handler.Handle(ctx, query)
	if err != nil {
		return billing.Report{}, fmt.Errorf("bill %s: %w", period, err)
	}

	j.logger.InfoContext(ctx, "Monthly bill closed",
		"period", report.Period.String(),
		"order_count", report.OrderCount,
		"total_bill", report.TotalBill.String(),
	)
	return report, nil
}

// Stop stops scheduling and waits for a running summary to finish.
func (j *BillingSummaryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Billing summary job stopped")
}
