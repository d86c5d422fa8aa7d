package jobs

import (
	"context"
	"log/slog"
	"time"

	"subcontract/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultOverdueScanSchedule runs the scan every five minutes. The first field is seconds.
const DefaultOverdueScanSchedule = "0 */5 * * * *"

// OverdueOrdersQueryHandler is satisfied by both the SQL and the in-memory read side.
type OverdueOrdersQueryHandler interface {
	Handle(ctx context.Context, query queries.GetOverdueOrdersQuery) ([]queries.GetOverdueOrdersQueryResponse, error)
}

// OverdueOrdersJob periodically lists orders whose goods are late coming
// back from the subcontractor and logs one warning per order.
type OverdueOrdersJob struct {
	handler  OverdueOrdersQueryHandler
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOverdueOrdersJob(
	handler OverdueOrdersQueryHandler,
	schedule string,
	now func() time.Time,
	logger *slog.Logger,
) *OverdueOrdersJob {
	if schedule == "" {
		schedule = DefaultOverdueScanSchedule
	}
	return &OverdueOrdersJob{
		handler:  handler,
		schedule: schedule,
		now:      now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "overdue_orders_job"),
	}
}

// Start registers the scan and starts the scheduler. An unparsable schedule
// is returned as an error.
func (j *OverdueOrdersJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue orders job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running scan to finish.
func (j *OverdueOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue orders job stopped")
}

// Run performs one scan and returns the number of overdue orders found.
func (j *OverdueOrdersJob) Run(ctx context.Context) (int, error) {
	asOf := j.now()
	query, err := queries.NewGetOverdueOrdersQuery(asOf)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue orders scan failed", "error", err)
		return 0, err
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue orders scan failed", "error", err)
		return 0, err
	}

	for _, o := range overdue {
		j.logger.WarnContext(ctx, "Order is overdue",
			"order_id", o.ID.String(),
			"number", o.Number,
			"subcontractor", o.SubcontractorName,
			"status", o.Status.String(),
			"expected_return_date", o.ExpectedReturnDate.Format(time.DateOnly),
			"days_overdue", o.DaysOverdue(asOf),
			"remaining_qty", o.RemainingQty,
		)
	}
	return len(overdue), nil
}
