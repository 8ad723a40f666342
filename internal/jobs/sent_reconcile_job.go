package jobs

import (
	"context"
	"log/slog"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/domain/model/invoice"

	"github.com/robfig/cron/v3"
)

const (
	DefaultSentReconcileSchedule = "0 */5 * * * *"
	sentReconcileBatchSize       = 100
)

type UnsentShippedInvoicesLister interface {
	Handle(ctx context.Context, query queries.ListUnsentShippedInvoicesQuery) ([]queries.InvoiceView, error)
}

type SentMarker interface {
	Handle(ctx context.Context, cmd commands.MarkInvoiceSentCommand) bool
}

// SentReconcileJob retries the sent-marker for invoices that stayed unsent after
// their order's projection reached SHIPPED, e.g. when an earlier attempt lost a race.
type SentReconcileJob struct {
	lister   UnsentShippedInvoicesLister
	marker   SentMarker
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSentReconcileJob creates the job. schedule is a six-field cron expression;
// empty selects DefaultSentReconcileSchedule.
func NewSentReconcileJob(
	lister UnsentShippedInvoicesLister,
	marker SentMarker,
	schedule string,
	logger *slog.Logger,
) *SentReconcileJob {
	if schedule == "" {
		schedule = DefaultSentReconcileSchedule
	}

	return &SentReconcileJob{
		lister:   lister,
		marker:   marker,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "sent_reconcile_job"),
	}
}

// Start schedules the job.
func (j *SentReconcileJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Sent reconcile job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *SentReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Sent reconcile job stopped")
}

// Run performs one pass and returns how many invoices were marked sent.
func (j *SentReconcileJob) Run(ctx context.Context) int {
	query, err := queries.NewListUnsentShippedInvoicesQuery(sentReconcileBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Sent reconcile job failed", "error", err)
		return 0
	}

	candidates, err := j.lister.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Sent reconcile job failed", "error", err)
		return 0
	}

	marked := 0
	for _, view := range candidates {
		hint, restoreErr := invoice.RestoreInvoice(view.ID, view.OrderID, view.ObjectKey, view.SentAt, view.CreatedAt)
		if restoreErr != nil {
			j.logger.ErrorContext(ctx, "skipping unreadable invoice",
				"invoice_id", view.ID.String(),
				"order_id", view.OrderID.String(),
				"error", restoreErr,
			)
			continue
		}

		cmd, cmdErr := commands.NewMarkInvoiceSentCommand(view.OrderID, hint)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "skipping invoice", "order_id", view.OrderID.String(), "error", cmdErr)
			continue
		}

		if j.marker.Handle(ctx, cmd) {
			marked++
		}
	}

	if len(candidates) > 0 {
		j.logger.InfoContext(ctx, "Sent reconcile pass finished",
			"candidates", len(candidates),
			"marked", marked,
		)
	}
	return marked
}
