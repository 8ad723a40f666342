package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs of the invoice service.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sentReconcileJob *SentReconcileJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	lister UnsentShippedInvoicesLister,
	marker SentMarker,
	sentReconcileSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sentReconcileJob: NewSentReconcileJob(lister, marker, sentReconcileSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sentReconcileJob.Start(); err != nil {
		return fmt.Errorf("failed to start sent reconcile job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sentReconcileJob.Stop()
}
