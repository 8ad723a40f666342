// Package jobs provides scheduled background tasks for the invoice service.
//
// Jobs are cron based (github.com/robfig/cron/v3, six-field expressions with seconds).
//
// # Available Jobs
//
// 1. SentReconcileJob - Periodically marks invoices as sent whose order projection
// is already SHIPPED but whose sent marker was never set.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(unsentShippedHandler, markInvoiceSentHandler, cfg.SentReconcileSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The default schedule "0 */5 * * * *" runs every five minutes. A pass handles at most
// one batch of candidates; the rest are picked up by the next pass.
//
// # Error Handling
//
// - A failing listing is logged and the pass ends
// - The sent-marker never reports failures; a candidate it skips is retried next pass
package jobs
