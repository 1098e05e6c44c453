// Package ingestion runs bulk product uploads. A submitted spreadsheet
// becomes a Job; the Pipeline authenticates the seller account, fetches
// the marketplace catalog once, then pushes every row through content
// generation, image lookup, category resolution and submission.
//
// Rows are processed strictly sequentially within a job, with failures
// isolated per row: a bad row is reported and skipped, never aborting
// the batch. Only login or catalog precondition failures abort a job.
// The Manager queues jobs on a worker pool so submission returns
// immediately; outcomes arrive via progress events and job polling.
package ingestion
