package config

// JobStatus enumerates the lifecycle states of a geocode job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusDone       JobStatus = "done"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// ErrMaxRetries is the terminal error message recorded when a job runs out
// of retry budget.
const ErrMaxRetries = "Max retries exceeded"
