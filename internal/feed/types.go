package feed

import (
	"context"
	"time"

	"github.com/dvloznov/sms-tracker/internal/smsparser"
)

// RawMessage is the tuple a device SMS reader hands us: body text, the
// originating address (sender id or short code), and the receive time.
// ID is the device-assigned message id, when the source has one.
type RawMessage struct {
	ID         string    `json:"id,omitempty"`
	Body       string    `json:"body"`
	Address    string    `json:"address"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// JobStatus is the lifecycle state of a parse job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// ParseJob carries one raw message through the queue and records the
// outcome. Result is set by the handler once parsing succeeds.
type ParseJob struct {
	JobID   string     `json:"job_id"`
	Message RawMessage `json:"message"`

	Status    JobStatus  `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	DoneAt    *time.Time `json:"done_at,omitempty"`

	Error      string `json:"error,omitempty"`
	RetryCount int    `json:"retry_count"`
	MaxRetries int    `json:"max_retries"`

	Result *smsparser.ParsedTransaction `json:"result,omitempty"`
}

// Handler processes a single parse job. A returned error marks the job
// failed and eligible for retry.
type Handler func(ctx context.Context, job *ParseJob) error

// Publisher enqueues parse jobs.
type Publisher interface {
	Publish(ctx context.Context, job *ParseJob) error
	Close() error
}

// Consumer runs jobs from the queue through a handler.
type Consumer interface {
	Start(ctx context.Context, handler Handler) error
	Stop(ctx context.Context) error
}

// JobStore tracks job state. Implementations hold state only for the life
// of the process; durable storage is the host application's concern.
type JobStore interface {
	SaveJob(ctx context.Context, job *ParseJob) error
	GetJob(ctx context.Context, jobID string) (*ParseJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*ParseJob, error)
}

// JobFilter narrows ListJobs results.
type JobFilter struct {
	// Address filters by the originating sender address.
	Address string
	// Status filters by job status.
	Status JobStatus
	// Limit caps the number of results; Offset skips past earlier ones.
	Limit  int
	Offset int
}
