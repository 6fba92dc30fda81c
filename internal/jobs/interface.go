package jobs

import (
	"context"
	"errors"
	"time"

	"meeting-summarizer/internal/model"
)

var (
	ErrJobTerminal = errors.New("job already reached a terminal status")
)

// CreateRequest carries the caller-supplied fields for a new job.
type CreateRequest struct {
	AudioRef string
	Title    string
	Notes    string
}

// Manager owns the job lifecycle around the pipeline: creating
// records, handing them to the runner, answering status polls and
// cancelling work that has not finished.
type Manager interface {
	// Create registers a job for an audio file and enqueues it.
	Create(ctx context.Context, req CreateRequest) (*model.Job, error)
	// Get returns the full job record.
	Get(ctx context.Context, id string) (*model.Job, error)
	// Status returns the polling projection of the job.
	Status(ctx context.Context, id string) (*model.StatusView, error)
	// List returns every known job, newest first.
	List(ctx context.Context) ([]*model.Job, error)
	// Cancel marks a non-terminal job failed with a cancelled stage.
	Cancel(ctx context.Context, id string) error
	// StalePending returns pending jobs whose record has not advanced
	// within olderThan. These indicate the queue dropped or never
	// received the job.
	StalePending(ctx context.Context, olderThan time.Duration) ([]*model.Job, error)
}
