package queue

import "context"

// Message is the unit of work handed to the runner.
type Message struct {
	JobID string `json:"job_id"`
}

// Queue decouples job submission from execution. Publish must not
// block the caller; Consume delivers messages until the queue closes
// or the context is cancelled.
type Queue interface {
	Publish(ctx context.Context, msg Message) error
	Consume(ctx context.Context) (<-chan Message, error)
	Close()
}
