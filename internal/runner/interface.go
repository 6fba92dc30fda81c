package runner

import "context"

// Runner consumes queued job IDs and dispatches them to the pipeline,
// bounding how many jobs run at once.
type Runner interface {
	// Start begins consuming. It returns once the consumer loop is
	// running; processing stops when ctx is cancelled.
	Start(ctx context.Context) error
	// Submit enqueues a job for processing. It never blocks: a full
	// queue or an already enqueued job is reported as an error.
	Submit(ctx context.Context, jobID string) error
	// Wait blocks until every dispatched job has finished.
	Wait()
}
