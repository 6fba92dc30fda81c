package runner

import (
	"context"
	"fmt"

	"meeting-summarizer/internal/queue"
)

func (r *implRunner) Submit(ctx context.Context, jobID string) error {
	r.mu.Lock()
	if _, ok := r.inFlight[jobID]; ok {
		r.mu.Unlock()
		return fmt.Errorf("job %s is already enqueued", jobID)
	}
	r.inFlight[jobID] = struct{}{}
	r.mu.Unlock()

	if err := r.queue.Publish(ctx, queue.Message{JobID: jobID}); err != nil {
		r.release(jobID)
		return fmt.Errorf("enqueue job %s: %w", jobID, err)
	}
	return nil
}

func (r *implRunner) Start(ctx context.Context) error {
	messages, err := r.queue.Consume(ctx)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	go r.consume(ctx, messages)
	r.logger.Info(ctx, "Runner started with %d worker slots", cap(r.limiter))
	return nil
}

func (r *implRunner) consume(ctx context.Context, messages <-chan queue.Message) {
	for {
		select {
		case <-ctx.Done():
			r.logger.Info(ctx, "Runner stopping: %v", ctx.Err())
			return
		case msg, ok := <-messages:
			if !ok {
				r.logger.Info(ctx, "Queue closed, runner stopping")
				return
			}
			select {
			case r.limiter <- struct{}{}:
			case <-ctx.Done():
				r.release(msg.JobID)
				return
			}

			r.wg.Add(1)
			go func(jobID string) {
				defer r.wg.Done()
				defer func() { <-r.limiter }()
				defer r.release(jobID)

				if err := r.pipeline.Process(ctx, jobID); err != nil {
					r.logger.Error(ctx, "Job %s failed: %v", jobID, err)
				}
			}(msg.JobID)
		}
	}
}

func (r *implRunner) Wait() {
	r.wg.Wait()
}

func (r *implRunner) release(jobID string) {
	r.mu.Lock()
	delete(r.inFlight, jobID)
	r.mu.Unlock()
}
