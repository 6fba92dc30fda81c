package queue

import (
	"context"
	"fmt"
	"sync"
)

// memoryQueue never closes ch: a publisher could be mid-send when
// Close lands. Shutdown is signalled through stop alone and the
// consumer goroutine closes its own outbound channel.
type memoryQueue struct {
	ch   chan Message
	stop chan struct{}
	once sync.Once
}

// NewMemory creates a channel-backed queue for single-process deployments.
func NewMemory(bufferSize int) Queue {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &memoryQueue{
		ch:   make(chan Message, bufferSize),
		stop: make(chan struct{}),
	}
}

func (q *memoryQueue) Publish(ctx context.Context, msg Message) error {
	select {
	case <-q.stop:
		return fmt.Errorf("queue is closed")
	default:
	}

	select {
	case q.ch <- msg:
		return nil
	case <-q.stop:
		return fmt.Errorf("queue is closed")
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("queue is full, cannot publish job %s", msg.JobID)
	}
}

func (q *memoryQueue) Consume(ctx context.Context) (<-chan Message, error) {
	out := make(chan Message)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-q.stop:
				return
			case msg := <-q.ch:
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				case <-q.stop:
					return
				}
			}
		}
	}()

	return out, nil
}

func (q *memoryQueue) Close() {
	q.once.Do(func() {
		close(q.stop)
	})
}
