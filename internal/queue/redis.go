package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// redisQueue is backed by a Redis stream (XADD/XREAD). A consumer
// group could be added later for scaling workers across processes.
type redisQueue struct {
	client *redis.Client
	name   string
	maxLen int
}

// NewRedis creates a Queue on the named Redis stream.
func NewRedis(client *redis.Client, name string, maxLen int) Queue {
	if name == "" {
		name = "jobs"
	}
	return &redisQueue{client: client, name: name, maxLen: maxLen}
}

func (q *redisQueue) Publish(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	args := &redis.XAddArgs{Stream: q.name, Values: map[string]any{"data": b}}
	if q.maxLen > 0 {
		args.MaxLen = int64(q.maxLen)
		args.Approx = true
	}
	if err := q.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (q *redisQueue) Consume(ctx context.Context) (<-chan Message, error) {
	out := make(chan Message)

	go func() {
		defer close(out)
		lastID := "$" // only messages published after startup
		for {
			res, err := q.client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{q.name, lastID},
				Block:   0,
				Count:   10,
			}).Result()
			if err != nil {
				// context cancelled or connection closed
				return
			}
			for _, stream := range res {
				for _, entry := range stream.Messages {
					lastID = entry.ID
					raw, ok := entry.Values["data"].(string)
					if !ok {
						continue
					}
					var msg Message
					if err := json.Unmarshal([]byte(raw), &msg); err != nil {
						continue
					}
					select {
					case out <- msg:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out, nil
}

func (q *redisQueue) Close() {}
