package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"meeting-summarizer/internal/model"
)

// redisStore keeps each record at job:<id> as JSON, with a sorted set
// "jobs" scored by creation time for listing.
type redisStore struct {
	client *redis.Client
}

// NewRedis creates a Store backed by Redis.
func NewRedis(client *redis.Client) Store {
	return &redisStore{client: client}
}

func jobKey(id string) string { return fmt.Sprintf("job:%s", id) }

func (s *redisStore) Create(ctx context.Context, job *model.Job) error {
	key := jobKey(job.ID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check job exists: %w", err)
	}
	if exists > 0 {
		return ErrExists
	}

	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	if job.UpdatedAt.IsZero() {
		job.UpdatedAt = now
	}

	b, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, b, 0)
	pipe.ZAdd(ctx, "jobs", redis.Z{Score: float64(job.CreatedAt.Unix()), Member: job.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store job: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*model.Job, error) {
	val, err := s.client.Get(ctx, jobKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	var job model.Job
	if err := json.Unmarshal(val, &job); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	return &job, nil
}

func (s *redisStore) Update(ctx context.Context, job *model.Job) error {
	key := jobKey(job.ID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check job exists: %w", err)
	}
	if exists == 0 {
		return ErrNotFound
	}

	job.UpdatedAt = time.Now()
	b, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	// Single SET keeps the final state atomic for readers.
	if err := s.client.Set(ctx, key, b, 0).Err(); err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// UpdateIf uses WATCH so the conditional write succeeds for exactly
// one concurrent caller.
func (s *redisStore) UpdateIf(ctx context.Context, job *model.Job, from model.Status) error {
	key := jobKey(job.ID)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return err
		}

		var current model.Job
		if err := json.Unmarshal(val, &current); err != nil {
			return fmt.Errorf("unmarshal job: %w", err)
		}
		if current.Status != from {
			return ErrClaimConflict
		}

		job.UpdatedAt = time.Now()
		b, err := json.Marshal(job)
		if err != nil {
			return fmt.Errorf("marshal job: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		// Another caller modified the record mid-transaction.
		return ErrClaimConflict
	}
	return err
}

func (s *redisStore) List(ctx context.Context) ([]*model.Job, error) {
	ids, err := s.client.ZRevRange(ctx, "jobs", 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	jobs := make([]*model.Job, 0, len(ids))
	for _, id := range ids {
		job, err := s.Get(ctx, id)
		if err == nil {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}
