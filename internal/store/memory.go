package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"meeting-summarizer/internal/model"
)

type memoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*model.Job
}

// NewMemory creates an in-memory Store. Used in tests and in
// single-process deployments without Redis.
func NewMemory() Store {
	return &memoryStore{jobs: make(map[string]*model.Job)}
}

func (s *memoryStore) Create(ctx context.Context, job *model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return ErrExists
	}
	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	if job.UpdatedAt.IsZero() {
		job.UpdatedAt = now
	}

	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (*model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[id]
	if !exists {
		return nil, ErrNotFound
	}
	// Copy so callers cannot mutate stored state without Update.
	cp := *job
	return &cp, nil
}

func (s *memoryStore) Update(ctx context.Context, job *model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; !exists {
		return ErrNotFound
	}
	job.UpdatedAt = time.Now()

	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

func (s *memoryStore) UpdateIf(ctx context.Context, job *model.Job, from model.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.jobs[job.ID]
	if !exists {
		return ErrNotFound
	}
	if current.Status != from {
		return ErrClaimConflict
	}
	job.UpdatedAt = time.Now()

	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

func (s *memoryStore) List(ctx context.Context) ([]*model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		cp := *job
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
