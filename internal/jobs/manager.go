package jobs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"meeting-summarizer/internal/model"
	"meeting-summarizer/internal/store"
)

func (m *implManager) Create(ctx context.Context, req CreateRequest) (*model.Job, error) {
	if req.AudioRef == "" {
		return nil, fmt.Errorf("audio reference is required")
	}
	if err := m.checkExtension(req.AudioRef); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		base := filepath.Base(req.AudioRef)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	now := time.Now()
	job := &model.Job{
		ID:        uuid.New().String(),
		Title:     title,
		AudioRef:  req.AudioRef,
		Notes:     strings.TrimSpace(req.Notes),
		Status:    model.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.store.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	m.logger.Info(ctx, "Created job %s for %s", job.ID, job.AudioRef)

	// A failed enqueue leaves the record pending; the stale sweep
	// surfaces it for resubmission.
	if err := m.runner.Submit(ctx, job.ID); err != nil {
		m.logger.Warn(ctx, "Job %s not enqueued, left pending: %v", job.ID, err)
	}
	return job, nil
}

func (m *implManager) checkExtension(audioRef string) error {
	ext := strings.ToLower(filepath.Ext(audioRef))
	for _, allowed := range m.cfg.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("unsupported file format %q, allowed: %s",
		ext, strings.Join(m.cfg.AllowedExtensions, ", "))
}

func (m *implManager) Get(ctx context.Context, id string) (*model.Job, error) {
	return m.store.Get(ctx, id)
}

func (m *implManager) Status(ctx context.Context, id string) (*model.StatusView, error) {
	job, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := job.View()
	return &view, nil
}

func (m *implManager) List(ctx context.Context) ([]*model.Job, error) {
	return m.store.List(ctx)
}

// Cancel moves a non-terminal job to failed. The write is conditional
// on the status just read, so it can lose a race with the pipeline; a
// few re-reads cover the window.
func (m *implManager) Cancel(ctx context.Context, id string) error {
	for attempt := 0; attempt < 3; attempt++ {
		job, err := m.store.Get(ctx, id)
		if err != nil {
			return err
		}
		if job.Status.Terminal() {
			return ErrJobTerminal
		}

		from := job.Status
		job.Status = model.StatusFailed
		job.ErrorStage = model.StageCancelled
		job.ErrorMessage = "cancelled by user"
		err = m.store.UpdateIf(ctx, job, from)
		if err == nil {
			m.logger.Info(ctx, "Job %s cancelled (was %s)", id, from)
			return nil
		}
		if !errors.Is(err, store.ErrClaimConflict) {
			return fmt.Errorf("cancel job %s: %w", id, err)
		}
	}
	return fmt.Errorf("cancel job %s: status kept changing", id)
}

func (m *implManager) StalePending(ctx context.Context, olderThan time.Duration) ([]*model.Job, error) {
	all, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().Add(-olderThan)
	var stale []*model.Job
	for _, job := range all {
		if job.Status == model.StatusPending && job.UpdatedAt.Before(cutoff) {
			stale = append(stale, job)
		}
	}
	return stale, nil
}
