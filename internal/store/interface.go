package store

import (
	"context"
	"errors"

	"meeting-summarizer/internal/model"
)

var (
	ErrNotFound = errors.New("job not found")
	ErrExists   = errors.New("job already exists")
	// ErrClaimConflict means the job was not in the expected status,
	// typically because another run already claimed it or an external
	// cancel landed first.
	ErrClaimConflict = errors.New("job not in expected status")
)

// Store persists job records. UpdateIf is the claim primitive: an
// atomic compare-and-swap on status, so exactly one concurrent caller
// can advance a record and a terminal status is never regressed.
type Store interface {
	Create(ctx context.Context, job *model.Job) error
	Get(ctx context.Context, id string) (*model.Job, error)
	// Update overwrites the record and advances UpdatedAt. Readers must
	// never observe a partially written record.
	Update(ctx context.Context, job *model.Job) error
	// UpdateIf overwrites the record only if its current status equals
	// from, failing with ErrClaimConflict otherwise. The write is
	// atomic from a reader's perspective.
	UpdateIf(ctx context.Context, job *model.Job, from model.Status) error
	List(ctx context.Context) ([]*model.Job, error)
}
