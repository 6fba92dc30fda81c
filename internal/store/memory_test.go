package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"meeting-summarizer/internal/model"
)

func newJob(id string) *model.Job {
	return &model.Job{
		ID:       id,
		AudioRef: "data/audio/" + id + ".mp3",
		Status:   model.StatusPending,
	}
}

func TestMemoryCreateGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if err := s.Create(ctx, newJob("a")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Create(ctx, newJob("a")); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate Create() error = %v, want ErrExists", err)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != model.StatusPending {
		t.Errorf("Status = %v, want pending", got.Status)
	}
	if got.UpdatedAt.IsZero() || got.CreatedAt.IsZero() {
		t.Error("timestamps should be set on create")
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	if err := s.Create(ctx, newJob("a")); err != nil {
		t.Fatal(err)
	}

	first, _ := s.Get(ctx, "a")
	first.Status = model.StatusFailed

	second, _ := s.Get(ctx, "a")
	if second.Status != model.StatusPending {
		t.Error("mutating a returned job should not affect stored state")
	}
}

func TestMemoryUpdateAdvancesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	if err := s.Create(ctx, newJob("a")); err != nil {
		t.Fatal(err)
	}

	job, _ := s.Get(ctx, "a")
	created := job.UpdatedAt

	job.TranscriptText = "hello world"
	job.Status = model.StatusSummarizing
	if err := s.Update(ctx, job); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := s.Get(ctx, "a")
	if got.TranscriptText != "hello world" {
		t.Errorf("TranscriptText = %q", got.TranscriptText)
	}
	if got.UpdatedAt.Before(created) {
		t.Error("UpdatedAt should advance on update")
	}

	if err := s.Update(ctx, newJob("missing")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryUpdateIf(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	if err := s.Create(ctx, newJob("a")); err != nil {
		t.Fatal(err)
	}

	job, _ := s.Get(ctx, "a")
	job.Status = model.StatusTranscribing
	if err := s.UpdateIf(ctx, job, model.StatusPending); err != nil {
		t.Fatalf("UpdateIf() error = %v", err)
	}

	got, _ := s.Get(ctx, "a")
	if got.Status != model.StatusTranscribing {
		t.Errorf("Status = %v, want transcribing", got.Status)
	}

	// Same transition again must conflict: the record is no longer pending.
	stale, _ := s.Get(ctx, "a")
	stale.Status = model.StatusTranscribing
	if err := s.UpdateIf(ctx, stale, model.StatusPending); !errors.Is(err, ErrClaimConflict) {
		t.Errorf("second UpdateIf() error = %v, want ErrClaimConflict", err)
	}

	if err := s.UpdateIf(ctx, newJob("missing"), model.StatusPending); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateIf(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryUpdateIfAtMostOnce(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	if err := s.Create(ctx, newJob("a")); err != nil {
		t.Fatal(err)
	}

	const racers = 16
	var wg sync.WaitGroup
	wins := make(chan struct{}, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job, err := s.Get(ctx, "a")
			if err != nil {
				return
			}
			job.Status = model.StatusTranscribing
			if err := s.UpdateIf(ctx, job, model.StatusPending); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for range wins {
		won++
	}
	if won != 1 {
		t.Errorf("claim winners = %d, want exactly 1", won)
	}
}

func TestMemoryList(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	for _, id := range []string{"a", "b", "c"} {
		if err := s.Create(ctx, newJob(id)); err != nil {
			t.Fatal(err)
		}
	}

	jobs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(jobs) != 3 {
		t.Errorf("len = %d, want 3", len(jobs))
	}
}
