package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meeting-summarizer/internal/model"
	"meeting-summarizer/internal/retry"
	"meeting-summarizer/internal/store"
	"meeting-summarizer/internal/summarizer"
	"meeting-summarizer/internal/transcriber"
)

// maxErrorMessageLen bounds what gets persisted on a failed job.
const maxErrorMessageLen = 500

// Process runs the full pipeline for one job:
//
//	pending -> transcribing -> summarizing -> completed
//
// with failed reachable from every non-terminal state. Every
// terminating path writes a terminal or advancing status before
// returning. A job already claimed by another run is a no-op.
func (p *implPipeline) Process(ctx context.Context, jobID string) error {
	job, err := p.store.Get(ctx, jobID)
	if err != nil {
		return fmt.Errorf("load job %s: %w", jobID, err)
	}
	if job.Status != model.StatusPending {
		p.logger.Warn(ctx, "Job %s is already %s, skipping", jobID, job.Status)
		return nil
	}

	// Claim. The conditional write guarantees exactly one concurrent
	// run advances this record.
	job.Status = model.StatusTranscribing
	if err := p.store.UpdateIf(ctx, job, model.StatusPending); err != nil {
		if errors.Is(err, store.ErrClaimConflict) {
			p.logger.Warn(ctx, "Job %s claimed by another run, skipping", jobID)
			return nil
		}
		return fmt.Errorf("claim job %s: %w", jobID, err)
	}

	start := time.Now()
	p.logger.Info(ctx, "Processing job %s: %s", job.ID, job.AudioRef)

	var outcome *transcriber.Outcome
	err = p.policy.Do(ctx, func() error {
		var trErr error
		outcome, trErr = p.transcriber.Transcribe(ctx, job.AudioRef)
		return trErr
	})
	if err != nil {
		stage := model.StageTranscription
		if ctx.Err() != nil {
			stage = model.StageCancelled
		}
		p.fail(ctx, job, model.StatusTranscribing, stage, err)
		return fmt.Errorf("transcribe job %s: %w", job.ID, err)
	}

	p.logger.Info(ctx, "Job %s transcribed: %d words, %d characters",
		job.ID, outcome.WordCount, len(outcome.Text))

	job.TranscriptText = outcome.Text
	job.TranscriptWords = outcome.WordCount
	job.TranscriptLanguage = outcome.Language
	job.DurationSeconds = outcome.DurationSeconds
	job.FileSizeBytes = outcome.FileSizeBytes
	job.Status = model.StatusSummarizing
	if err := p.store.UpdateIf(ctx, job, model.StatusTranscribing); err != nil {
		if errors.Is(err, store.ErrClaimConflict) {
			p.logger.Warn(ctx, "Job %s was cancelled externally, discarding transcript", job.ID)
			return nil
		}
		p.fail(ctx, job, model.StatusTranscribing, model.StageTranscription, retry.Infrastructure(err))
		return fmt.Errorf("persist transcript for job %s: %w", job.ID, err)
	}

	var summary *model.Summary
	err = p.policy.Do(ctx, func() error {
		var smErr error
		summary, smErr = p.summarizer.Summarize(ctx, job.TranscriptText)
		return smErr
	})
	if err != nil {
		if ctx.Err() != nil {
			p.fail(ctx, job, model.StatusSummarizing, model.StageCancelled, err)
			return fmt.Errorf("summarize job %s: %w", job.ID, err)
		}
		// A degraded summary beats losing the transcript: only
		// persistence failures may fail the job at this stage.
		p.logger.Warn(ctx, "Summarization failed for job %s, using fallback summary: %v", job.ID, err)
		summary = summarizer.Fallback()
	}

	job.Summary = summary
	job.Status = model.StatusCompleted
	if err := p.store.UpdateIf(ctx, job, model.StatusSummarizing); err != nil {
		if errors.Is(err, store.ErrClaimConflict) {
			p.logger.Warn(ctx, "Job %s was cancelled externally, discarding summary", job.ID)
			return nil
		}
		p.fail(ctx, job, model.StatusSummarizing, model.StageSummarization, retry.Infrastructure(err))
		return fmt.Errorf("persist summary for job %s: %w", job.ID, err)
	}

	p.logger.Info(ctx, "Job %s completed in %s", job.ID, time.Since(start).Round(time.Millisecond))
	return nil
}

// fail records a terminal failure. The write is conditional on the
// status the store currently holds for this run, so an externally
// cancelled job is never overwritten.
func (p *implPipeline) fail(ctx context.Context, job *model.Job, from model.Status, stage string, cause error) {
	// A failed record carries no summary, and no transcript unless one
	// was already committed with the summarizing transition.
	job.Summary = nil
	if from == model.StatusTranscribing {
		job.TranscriptText = ""
		job.TranscriptWords = 0
		job.TranscriptLanguage = ""
		job.DurationSeconds = 0
		job.FileSizeBytes = 0
	}
	job.Status = model.StatusFailed
	job.ErrorStage = stage
	job.ErrorMessage = truncate(cause.Error(), maxErrorMessageLen)

	// The failure must be recorded even when the run's context is gone.
	wctx := context.WithoutCancel(ctx)
	if err := p.store.UpdateIf(wctx, job, from); err != nil {
		if errors.Is(err, store.ErrClaimConflict) {
			p.logger.Warn(ctx, "Job %s already terminal, not overwriting with %s failure", job.ID, stage)
			return
		}
		p.logger.Error(ctx, "Failed to record %s failure for job %s: %v", stage, job.ID, err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
