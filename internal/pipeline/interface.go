package pipeline

import "context"

// Pipeline drives one job through transcription and summarization,
// writing every intermediate and final state to the store. It is the
// only component that writes a failed status.
type Pipeline interface {
	Process(ctx context.Context, jobID string) error
}
