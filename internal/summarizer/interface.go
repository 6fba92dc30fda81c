package summarizer

import (
	"context"

	"meeting-summarizer/internal/model"
)

// Summarizer derives a structured meeting summary from a transcript
// via a remote language-model service. It never mutates job state;
// retries and the fallback decision happen at the pipeline boundary.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (*model.Summary, error)
}
