package report

import (
	"context"

	"meeting-summarizer/internal/model"
)

// Writer renders a completed job into a meeting report document.
type Writer interface {
	// Write renders the job and returns the path of the saved file.
	Write(ctx context.Context, job *model.Job) (string, error)
}
