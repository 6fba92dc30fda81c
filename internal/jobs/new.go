package jobs

import (
	"meeting-summarizer/internal/config"
	"meeting-summarizer/internal/logger"
	"meeting-summarizer/internal/runner"
	"meeting-summarizer/internal/store"
)

type implManager struct {
	cfg    config.TranscriptionConfig
	store  store.Store
	runner runner.Runner
	logger logger.Logger
}

// New creates a Manager. The transcription config supplies the upload
// constraints so bad files are rejected before a record exists.
func New(cfg config.TranscriptionConfig, st store.Store, r runner.Runner, log logger.Logger) Manager {
	return &implManager{
		cfg:    cfg,
		store:  st,
		runner: r,
		logger: log,
	}
}
