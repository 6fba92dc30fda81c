package report

import (
	"meeting-summarizer/internal/logger"
)

type implWriter struct {
	outputDir string
	logger    logger.Logger
}

// New creates a Writer that saves reports under outputDir.
func New(outputDir string, log logger.Logger) Writer {
	return &implWriter{
		outputDir: outputDir,
		logger:    log,
	}
}
