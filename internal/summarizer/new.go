package summarizer

import (
	"sync"
	"time"

	"meeting-summarizer/internal/config"
	"meeting-summarizer/internal/logger"
)

type implSummarizer struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	timeout    time.Duration
	logger     logger.Logger
}

// New creates a Summarizer that rotates through the supplied Gemini
// API keys when one hits its quota.
func New(cfg config.SummarizationConfig, apiKeys []string, log logger.Logger) Summarizer {
	return &implSummarizer{
		apiKeys: apiKeys,
		model:   cfg.Model,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:  log,
	}
}
