package pipeline

import (
	"meeting-summarizer/internal/logger"
	"meeting-summarizer/internal/retry"
	"meeting-summarizer/internal/store"
	"meeting-summarizer/internal/summarizer"
	"meeting-summarizer/internal/transcriber"
)

type implPipeline struct {
	store       store.Store
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	policy      retry.Policy
	logger      logger.Logger
}

// New creates a Pipeline. The same retry policy wraps both remote
// calls; it carries no knowledge of either service.
func New(st store.Store, tr transcriber.Transcriber, sm summarizer.Summarizer, policy retry.Policy, log logger.Logger) Pipeline {
	return &implPipeline{
		store:       st,
		transcriber: tr,
		summarizer:  sm,
		policy:      policy,
		logger:      log,
	}
}
