package transcriber

import (
	"net/http"
	"time"

	"meeting-summarizer/internal/config"
	"meeting-summarizer/internal/logger"
)

type implTranscriber struct {
	cfg    config.TranscriptionConfig
	apiKey string
	client *http.Client
	logger logger.Logger
}

// New creates a Transcriber against an OpenAI-compatible Whisper
// endpoint (Groq, OpenAI, or any /audio/transcriptions server).
func New(cfg config.TranscriptionConfig, apiKey string, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg:    cfg,
		apiKey: apiKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: log,
	}
}
