package runner

import (
	"sync"

	"meeting-summarizer/internal/logger"
	"meeting-summarizer/internal/pipeline"
	"meeting-summarizer/internal/queue"
)

type implRunner struct {
	queue    queue.Queue
	pipeline pipeline.Pipeline
	logger   logger.Logger

	limiter chan struct{}
	wg      sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates a Runner that runs at most maxConcurrent jobs at a time.
func New(q queue.Queue, p pipeline.Pipeline, maxConcurrent int, log logger.Logger) Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &implRunner{
		queue:    q,
		pipeline: p,
		logger:   log,
		limiter:  make(chan struct{}, maxConcurrent),
		inFlight: make(map[string]struct{}),
	}
}
