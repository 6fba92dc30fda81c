package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"meeting-summarizer/internal/api"
	"meeting-summarizer/internal/config"
	"meeting-summarizer/internal/jobs"
	"meeting-summarizer/internal/logger"
	"meeting-summarizer/internal/pipeline"
	"meeting-summarizer/internal/queue"
	"meeting-summarizer/internal/report"
	"meeting-summarizer/internal/retry"
	"meeting-summarizer/internal/runner"
	"meeting-summarizer/internal/store"
	"meeting-summarizer/internal/summarizer"
	"meeting-summarizer/internal/transcriber"
	"meeting-summarizer/internal/watcher"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	creds := config.LoadCredentials()

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Summarizer")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcription model: %s", cfg.Transcription.Model)
	log.Info(ctx, "Summarization model: %s", cfg.Summarization.Model)
	log.Info(ctx, "Max concurrent jobs: %d", cfg.Workers.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Store and queue: Redis when configured, in-memory otherwise.
	var (
		st store.Store
		q  queue.Queue
	)
	if client := store.NewRedisClient(cfg.Redis); client != nil {
		if err := store.PingRedis(client); err != nil {
			log.Error(ctx, "Redis unreachable at %s: %v", cfg.Redis.Addr, err)
			os.Exit(1)
		}
		st = store.NewRedis(client)
		q = queue.NewRedis(client, "jobs:stream", cfg.Workers.QueueSize)
		log.Info(ctx, "Using Redis at %s", cfg.Redis.Addr)
	} else {
		st = store.NewMemory()
		q = queue.NewMemory(cfg.Workers.QueueSize)
		log.Info(ctx, "Using in-memory store and queue")
	}
	defer q.Close()

	// Initialize services
	tr := transcriber.New(cfg.Transcription, creds.TranscriptionAPIKey, log)
	sm := summarizer.New(cfg.Summarization, creds.GeminiAPIKeys, log)
	policy := retry.NewPolicy(cfg.Retry.MaxAttempts, time.Duration(cfg.Retry.BaseDelaySeconds)*time.Second)
	policy.Jitter = true

	pipe := pipeline.New(st, tr, sm, policy, log)
	run := runner.New(q, pipe, cfg.Workers.MaxConcurrent, log)
	if err := run.Start(ctx); err != nil {
		log.Error(ctx, "Failed to start runner: %v", err)
		os.Exit(1)
	}

	manager := jobs.New(cfg.Transcription, st, run, log)
	reports := report.New(cfg.Paths.Reports, log)

	// Watch the inbox: every dropped audio file becomes a job.
	w, err := watcher.New(cfg.Paths.Inbox, cfg.Transcription.AllowedExtensions,
		func(ctx context.Context, path string) error {
			_, err := manager.Create(ctx, jobs.CreateRequest{AudioRef: path})
			return err
		}, log)
	if err != nil {
		log.Error(ctx, "Failed to create inbox watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			log.Error(ctx, "Inbox watcher stopped: %v", err)
		}
	}()

	// HTTP API
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	api.RegisterHandlers(router, manager, reports)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		log.Info(ctx, "HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server error: %v", err)
			cancel()
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Summarizer is ready!")
	log.Info(ctx, "Inbox: %s", cfg.Paths.Inbox)
	log.Info(ctx, "Reports: %s", cfg.Paths.Reports)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case <-ctx.Done():
	}

	// Graceful shutdown: stop intake, drain running jobs, close HTTP.
	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	run.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP shutdown error: %v", err)
	}

	log.Info(context.Background(), "Meeting Summarizer stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Audio,
		cfg.Paths.Reports,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
