package transcriber

import "context"

// Outcome is the result of one successful transcription.
type Outcome struct {
	Text            string
	WordCount       int
	Language        string
	DurationSeconds int
	FileSizeBytes   int64
}

// Transcriber converts a stored audio payload to text via a remote
// speech-to-text service. It never mutates job state; retries happen at
// the pipeline boundary.
type Transcriber interface {
	Transcribe(ctx context.Context, audioRef string) (*Outcome, error)
}
