package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"meeting-summarizer/internal/retry"
)

// whisperResponse is the verbose_json shape of the transcription API.
type whisperResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// Transcribe validates the audio payload and sends it to the remote
// Whisper endpoint. Validation failures and credential problems are
// permanent; network and server failures are transient.
func (t *implTranscriber) Transcribe(ctx context.Context, audioRef string) (*Outcome, error) {
	if t.apiKey == "" {
		return nil, retry.AuthConfig(fmt.Errorf("transcription API key not configured"))
	}
	size, err := t.validate(audioRef)
	if err != nil {
		return nil, err
	}

	t.logger.Info(ctx, "Sending file to transcription API: %s", filepath.Base(audioRef))

	req, err := t.buildRequest(ctx, audioRef)
	if err != nil {
		return nil, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, retry.Transient(fmt.Errorf("transcription request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.Transient(fmt.Errorf("read transcription response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, body)
	}

	var wr whisperResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return nil, retry.Transient(fmt.Errorf("decode transcription response: %w", err))
	}
	text := strings.TrimSpace(wr.Text)
	if text == "" {
		return nil, retry.Transient(fmt.Errorf("transcription returned empty text"))
	}

	outcome := &Outcome{
		Text:            text,
		WordCount:       len(strings.Fields(text)),
		Language:        wr.Language,
		DurationSeconds: int(wr.Duration),
		FileSizeBytes:   size,
	}
	t.logger.Info(ctx, "Transcription completed: %d words, language=%s", outcome.WordCount, outcome.Language)
	return outcome, nil
}

// validate checks the payload exists, is within the API size limit and
// carries an allowed extension. All violations are permanent. Returns
// the payload size for reporting.
func (t *implTranscriber) validate(audioRef string) (int64, error) {
	info, err := os.Stat(audioRef)
	if err != nil {
		return 0, retry.InvalidInput(fmt.Errorf("audio file not found: %s", audioRef))
	}
	if info.IsDir() {
		return 0, retry.InvalidInput(fmt.Errorf("path is not a file: %s", audioRef))
	}
	if info.Size() > t.cfg.MaxFileSizeBytes {
		return 0, retry.InvalidInput(fmt.Errorf(
			"file size (%.2f MB) exceeds limit (%.0f MB)",
			float64(info.Size())/(1024*1024),
			float64(t.cfg.MaxFileSizeBytes)/(1024*1024),
		))
	}

	ext := strings.ToLower(filepath.Ext(audioRef))
	for _, allowed := range t.cfg.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return info.Size(), nil
		}
	}
	return 0, retry.InvalidInput(fmt.Errorf(
		"unsupported file format: %s (supported: %s)",
		ext, strings.Join(t.cfg.AllowedExtensions, ", "),
	))
}

func (t *implTranscriber) buildRequest(ctx context.Context, audioRef string) (*http.Request, error) {
	f, err := os.Open(audioRef)
	if err != nil {
		return nil, retry.InvalidInput(fmt.Errorf("open audio file: %w", err))
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(audioRef))
	if err != nil {
		return nil, retry.Transient(fmt.Errorf("build multipart: %w", err))
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, retry.Transient(fmt.Errorf("copy audio payload: %w", err))
	}
	_ = w.WriteField("model", t.cfg.Model)
	_ = w.WriteField("response_format", "verbose_json")
	if err := w.Close(); err != nil {
		return nil, retry.Transient(fmt.Errorf("finish multipart: %w", err))
	}

	url := strings.TrimSuffix(t.cfg.BaseURL, "/") + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, retry.Transient(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}

func classifyStatus(code int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	err := fmt.Errorf("transcription API returned %d: %s", code, msg)

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return retry.AuthConfig(err)
	case code == http.StatusBadRequest || code == http.StatusRequestEntityTooLarge ||
		code == http.StatusUnsupportedMediaType || code == http.StatusUnprocessableEntity:
		return retry.InvalidInput(err)
	default:
		// 408, 429 and 5xx are worth retrying.
		return retry.Transient(err)
	}
}
