package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths: PathsConfig{
					Inbox: "data/inbox",
					Audio: "data/audio",
				},
			},
			wantErr: false,
		},
		{
			name: "missing inbox",
			config: Config{
				Paths: PathsConfig{
					Audio: "data/audio",
				},
			},
			wantErr: true,
		},
		{
			name: "missing audio dir",
			config: Config{
				Paths: PathsConfig{
					Inbox: "data/inbox",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Paths: PathsConfig{Inbox: "data/inbox", Audio: "data/audio"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Transcription.MaxFileSizeBytes != 25*1024*1024 {
		t.Errorf("MaxFileSizeBytes = %d, want 25 MB", cfg.Transcription.MaxFileSizeBytes)
	}
	if cfg.Transcription.TimeoutSeconds != 300 {
		t.Errorf("Transcription.TimeoutSeconds = %d, want 300", cfg.Transcription.TimeoutSeconds)
	}
	if cfg.Summarization.TimeoutSeconds != 60 {
		t.Errorf("Summarization.TimeoutSeconds = %d, want 60", cfg.Summarization.TimeoutSeconds)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.BaseDelaySeconds != 2 {
		t.Errorf("retry defaults = %d/%d, want 3/2", cfg.Retry.MaxAttempts, cfg.Retry.BaseDelaySeconds)
	}
	if len(cfg.Transcription.AllowedExtensions) == 0 {
		t.Error("AllowedExtensions should default to the whisper allow-list")
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
server:
  port: 9090

paths:
  inbox: "data/inbox"
  audio: "data/audio"

transcription:
  model: "whisper-large-v3"
  timeout_seconds: 120

summarization:
  model: "gemini-2.5-flash"

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Transcription.TimeoutSeconds != 120 {
		t.Errorf("TimeoutSeconds = %d, want 120", cfg.Transcription.TimeoutSeconds)
	}
	if cfg.Paths.Inbox != "data/inbox" {
		t.Errorf("Inbox = %v, want data/inbox", cfg.Paths.Inbox)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("TRANSCRIPTION_API_KEY", " sk-test ")
	t.Setenv("GEMINI_API_KEYS", "key-a, key-b, ,key-c")

	creds := LoadCredentials()
	if creds.TranscriptionAPIKey != "sk-test" {
		t.Errorf("TranscriptionAPIKey = %q", creds.TranscriptionAPIKey)
	}
	if len(creds.GeminiAPIKeys) != 3 {
		t.Fatalf("GeminiAPIKeys = %v, want 3 keys", creds.GeminiAPIKeys)
	}
	if creds.GeminiAPIKeys[1] != "key-b" {
		t.Errorf("second key = %q, want key-b", creds.GeminiAPIKeys[1])
	}
}
