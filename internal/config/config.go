package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Paths         PathsConfig         `yaml:"paths"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Summarization SummarizationConfig `yaml:"summarization"`
	Retry         RetryConfig         `yaml:"retry"`
	Workers       WorkersConfig       `yaml:"workers"`
	Redis         RedisConfig         `yaml:"redis"`
	Logging       LoggingConfig       `yaml:"logging"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type PathsConfig struct {
	Inbox   string `yaml:"inbox"`
	Audio   string `yaml:"audio"`
	Reports string `yaml:"reports"`
}

type TranscriptionConfig struct {
	BaseURL           string   `yaml:"base_url"`
	Model             string   `yaml:"model"`
	TimeoutSeconds    int      `yaml:"timeout_seconds"`
	MaxFileSizeBytes  int64    `yaml:"max_file_size_bytes"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

type SummarizationConfig struct {
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type RetryConfig struct {
	MaxAttempts      int `yaml:"max_attempts"`
	BaseDelaySeconds int `yaml:"base_delay_seconds"`
}

type WorkersConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
	QueueSize     int `yaml:"queue_size"`
}

// RedisConfig is optional. An empty Addr selects the in-memory store
// and queue implementations.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Credentials holds remote-service API keys. They are read from the
// environment once at startup and injected into the service
// constructors, never consulted again at call time.
type Credentials struct {
	TranscriptionAPIKey string
	GeminiAPIKeys       []string
}

// LoadCredentials reads API keys from the environment.
func LoadCredentials() Credentials {
	var keys []string
	for _, k := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return Credentials{
		TranscriptionAPIKey: strings.TrimSpace(os.Getenv("TRANSCRIPTION_API_KEY")),
		GeminiAPIKeys:       keys,
	}
}

func (c *Config) Validate() error {
	if c.Paths.Inbox == "" {
		return fmt.Errorf("paths.inbox is required")
	}
	if c.Paths.Audio == "" {
		return fmt.Errorf("paths.audio is required")
	}

	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Paths.Reports == "" {
		c.Paths.Reports = "data/reports"
	}
	if c.Transcription.BaseURL == "" {
		c.Transcription.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-large-v3"
	}
	if c.Transcription.TimeoutSeconds == 0 {
		c.Transcription.TimeoutSeconds = 300
	}
	if c.Transcription.MaxFileSizeBytes == 0 {
		c.Transcription.MaxFileSizeBytes = 25 * 1024 * 1024
	}
	if len(c.Transcription.AllowedExtensions) == 0 {
		c.Transcription.AllowedExtensions = []string{".mp3", ".mp4", ".mpeg", ".mpga", ".m4a", ".wav", ".webm"}
	}
	if c.Summarization.Model == "" {
		c.Summarization.Model = "gemini-2.5-flash"
	}
	if c.Summarization.TimeoutSeconds == 0 {
		c.Summarization.TimeoutSeconds = 60
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.BaseDelaySeconds == 0 {
		c.Retry.BaseDelaySeconds = 2
	}
	if c.Workers.MaxConcurrent == 0 {
		c.Workers.MaxConcurrent = 2
	}
	if c.Workers.QueueSize == 0 {
		c.Workers.QueueSize = 100
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
