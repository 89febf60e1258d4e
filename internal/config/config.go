package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port     string `env:"PORT" env-default:"8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// Prediction service
	ServiceURL     string        `env:"SERVICE_URL" env-default:"http://localhost:8000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"0s"`
	SubmitRate     float64       `env:"SUBMIT_RATE" env-default:"0"`

	// History
	HistoryEnabled bool   `env:"HISTORY_ENABLED" env-default:"true"`
	DatabaseURL    string `env:"DATABASE_URL" env-default:"data/submissions.db"`

	// S3 archive, disabled when S3Endpoint is empty
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID" env-default:"minioadmin"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY" env-default:"minioadmin"`
	S3BucketName      string `env:"S3_BUCKET_NAME" env-default:"submissions"`
	S3UseSSL          bool   `env:"S3_USE_SSL" env-default:"false"`

	// UI
	MaxFileSize    int64         `env:"MAX_FILE_SIZE" env-default:"10485760"`
	SessionTTL     time.Duration `env:"SESSION_TTL" env-default:"30m"`
	RenderMarkdown bool          `env:"RENDER_MARKDOWN" env-default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.ServiceURL == "" {
		return nil, fmt.Errorf("SERVICE_URL is required")
	}
	if cfg.MaxFileSize <= 0 {
		return nil, fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	if cfg.SubmitRate < 0 {
		return nil, fmt.Errorf("SUBMIT_RATE must not be negative")
	}

	return &cfg, nil
}

func (c *Config) ArchiveEnabled() bool {
	return c.S3Endpoint != ""
}
