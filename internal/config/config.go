// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers .env, an optional YAML file and LOANSCOPE_* env vars on top.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ScoringURL is the scoring service endpoint that receives ScoringRequests.
	ScoringURL string `koanf:"scoring_url"`

	// ScoringTimeoutMS bounds a single scoring call.
	ScoringTimeoutMS int `koanf:"scoring_timeout_ms"`

	// BatchConcurrency bounds in-flight scoring calls during batch scoring.
	BatchConcurrency int `koanf:"batch_concurrency"`

	// MaxUploadBytes caps the size of an uploaded client dataset.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// StubAddr is the listen address of the stub scoring service.
	StubAddr string `koanf:"stub_addr"`

	// StubLatencyMinMS and StubLatencyMaxMS simulate model latency in the stub.
	StubLatencyMinMS int `koanf:"stub_latency_min_ms"`
	StubLatencyMaxMS int `koanf:"stub_latency_max_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		ScoringURL:       "http://localhost:9090/predict_proba",
		ScoringTimeoutMS: 5_000,
		BatchConcurrency: runtime.NumCPU() * 2,
		MaxUploadBytes:   32 << 20,
		StubAddr:         ":9090",
		StubLatencyMinMS: 80,
		StubLatencyMaxMS: 150,
	}
}

// ScoringTimeout returns ScoringTimeoutMS as a duration.
func (c *Config) ScoringTimeout() time.Duration {
	return time.Duration(c.ScoringTimeoutMS) * time.Millisecond
}

// StubLatency returns the stub latency bounds as durations.
func (c *Config) StubLatency() (time.Duration, time.Duration) {
	return time.Duration(c.StubLatencyMinMS) * time.Millisecond,
		time.Duration(c.StubLatencyMaxMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ScoringURL == "":
		return fmt.Errorf("%w: scoring_url must not be empty", ErrInvalidConfig)
	case c.ScoringTimeoutMS <= 0:
		return fmt.Errorf("%w: scoring_timeout_ms must be positive", ErrInvalidConfig)
	case c.BatchConcurrency <= 0:
		return fmt.Errorf("%w: batch_concurrency must be positive", ErrInvalidConfig)
	case c.MaxUploadBytes <= 0:
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	case c.StubLatencyMinMS < 0 || c.StubLatencyMaxMS < c.StubLatencyMinMS:
		return fmt.Errorf("%w: stub latency range %d..%d", ErrInvalidConfig, c.StubLatencyMinMS, c.StubLatencyMaxMS)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
