// Package config loads and validates the YAML configuration file that
// drives assessment sessions: which model to question, which test
// definition files to administer, how often, and where results go.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/enneabench/enneabench/internal/llm"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Duration wraps time.Duration so YAML values can be written in the usual
// "30s" / "10m" form.
type Duration time.Duration

// UnmarshalYAML parses a duration string or an integer nanosecond count.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(v)
	default:
		return fmt.Errorf("invalid duration value %v", raw)
	}
	return nil
}

// Std converts to the standard library representation.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// TestFile names one test definition on disk and the answer format its
// parser expects.
type TestFile struct {
	Format string `yaml:"format" validate:"required,oneof=likert forced_choice"`
	Path   string `yaml:"path"   validate:"required"`
}

// RetryConfig mirrors the backend client's retry knobs with YAML-friendly
// durations.
type RetryConfig struct {
	MaxAttempts     int      `yaml:"max_attempts"     validate:"min=1"`
	InitialInterval Duration `yaml:"initial_interval"`
	MaxInterval     Duration `yaml:"max_interval"`
	Multiplier      float64  `yaml:"multiplier"`
	UseJitter       bool     `yaml:"use_jitter"`
}

// BackendConfig configures the questionnaire backend endpoint.
type BackendConfig struct {
	Endpoint      string      `yaml:"endpoint" validate:"required,url"`
	HTTPTimeout   Duration    `yaml:"http_timeout"`
	RedactPrompts bool        `yaml:"redact_prompts"`
	Retry         RetryConfig `yaml:"retry"`
}

// TemporalConfig locates the Temporal service for durable session runs.
type TemporalConfig struct {
	HostPort  string `yaml:"host_port"  validate:"required"`
	Namespace string `yaml:"namespace"  validate:"required"`
	TaskQueue string `yaml:"task_queue" validate:"required"`
}

// LoggingConfig controls the process-wide structured logger.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// SlogLevel maps the configured level name to a slog level.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config is the root configuration document.
type Config struct {
	Model       string         `yaml:"model"         validate:"required"`
	RunsPerTest int            `yaml:"runs_per_test" validate:"min=1"`
	Tests       []TestFile     `yaml:"tests"         validate:"min=1,dive"`
	OutputDir   string         `yaml:"output_dir"    validate:"required"`
	Backend     BackendConfig  `yaml:"backend"`
	Temporal    TemporalConfig `yaml:"temporal"`
	Logging     LoggingConfig  `yaml:"logging"`
}

// Default returns the configuration used when a field is absent from the
// YAML document. Tests and model have no sensible defaults and must be set.
func Default() *Config {
	retry := llm.DefaultRetryConfig()
	return &Config{
		RunsPerTest: 3,
		OutputDir:   "reports",
		Backend: BackendConfig{
			Endpoint:    llm.DefaultEndpoint,
			HTTPTimeout: Duration(10 * time.Minute),
			Retry: RetryConfig{
				MaxAttempts:     retry.MaxAttempts,
				InitialInterval: Duration(retry.InitialInterval),
				MaxInterval:     Duration(retry.MaxInterval),
				Multiplier:      retry.Multiplier,
				UseJitter:       retry.UseJitter,
			},
		},
		Temporal: TemporalConfig{
			HostPort:  "localhost:7233",
			Namespace: "default",
			TaskQueue: "enneabench",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads, decodes, and validates the configuration at path. Absent
// fields keep their defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(raw)
}

// EndpointEnv overrides the backend endpoint when set, taking precedence
// over both the default and the document value.
const EndpointEnv = "ENNEABENCH_ENDPOINT"

// Parse decodes and validates a YAML configuration document.
func Parse(raw []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if endpoint := os.Getenv(EndpointEnv); endpoint != "" {
		cfg.Backend.Endpoint = endpoint
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the document's structural constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ClientConfig translates the backend section into the client package's
// configuration, attaching the given logger.
func (c *Config) ClientConfig(logger *slog.Logger) llm.Config {
	return llm.Config{
		Endpoint:    c.Backend.Endpoint,
		HTTPTimeout: c.Backend.HTTPTimeout.Std(),
		Retry: llm.RetryConfig{
			MaxAttempts:     c.Backend.Retry.MaxAttempts,
			InitialInterval: c.Backend.Retry.InitialInterval.Std(),
			MaxInterval:     c.Backend.Retry.MaxInterval.Std(),
			Multiplier:      c.Backend.Retry.Multiplier,
			UseJitter:       c.Backend.Retry.UseJitter,
		},
		RedactPrompts: c.Backend.RedactPrompts,
		Logger:        logger,
	}
}
