package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"clementus360/meeting-agent/pipeline"
)

var ErrConfigurationMissing = errors.New("missing required configuration")

// Config is everything the server and the CLI need at startup.
type Config struct {
	APIKey               string
	Port                 string
	Environment          string
	LogLevel             string
	PipelineFile         string
	RunTimeout           time.Duration
	ShutdownTimeout      time.Duration
	MaxTrackedExecutions int
	Pipeline             pipeline.Config
}

const (
	defaultPort            = "3001"
	defaultRunTimeout      = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxTracked      = 1000
)

// Load reads the process environment. Call LoadEnv first to pick up .env.
func Load() (Config, error) {
	cfg := Config{
		APIKey:       strings.TrimSpace(os.Getenv("MEETING_AGENT_API_KEY")),
		Port:         getEnv("PORT", defaultPort),
		Environment:  strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		PipelineFile: os.Getenv("PIPELINE_CONFIG"),
	}

	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("%w: MEETING_AGENT_API_KEY environment variable is required", ErrConfigurationMissing)
	}
	if cfg.Environment != EnvDevelopment && cfg.Environment != EnvProduction {
		return Config{}, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.Environment)
	}

	var err error
	if cfg.RunTimeout, err = durationEnv("RUN_TIMEOUT", defaultRunTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return Config{}, err
	}
	if cfg.MaxTrackedExecutions, err = intEnv("MAX_TRACKED_EXECUTIONS", defaultMaxTracked); err != nil {
		return Config{}, err
	}

	if cfg.Pipeline, err = LoadPipeline(cfg.Environment, cfg.PipelineFile); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration such as 30s, got %q", key, raw)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return n, nil
}
