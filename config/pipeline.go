package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"clementus360/meeting-agent/pipeline"

	"gopkg.in/yaml.v3"
)

// LoadPipeline layers the pipeline settings: built-in defaults, then the
// environment profile, then any field present in the YAML file at path.
func LoadPipeline(environment, path string) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	applyProfile(&cfg, environment)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return pipeline.Config{}, fmt.Errorf("read pipeline config: %w", err)
		}
		if err := decodePipeline(data, &cfg); err != nil {
			return pipeline.Config{}, fmt.Errorf("parse pipeline config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return pipeline.Config{}, fmt.Errorf("invalid pipeline config: %w", err)
	}
	return cfg, nil
}

func decodePipeline(data []byte, cfg *pipeline.Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyProfile(cfg *pipeline.Config, environment string) {
	switch environment {
	case EnvProduction:
		cfg.Update.Delay = 500 * time.Millisecond
		cfg.Update.LLMModeProbability = 0.4
		cfg.Update.MemoryModeProbability = 0.6
		cfg.Update.InProgressProbability = 0.3
	case EnvDevelopment:
		cfg.Transcription.Delay = 500 * time.Millisecond
		cfg.Extraction.Delay = 800 * time.Millisecond
	}
}
