package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SourcePaths []string // hcl files or directories
	OutPath     string   // MessagePack export, empty to skip

	LogFormat string
	LogLevel  string

	// ServeAddr is the query server listen address; empty disables it.
	ServeAddr string

	PublishURL       string
	PublishNamespace string
	PublishTimeout   time.Duration
	// PublishInsecure skips TLS certificate verification for PublishURL.
	PublishInsecure bool
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.SourcePaths) == 0 {
		return nil, errors.New("at least one source path is required")
	}
	for _, p := range cfg.SourcePaths {
		if p == "" {
			return nil, errors.New("source paths cannot be empty")
		}
	}
	if cfg.PublishTimeout < 0 {
		return nil, fmt.Errorf("publish timeout cannot be negative, got %s", cfg.PublishTimeout)
	}
	if cfg.PublishURL == "" && cfg.PublishNamespace != "" {
		return nil, errors.New("publish namespace requires a publish URL")
	}
	if cfg.PublishURL == "" && cfg.PublishInsecure {
		return nil, errors.New("publish insecure requires a publish URL")
	}
	return &cfg, nil
}
