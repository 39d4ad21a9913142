package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Shubham-550/strfem/pkg/validation"
)

// SnapshotConfig controls model snapshot persistence
type SnapshotConfig struct {
	Dir      string `yaml:"dir"`
	Compress bool   `yaml:"compress"`
}

// Config is the builder configuration loaded from YAML
type Config struct {
	// Precision is the number of decimals coordinates are rounded to
	// before canonicalization. The degeneracy epsilon is 10^-precision.
	Precision int `yaml:"precision"`

	LogLevel        string         `yaml:"log_level"`
	AuditBufferSize int            `yaml:"audit_buffer_size"`
	Snapshot        SnapshotConfig `yaml:"snapshot"`
}

// Default returns the configuration used when no file is supplied
func Default() Config {
	return Config{
		Precision:       6,
		LogLevel:        "INFO",
		AuditBufferSize: 1024,
		Snapshot: SnapshotConfig{
			Dir:      "./data",
			Compress: true,
		},
	}
}

// Load reads a YAML configuration file, applying defaults for
// anything the file leaves unset.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the configuration values
func (c Config) Validate() error {
	req := &validation.ConfigRequest{
		Precision:       c.Precision,
		AuditBufferSize: c.AuditBufferSize,
	}
	if err := validation.ValidateConfig(req); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
