package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// ApplicationConfiguration contains settings of the tool itself rather
// than of the trie.
type ApplicationConfiguration struct {
	// LogLevel is one of zap levels ("debug", "info", ...).
	LogLevel string `yaml:"LogLevel"`
	// LogEncoding is either "console" or "json".
	LogEncoding string `yaml:"LogEncoding"`
	// LogPath is a file to write logs into, stderr is used if empty.
	LogPath    string  `yaml:"LogPath"`
	Prometheus Metrics `yaml:"Prometheus"`
}

// Metrics configures metrics collection.
type Metrics struct {
	Enabled bool `yaml:"Enabled"`
}

// Validate checks ApplicationConfiguration for consistency.
func (a ApplicationConfiguration) Validate() error {
	if len(a.LogLevel) > 0 {
		if _, err := zapcore.ParseLevel(a.LogLevel); err != nil {
			return fmt.Errorf("invalid LogLevel: %w", err)
		}
	}
	switch a.LogEncoding {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid LogEncoding: %q", a.LogEncoding)
	}
	return nil
}
