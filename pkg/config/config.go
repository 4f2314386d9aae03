package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the path to the configuration file used when no
// other is specified.
const DefaultConfigPath = "./config/bintrie.yml"

// Version is the version of the tool, set at build time.
var Version string

// Config is the top level struct representing the configuration file.
type Config struct {
	Trie                     TrieConfiguration        `yaml:"Trie"`
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{
		ApplicationConfiguration: ApplicationConfiguration{
			LogLevel:    "info",
			LogEncoding: "console",
		},
	}
}

// LoadFile loads config from the provided path. Unknown fields are an error,
// fields missing from the file keep their Default values.
func LoadFile(configPath string) (Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config '%s' doesn't exist", configPath)
	}

	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}

	return Load(configData)
}

// Load decodes and validates config from YAML data.
func Load(data []byte) (Config, error) {
	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err := decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("config is invalid: %w", err)
	}
	return config, nil
}

// Validate checks Config for consistency.
func (c Config) Validate() error {
	return c.ApplicationConfiguration.Validate()
}
