/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/bintrie/pkg/config"
	"github.com/nspcc-dev/bintrie/pkg/crypto/hash"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConfigFile is a flag for commands that use configuration file.
var ConfigFile = cli.StringFlag{
	Name:  "config-file",
	Usage: "path to the configuration file (" + config.DefaultConfigPath + " is used if it exists)",
}

// Debug is a flag for commands that allow debug logging.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging (overrides configuration)",
}

// Hash is a flag overriding configured digest algorithm.
var Hash = cli.StringFlag{
	Name:  "hash",
	Usage: "digest algorithm to use (overrides configuration)",
}

// Input is a flag for commands reading trie entries.
var Input = cli.StringFlag{
	Name:  "in, i",
	Usage: "YAML file with the list of {key, value} entries to insert in order",
}

// Metrics is a flag enabling metrics output after the command.
var Metrics = cli.BoolFlag{
	Name:  "metrics",
	Usage: "print collected metrics after the command",
}

// Common is a set of flags used by all trie commands.
var Common = []cli.Flag{ConfigFile, Debug, Hash, Metrics}

// GetConfigFromContext looks at the config-file and hash flags in the given
// context and returns an appropriate config. If no file is given the
// default one is used when it exists, built-in defaults otherwise.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	var (
		cfg  config.Config
		err  error
		path = ctx.String("config-file")
	)
	switch {
	case len(path) != 0:
		cfg, err = config.LoadFile(path)
	case fileExists(config.DefaultConfigPath):
		cfg, err = config.LoadFile(config.DefaultConfigPath)
	default:
		cfg = config.Default()
	}
	if err != nil {
		return config.Config{}, err
	}
	if h := ctx.String("hash"); len(h) != 0 {
		cfg.Trie.Hash, err = hash.ParseAlgorithm(h)
		if err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// HandleLoggingParams reads logging parameters.
// If a user selected debug level -- function enables it.
// If logPath is configured -- function creates a dir and a file for logging.
func HandleLoggingParams(debug bool, cfg config.ApplicationConfiguration) (*zap.Logger, *zap.AtomicLevel, error) {
	var (
		level = zapcore.InfoLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	if len(cfg.LogEncoding) > 0 {
		cc.Encoding = cfg.LogEncoding
	}
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	if logPath := cfg.LogPath; logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("could not create dir for logger: %w", err)
		}
		cc.OutputPaths = []string{logPath}
	}

	log, err := cc.Build()
	return log, &cc.Level, err
}
