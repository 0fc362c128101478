// Package config loads twinvault settings from defaults, an optional .env
// file and TWINVAULT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvPrefix = "TWINVAULT_"

	BackendJSON = "json"
	BackendBolt = "bolt"

	DefaultJSONFile = "vault.secure"
	DefaultBoltFile = "vault.db"
	DefaultLogLevel = "warn"
	appDirName      = "twinvault"
)

var (
	ErrInvalidBackend = errors.New("invalid storage backend")
	ErrInvalidPath    = errors.New("invalid vault path")
)

// Config holds the runtime settings of the CLI
type Config struct {
	// DataDir is the application-private directory holding the vault.
	// Env: TWINVAULT_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// FileName is the vault file name inside DataDir.
	// Env: TWINVAULT_FILE
	FileName string `env:"FILE"`

	// Backend selects the storage format: "json" or "bolt".
	// Env: TWINVAULT_BACKEND
	Backend string `env:"BACKEND"`

	// LogLevel is a zerolog level name.
	// Env: TWINVAULT_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Load builds the configuration. envFile is loaded first when it exists;
// variables already present in the environment take precedence over it.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := mergo.Merge(cfg, defaults()); err != nil {
		return nil, fmt.Errorf("failed to merge defaults: %w", err)
	}
	if cfg.FileName == "" {
		cfg.FileName = defaultFileName(cfg.Backend)
	}

	return cfg, cfg.Validate()
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendBolt:
	default:
		return fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidBackend, c.Backend, BackendJSON, BackendBolt)
	}

	if c.DataDir == "" {
		return fmt.Errorf("%w: empty data directory", ErrInvalidPath)
	}
	if c.FileName == "" || strings.ContainsAny(c.FileName, `/\`) || c.FileName == "." || c.FileName == ".." {
		return fmt.Errorf("%w: file name %q", ErrInvalidPath, c.FileName)
	}
	return nil
}

// VaultPath returns the full path of the vault file
func (c *Config) VaultPath() string {
	return filepath.Join(c.DataDir, c.FileName)
}

func defaults() *Config {
	return &Config{
		DataDir:  defaultDataDir(),
		Backend:  BackendJSON,
		LogLevel: DefaultLogLevel,
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "."+appDirName)
	}
	return filepath.Join(dir, appDirName)
}

func defaultFileName(backend string) string {
	if backend == BackendBolt {
		return DefaultBoltFile
	}
	return DefaultJSONFile
}
