// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Bundles BundlesConfig `toml:"bundles"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

type BundlesConfig struct {
	// Root is the destination parent folder for imported bundles.
	Root string `toml:"root"`

	// CopyFiles selects copy semantics by default; false moves and deletes
	// the originals.
	CopyFiles bool `toml:"copy_files"`
}

type HistoryConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	meta, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Moving deletes originals; a config that never mentions copy_files
	// must not opt into that.
	if !meta.IsDefined("bundles", "copy_files") {
		cfg.Bundles.CopyFiles = true
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.Bundles.CopyFiles = true
	return cfg
}

func (c *Config) applyDefaults() {
	if c.History.Path == "" {
		c.History.Path = defaultHistoryPath()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func defaultHistoryPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./cdbundle-history.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "cdbundle", "history.db")
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Bundles.Root != "" && !filepath.IsAbs(c.Bundles.Root) {
		errs = append(errs, fmt.Sprintf("bundles.root: must be an absolute path, got %q", c.Bundles.Root))
	}
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}
