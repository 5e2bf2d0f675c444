package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/cdbundle/internal/config"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "cdbundle",
	Short: "Bundle loose disc images into self-contained media folders",
	Long: `cdbundle - disc-image bundling importer

Converts a cue sheet and the track files it references (possibly scattered
across subfolders) into a single flat bundle directory usable as a virtual
drive. The bundle contains every referenced file plus a rewritten
tracks.cue that matches the flattened layout.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cdbundle {{.Version}}\n")
}

// loadConfig loads the configured or discovered config file, falling back
// to built-in defaults when none exists.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		discovered, err := config.Discover()
		if err != nil {
			return config.Default(), nil
		}
		path = discovered
	}
	return config.Load(path)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
}
