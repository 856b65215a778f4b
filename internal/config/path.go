// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// SetDefaults registers the default configuration values with viper.
// Callers still override these via config file, FLOWLEDGER_* environment
// variables, or flags.
func SetDefaults() {
	viper.SetDefault("database.path", "~/.local/share/flowledger/flowledger.db")
	viper.SetDefault("currency.default", "CHF")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

// DatabasePath returns the configured database path with ~ and environment
// variables expanded.
func DatabasePath() string {
	return ExpandPath(viper.GetString("database.path"))
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
