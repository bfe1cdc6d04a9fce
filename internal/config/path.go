// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// defaultDatabasePath is where the transaction database lives when the
// config does not say otherwise.
const defaultDatabasePath = "~/.local/share/pesaflow/pesaflow.db"

// DatabasePath resolves the database location from the configured value,
// falling back to the default under the user's data directory.
func DatabasePath(configured string) string {
	if strings.TrimSpace(configured) == "" {
		configured = defaultDatabasePath
	}
	return ExpandPath(configured)
}

// ExpandPath expands environment variables and a leading ~ in a file path.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)

	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
