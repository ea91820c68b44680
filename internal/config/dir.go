// Package config provides the global configuration for the worklog CLI.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the worklog configuration directory.
//
// Resolution:
//   - $WORKLOG_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/worklog if set (respects XDG on any platform)
//   - %AppData%/worklog on Windows
//   - ~/.config/worklog on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("WORKLOG_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "worklog")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "worklog")
		}
	}

	// macOS and Linux: ~/.config/worklog
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "worklog")
}
