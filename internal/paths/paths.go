// Package paths resolves configuration directory and database file
// locations for the lineaged CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative defaults.
const (
	DefaultConfigDirName = ".lineage"
	DefaultDatabaseName  = "lineage.db"
)

// Environment variable names for overrides.
const (
	EnvConfigDir = "LINEAGE_CONFIG_DIR"
	EnvDatabase  = "LINEAGE_DATABASE"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/lineage (fallback ~/.config/lineage)
// macOS:   ~/Library/Application Support/lineage
// Windows: %APPDATA%/lineage
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "lineage"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "lineage"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "lineage"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > LINEAGE_CONFIG_DIR env > $(CWD)/.lineage.
//
// The CWD-relative default keeps per-project configuration the primary
// mode; DefaultConfigDir is for installations that opt into a shared
// user-level configuration.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveDatabase returns the database path following the precedence
// chain: flag > configYAMLValue > LINEAGE_DATABASE env > $(CWD)/lineage.db.
func ResolveDatabase(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDatabase); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDatabaseName), nil
}
