package config

import (
	"os"
	"path/filepath"
	"strings"
)

// GetConfigDir returns ~/.config/maestro, honoring XDG_CONFIG_HOME.
func GetConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "maestro")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".maestro"
	}
	return filepath.Join(home, ".config", "maestro")
}

func GetSettingsFilePath() string {
	return filepath.Join(GetConfigDir(), "settings.toml")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0700)
}
