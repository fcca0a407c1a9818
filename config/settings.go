package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadUserConfig reads the TOML settings file, creating a commented default
// on first run.
func LoadUserConfig() (*UserConfig, error) {
	settingsPath := GetSettingsFilePath()

	if !FileExists(settingsPath) {
		if err := CreateDefaultUserConfig(); err != nil {
			return nil, fmt.Errorf("failed to create default settings: %w", err)
		}
		return &UserConfig{}, nil
	}

	cfg := &UserConfig{}
	_, err := toml.DecodeFile(settingsPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	return cfg, nil
}

// SaveUserConfig writes settings back to the settings file.
func SaveUserConfig(cfg *UserConfig) error {
	configDir := GetConfigDir()
	if err := EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settingsPath := GetSettingsFilePath()
	// 0600: settings identify the user's endpoints
	f, err := os.OpenFile(settingsPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	return nil
}

func CreateDefaultUserConfig() error {
	configDir := GetConfigDir()
	if err := EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settingsPath := GetSettingsFilePath()
	if FileExists(settingsPath) {
		return nil
	}

	if err := os.WriteFile(settingsPath, []byte(defaultSettingsTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

const defaultSettingsTemplate = `# maestro settings
#
# The OpenRouter API key is read from the OPENROUTER_API_KEY environment
# variable (or a .env file in the working directory), never from this file.

# Which backend answers natural-language commands: "openrouter", "ollama"
# or "anthropic" (not yet supported).
default_provider = "openrouter"

data_directory = "~/.local/share/maestro"

# How many conversation turns to keep as context for the model.
max_turns = 10

[openrouter]
base_url = "https://openrouter.ai/api/v1"
default_model = "meta-llama/llama-3.2-90b-instruct"

[ollama]
host = "http://localhost:11434"
default_model = "llama3.1:latest"
`
