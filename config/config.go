package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// OpenRouterConfig configures the structured function-calling backend.
type OpenRouterConfig struct {
	BaseURL      string `toml:"base_url"`
	DefaultModel string `toml:"default_model"`
}

// OllamaConfig configures the local text-extraction backend.
type OllamaConfig struct {
	Host         string `toml:"host"`
	DefaultModel string `toml:"default_model"`
}

// UserConfig is the on-disk TOML shape.
type UserConfig struct {
	DefaultProvider string           `toml:"default_provider"`
	DataDirectory   string           `toml:"data_directory"`
	MaxTurns        int              `toml:"max_turns,omitempty"`
	OpenRouter      OpenRouterConfig `toml:"openrouter"`
	Ollama          OllamaConfig     `toml:"ollama"`
}

// Config is the resolved runtime configuration.
type Config struct {
	DefaultProvider  string
	DataDirectory    string
	MaxTurns         int
	OpenRouterURL    string
	OpenRouterAPIKey string
	OpenRouterModel  string
	OllamaHost       string
	OllamaModel      string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// applyEnvOverrides lets environment variables win over the settings file.
// The OpenRouter API key is env-only; it is never written to disk.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MAESTRO_PROVIDER"); v != "" {
		c.DefaultProvider = v
	}
	if v := os.Getenv("MAESTRO_DATA_DIR"); v != "" {
		c.DataDirectory = v
	}
	if v := os.Getenv("MAESTRO_OPENROUTER_URL"); v != "" {
		c.OpenRouterURL = v
	}
	if v := os.Getenv("MAESTRO_OPENROUTER_MODEL"); v != "" {
		c.OpenRouterModel = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		c.OpenRouterAPIKey = v
	}
	if v := os.Getenv("MAESTRO_OLLAMA_HOST"); v != "" {
		c.OllamaHost = v
	}
	if v := os.Getenv("MAESTRO_OLLAMA_MODEL"); v != "" {
		c.OllamaModel = v
	}
}

func CheckDebug() bool {
	debug := os.Getenv("MAESTRO_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: the log can contain full conversation content
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (MAESTRO_DEBUG=%s) ===", os.Getenv("MAESTRO_DEBUG"))
}

// Load resolves configuration: built-in defaults, then the TOML settings
// file (created on first run), then a .env file if one is present, then
// process environment overrides.
func Load() (*Config, error) {
	cfg := &Config{
		DefaultProvider: "openrouter",
		DataDirectory:   "~/.local/share/maestro",
		MaxTurns:        10,
		OpenRouterURL:   "https://openrouter.ai/api/v1",
		OpenRouterModel: "meta-llama/llama-3.2-90b-instruct",
		OllamaHost:      "http://localhost:11434",
		OllamaModel:     "llama3.1:latest",
	}

	userCfg, err := LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	cfg.applyUserConfig(userCfg)

	// Best-effort: a missing .env is not an error.
	_ = godotenv.Load()
	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyUserConfig(u *UserConfig) {
	if u == nil {
		return
	}
	if u.DefaultProvider != "" {
		c.DefaultProvider = u.DefaultProvider
	}
	if u.DataDirectory != "" {
		c.DataDirectory = u.DataDirectory
	}
	if u.MaxTurns > 0 {
		c.MaxTurns = u.MaxTurns
	}
	if u.OpenRouter.BaseURL != "" {
		c.OpenRouterURL = u.OpenRouter.BaseURL
	}
	if u.OpenRouter.DefaultModel != "" {
		c.OpenRouterModel = u.OpenRouter.DefaultModel
	}
	if u.Ollama.Host != "" {
		c.OllamaHost = u.Ollama.Host
	}
	if u.Ollama.DefaultModel != "" {
		c.OllamaModel = u.Ollama.DefaultModel
	}
}
