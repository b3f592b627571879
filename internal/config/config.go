// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for lumino.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.lumino/config.toml
//   - ~/.lumino/config.json
//   - Built-in defaults
//
// The configuration seeds the settings record on first run; afterwards the
// persisted state snapshot owns the settings. The API key is the exception:
// when supplied through the environment it always wins, so the credential
// never has to live in a source artifact or even in the config file.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/lumino-tui/internal/model"
	"github.com/jeranaias/lumino-tui/internal/util"
)

// Environment variable names.
const (
	// EnvAPIKey supplies the credential at runtime (preferred over the file).
	EnvAPIKey = "LUMINO_API_KEY"
	// EnvAPIKeyCompat is honored as a fallback for the credential.
	EnvAPIKeyCompat = "GEMINI_API_KEY"
	// EnvModel overrides the model identifier.
	EnvModel = "LUMINO_MODEL"
	// EnvDataDir overrides the data directory.
	EnvDataDir = "LUMINO_DATA_DIR"
	// EnvDebug enables debug logging ("1" or "true").
	EnvDebug = "LUMINO_DEBUG"
	// EnvTimeoutSecs overrides the exchange deadline in seconds.
	EnvTimeoutSecs = "LUMINO_TIMEOUT_SECS"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config represents the complete lumino configuration.
type Config struct {
	// APIKey is the generative language API credential.
	// SECURITY: Prefer LUMINO_API_KEY / GEMINI_API_KEY over storing it here.
	APIKey string `toml:"api_key" json:"api_key"`
	// Model is the default model identifier.
	Model string `toml:"model" json:"model"`
	// Temperature is the default sampling temperature, in [0, 2].
	Temperature float64 `toml:"temperature" json:"temperature"`
	// MaxTokens is the default reply token budget.
	MaxTokens int `toml:"max_tokens" json:"max_tokens"`
	// Theme is the UI theme: "light" or "dark".
	Theme string `toml:"theme" json:"theme"`
	// FontSize is the UI font size: "small", "medium", "large".
	FontSize string `toml:"font_size" json:"font_size"`
	// EnterToSend submits on Enter instead of inserting a newline.
	EnterToSend bool `toml:"enter_to_send" json:"enter_to_send"`
	// AutoScroll follows new messages in the chat view.
	AutoScroll bool `toml:"auto_scroll" json:"auto_scroll"`
	// Language is the preferred reply language.
	Language string `toml:"language" json:"language"`
	// TimeoutSecs bounds one exchange with the remote service.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// DataDir overrides the default ~/.lumino data directory.
	DataDir string `toml:"data_dir" json:"data_dir"`
	// Debug enables debug-level logging.
	Debug bool `toml:"debug" json:"debug"`

	// apiKeyFromEnv records that the credential came from the environment,
	// in which case it overrides any persisted settings value.
	apiKeyFromEnv bool
	// fileAPIKey holds the key as read from the config file (possibly
	// empty). Save writes this value back when the environment supplied
	// the runtime key, so the env credential never reaches disk.
	fileAPIKey string
}

// Default returns a Config with sensible default values.
func Default() *Config {
	s := model.DefaultSettings()
	return &Config{
		Model:       s.Model,
		Temperature: s.Temperature,
		MaxTokens:   s.MaxTokens,
		Theme:       s.Theme,
		FontSize:    s.FontSize,
		EnterToSend: s.EnterToSend,
		AutoScroll:  s.AutoScroll,
		Language:    s.Language,
		TimeoutSecs: 60,
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the lumino configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".lumino"), nil
}

// PathTOML returns the path to the TOML config file.
func PathTOML() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// PathJSON returns the path to the JSON config file.
func PathJSON() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only) because
// they may contain the API key.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	if tomlPath, err := PathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				return nil, err
			}
			return finish(cfg)
		}
	}

	if jsonPath, err := PathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				return nil, err
			}
			return finish(cfg)
		}
	}

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, err
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file over the passed defaults.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file over the passed defaults.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.fileAPIKey = c.APIKey
		c.APIKey = v
		c.apiKeyFromEnv = true
	} else if v := os.Getenv(EnvAPIKeyCompat); v != "" {
		c.fileAPIKey = c.APIKey
		c.APIKey = v
		c.apiKeyFromEnv = true
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvDebug); v == "1" || strings.EqualFold(v, "true") {
		c.Debug = true
	}
	if v := os.Getenv(EnvTimeoutSecs); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TimeoutSecs = n
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %v", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Theme != model.ThemeLight && c.Theme != model.ThemeDark {
		return fmt.Errorf("theme must be %q or %q, got %q", model.ThemeLight, model.ThemeDark, c.Theme)
	}
	switch c.FontSize {
	case model.FontSizeSmall, model.FontSizeMedium, model.FontSizeLarge:
	default:
		return fmt.Errorf("font_size must be small, medium, or large, got %q", c.FontSize)
	}
	if c.TimeoutSecs <= 0 {
		return fmt.Errorf("timeout_secs must be positive, got %d", c.TimeoutSecs)
	}
	return nil
}

// =============================================================================
// SAVE
// =============================================================================

// Save writes the configuration to the TOML config file.
func (c *Config) Save() error {
	path, err := PathTOML()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to a specific path as TOML.
// An env-supplied API key is runtime-only: the file keeps whatever
// key it already had, never the environment value.
func (c *Config) SaveTo(path string) error {
	out := *c
	if c.apiKeyFromEnv {
		out.APIKey = c.fileAPIKey
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(&out); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	// SECURITY: 0600, the file may hold the API key.
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// SETTINGS BRIDGE
// =============================================================================

// Settings converts the config into a settings record for a first run.
func (c *Config) Settings() model.Settings {
	return model.Settings{
		APIKey:      c.APIKey,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Theme:       c.Theme,
		FontSize:    c.FontSize,
		EnterToSend: c.EnterToSend,
		AutoScroll:  c.AutoScroll,
		Language:    c.Language,
		Model:       c.Model,
	}
}

// APIKeyFromEnv reports whether the credential came from the environment,
// in which case it overrides the persisted settings value.
func (c *Config) APIKeyFromEnv() bool {
	return c.apiKeyFromEnv
}
