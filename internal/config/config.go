package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything circdesk needs to reach the backend plus a few
// local preferences.
type Config struct {
	BaseURL        string `toml:"base_url"`
	BorrowPrefix   string `toml:"borrow_prefix"`
	RequestTimeout int    `toml:"request_timeout_seconds"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	Theme          string `toml:"theme"`
}

const (
	defaultConfigPath   = "~/.config/circdesk/config.toml"
	defaultBaseURL      = "http://localhost:8080"
	defaultBorrowPrefix = "/loans"
	defaultLogFile      = "~/.local/state/circdesk/circdesk.log"
	defaultLogLevel     = "info"
	defaultTheme        = "Dracula"
)

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.LogFile = mustExpand(cfg.LogFile)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw Config
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BaseURL = orDefault(raw.BaseURL, defaultBaseURL)
	cfg.BorrowPrefix = orDefault(raw.BorrowPrefix, defaultBorrowPrefix)
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))
	cfg.LogLevel = orDefault(raw.LogLevel, defaultLogLevel)
	cfg.Theme = orDefault(raw.Theme, defaultTheme)
	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = raw.RequestTimeout
	}

	return cfg, nil
}

// Save writes the config back, creating directories as needed. Used to
// persist the theme choice.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	bytes, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func defaults() Config {
	return Config{
		BaseURL:      defaultBaseURL,
		BorrowPrefix: defaultBorrowPrefix,
		LogFile:      defaultLogFile,
		LogLevel:     defaultLogLevel,
		Theme:        defaultTheme,
	}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
