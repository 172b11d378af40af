// Package config loads user settings from YAML. A missing file is not an
// error; defaults are used instead.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	AppName        = "countdown_tui"
	configFileName = "config.yaml"
)

type Config struct {
	Title          string
	TickInterval   time.Duration
	LogFile        string
	LogLevel       slog.Level
	JournalDSN     string
	RecentSessions int
}

type yamlConfig struct {
	Title          string `yaml:"title"`
	TickIntervalMS int    `yaml:"tick_interval_ms"`
	LogFile        string `yaml:"log_file"`
	LogLevel       string `yaml:"log_level"`
	JournalDSN     string `yaml:"journal_dsn"`
	RecentSessions int    `yaml:"recent_sessions"`
}

func Default() Config {
	return Config{
		Title:          "Task Countdown Tracker",
		TickInterval:   time.Second,
		LogLevel:       slog.LevelInfo,
		JournalDSN:     ":memory:",
		RecentSessions: 5,
	}
}

// DefaultPath is config.yaml under the user config directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, AppName, configFileName), nil
}

// Load reads path, or DefaultPath when path is empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	if err := apply(&cfg, fileData); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func apply(cfg *Config, fileData yamlConfig) error {
	if t := strings.TrimSpace(fileData.Title); t != "" {
		cfg.Title = t
	}
	if fileData.TickIntervalMS > 0 {
		cfg.TickInterval = time.Duration(fileData.TickIntervalMS) * time.Millisecond
	}
	if fileData.LogFile != "" {
		cfg.LogFile = fileData.LogFile
	}
	if fileData.LogLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(fileData.LogLevel)); err != nil {
			return fmt.Errorf("parse log_level %q: %w", fileData.LogLevel, err)
		}
	}
	if fileData.JournalDSN != "" {
		cfg.JournalDSN = fileData.JournalDSN
	}
	if fileData.RecentSessions > 0 {
		cfg.RecentSessions = fileData.RecentSessions
	}
	return nil
}
