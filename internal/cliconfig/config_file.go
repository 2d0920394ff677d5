package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations so both TOML and
// YAML files stay readable.
type FileConfig struct {
	Input         string `toml:"input" yaml:"input"`
	Data          string `toml:"data" yaml:"data"`
	NoMerge       *bool  `toml:"no_merge" yaml:"no_merge"`
	History       *bool  `toml:"history" yaml:"history"`
	TraceOut      string `toml:"trace_out" yaml:"trace_out"`
	ReportDir     string `toml:"report_dir" yaml:"report_dir"`
	LogLevel      string `toml:"log_level" yaml:"log_level"`
	Watch         *bool  `toml:"watch" yaml:"watch"`
	DebounceDelay string `toml:"debounce_delay" yaml:"debounce_delay"`
	MetricsAddr   string `toml:"metrics_addr" yaml:"metrics_addr"`
}

// LoadFileConfig reads and parses a config file. Files ending in .yaml or
// .yml are parsed as YAML, everything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.runloop/config.toml, or "" when the home
// directory cannot be resolved.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".runloop", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input", fc.Input, &cfg.Input)
	s.setString("data", fc.Data, &cfg.Data)
	s.setString("trace-out", fc.TraceOut, &cfg.TraceOut)
	s.setString("report-dir", fc.ReportDir, &cfg.ReportDir)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)

	if err := s.setDuration("debounce", fc.DebounceDelay, &cfg.DebounceDelay); err != nil {
		return err
	}

	s.setBool("no-merge", fc.NoMerge, &cfg.NoMerge)
	s.setBool("history", fc.History, &cfg.History)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
