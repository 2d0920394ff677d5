package cliconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// StdinInput reads the transition script from standard input.
const StdinInput = "-"

// DefaultDebounceDelay is how long input writes must settle in watch mode.
const DefaultDebounceDelay = 100 * time.Millisecond

// Config holds CLI configuration for runloop.
type Config struct {
	Input string
	Data  string

	NoMerge bool
	History bool

	TraceOut  string
	ReportDir string
	LogLevel  string

	Watch         bool
	DebounceDelay time.Duration
	MetricsAddr   string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LogLevel:      "info",
		DebounceDelay: DefaultDebounceDelay,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Input == "" && c.Data == "" {
		return fmt.Errorf("input is required (path, %q for stdin, or --data)", StdinInput)
	}
	if c.Input != "" && c.Data != "" {
		return fmt.Errorf("input and data are mutually exclusive")
	}

	if c.Watch {
		if c.Input == "" || c.Input == StdinInput {
			return fmt.Errorf("watch requires an input file")
		}
		if c.DebounceDelay <= 0 {
			return fmt.Errorf("debounce delay must be positive")
		}
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
