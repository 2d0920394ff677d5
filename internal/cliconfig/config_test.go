package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.DebounceDelay != DefaultDebounceDelay {
		t.Errorf("DebounceDelay = %v, want %v", cfg.DebounceDelay, DefaultDebounceDelay)
	}
	if cfg.Watch || cfg.NoMerge {
		t.Errorf("Watch = %v, NoMerge = %v, want both false", cfg.Watch, cfg.NoMerge)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "input file",
			config: Config{Input: "/tmp/script.txt"},
		},
		{
			name:   "stdin",
			config: Config{Input: StdinInput},
		},
		{
			name:   "inline data",
			config: Config{Data: "r 1\nl 1\ne 1\n"},
		},
		{
			name:    "no input",
			config:  Config{},
			wantErr: true,
		},
		{
			name:    "input and data",
			config:  Config{Input: "/tmp/script.txt", Data: "r 1\n"},
			wantErr: true,
		},
		{
			name:    "watch on stdin",
			config:  Config{Input: StdinInput, Watch: true, DebounceDelay: time.Second},
			wantErr: true,
		},
		{
			name:    "watch on inline data",
			config:  Config{Data: "r 1\n", Watch: true, DebounceDelay: time.Second},
			wantErr: true,
		},
		{
			name:    "watch with zero debounce",
			config:  Config{Input: "/tmp/script.txt", Watch: true},
			wantErr: true,
		},
		{
			name:   "watch with file",
			config: Config{Input: "/tmp/script.txt", Watch: true, DebounceDelay: time.Second},
		},
		{
			name:    "unknown log level",
			config:  Config{Input: "/tmp/script.txt", LogLevel: "loud"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_Derivations(t *testing.T) {
	cfg := Config{Input: "/tmp/script.txt"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}

	cfg = Config{Input: "/tmp/script.txt", LogLevel: "DEBUG"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}
