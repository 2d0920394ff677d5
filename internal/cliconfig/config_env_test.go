package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"RUNLOOP_INPUT":        "/env/script.txt",
				"RUNLOOP_TRACE_OUT":    "/env/trace.txt",
				"RUNLOOP_REPORT_DIR":   "/env/reports",
				"RUNLOOP_LOG_LEVEL":    "debug",
				"RUNLOOP_METRICS_ADDR": ":9100",
				"RUNLOOP_DEBOUNCE":     "250ms",
				"RUNLOOP_NO_MERGE":     "true",
				"RUNLOOP_HISTORY":      "1",
				"RUNLOOP_WATCH":        "true",
			},
			changed: map[string]bool{},
			expected: Config{
				Input:         "/env/script.txt",
				TraceOut:      "/env/trace.txt",
				ReportDir:     "/env/reports",
				LogLevel:      "debug",
				MetricsAddr:   ":9100",
				DebounceDelay: 250 * time.Millisecond,
				NoMerge:       true,
				History:       true,
				Watch:         true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"RUNLOOP_INPUT":    "/env/script.txt",
				"RUNLOOP_NO_MERGE": "true",
			},
			changed:  map[string]bool{"input": true, "no-merge": true},
			initial:  Config{Input: "/cli/script.txt"},
			expected: Config{Input: "/cli/script.txt"},
		},
		{
			name: "inline data",
			envVars: map[string]string{
				"RUNLOOP_DATA": "r 1\nl 1\n",
			},
			changed:  map[string]bool{},
			expected: Config{Data: "r 1\nl 1\n"},
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"RUNLOOP_DEBOUNCE": "not-a-duration",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "handles bool 'false' as false",
			envVars: map[string]string{
				"RUNLOOP_NO_MERGE": "false",
			},
			changed:  map[string]bool{},
			initial:  Config{NoMerge: true},
			expected: Config{NoMerge: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

// CLI > Env > File
func TestConfigPrecedence(t *testing.T) {
	trueVal := true

	fileConf := FileConfig{
		Input:     "/file/script.txt",
		ReportDir: "/file/reports",
		LogLevel:  "warn",
		NoMerge:   &trueVal,
	}

	t.Setenv("RUNLOOP_INPUT", "/env/script.txt")
	t.Setenv("RUNLOOP_REPORT_DIR", "/env/reports")
	t.Setenv("RUNLOOP_TRACE_OUT", "/env/trace.txt")

	changed := map[string]bool{"input": true}
	cfg := DefaultConfig()
	cfg.Input = "/cli/script.txt"

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.Input != "/cli/script.txt" {
		t.Errorf("Input = %v, want /cli/script.txt (CLI should win)", cfg.Input)
	}
	if cfg.ReportDir != "/env/reports" {
		t.Errorf("ReportDir = %v, want /env/reports (env should override file)", cfg.ReportDir)
	}
	if cfg.TraceOut != "/env/trace.txt" {
		t.Errorf("TraceOut = %v, want /env/trace.txt (env should set)", cfg.TraceOut)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn (file should set)", cfg.LogLevel)
	}
	if !cfg.NoMerge {
		t.Error("NoMerge = false, want true (file should set)")
	}
}
