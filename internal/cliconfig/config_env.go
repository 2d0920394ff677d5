package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (RUNLOOP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input", os.Getenv("RUNLOOP_INPUT"), &cfg.Input)
	s.setString("data", os.Getenv("RUNLOOP_DATA"), &cfg.Data)
	s.setString("trace-out", os.Getenv("RUNLOOP_TRACE_OUT"), &cfg.TraceOut)
	s.setString("report-dir", os.Getenv("RUNLOOP_REPORT_DIR"), &cfg.ReportDir)
	s.setString("log-level", os.Getenv("RUNLOOP_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("metrics-addr", os.Getenv("RUNLOOP_METRICS_ADDR"), &cfg.MetricsAddr)

	if err := s.setDuration("debounce", os.Getenv("RUNLOOP_DEBOUNCE"), &cfg.DebounceDelay); err != nil {
		return err
	}

	s.setBoolFromString("no-merge", os.Getenv("RUNLOOP_NO_MERGE"), &cfg.NoMerge)
	s.setBoolFromString("history", os.Getenv("RUNLOOP_HISTORY"), &cfg.History)
	s.setBoolFromString("watch", os.Getenv("RUNLOOP_WATCH"), &cfg.Watch)

	return nil
}
