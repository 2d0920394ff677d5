// Package runloop drives a recording lifecycle target through a transition
// script and returns the session report.
//
// Example usage:
//
//	cfg := runloop.DefaultConfig()
//	cfg.InputPath = "script.txt"
//	rep, err := runloop.Run(context.Background(), cfg, os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rep.ErrorsReported)
//
// For long-running use with plugins and events, see pkg/runloop.
package runloop

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/runloop/pkg/log"
	"github.com/bft-labs/runloop/pkg/report"
	lib "github.com/bft-labs/runloop/pkg/runloop"
)

// Config holds the configuration for a processing session.
type Config = lib.Config

// Report summarizes one processing session.
type Report = report.Report

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// Run runs one session with the trace written to w and blocks until it
// finishes. A nil w discards the trace unless cfg.TracePath is set.
func Run(ctx context.Context, cfg Config, w io.Writer) (Report, error) {
	r, err := lib.New(cfg,
		lib.WithLogger(log.NewZerologAdapterWithLogger(logger)),
		lib.WithTraceWriter(w),
	)
	if err != nil {
		return Report{}, err
	}
	return r.RunOnce(ctx)
}

// DefaultConfig returns a Config with default values. At minimum, set
// InputPath or Data before calling Run.
func DefaultConfig() Config {
	var cfg Config
	cfg.SetDefaults()
	return cfg
}

// Logger returns the package-level zerolog logger used by Run.
func Logger() zerolog.Logger {
	return logger
}
