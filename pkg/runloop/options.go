package runloop

import (
	"io"

	"github.com/bft-labs/runloop/pkg/log"
	"github.com/bft-labs/runloop/pkg/report"
)

// Option configures optional behavior of a Runner.
type Option func(*options)

type options struct {
	logger       log.Logger
	eventHandler EventHandler
	traceWriter  io.Writer
	stdin        io.Reader
	reportRepo   report.Repository
	plugins      []Plugin
}

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for Runner events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithTraceWriter sends traces to w when Config.TracePath is empty.
// Without either, traces are discarded.
func WithTraceWriter(w io.Writer) Option {
	return func(o *options) {
		o.traceWriter = w
	}
}

// WithStdin replaces os.Stdin as the source for StdinInput.
func WithStdin(r io.Reader) Option {
	return func(o *options) {
		o.stdin = r
	}
}

// WithReportRepository saves reports through repo instead of a file in
// Config.ReportDir.
func WithReportRepository(repo report.Repository) Option {
	return func(o *options) {
		o.reportRepo = repo
	}
}

// WithPlugin registers a plugin to be initialized by Start.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
