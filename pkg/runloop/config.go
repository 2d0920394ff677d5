package runloop

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/runloop/internal/app"
)

// StdinInput is the InputPath that reads the script from standard input.
const StdinInput = "-"

// Config configures a Runner.
type Config struct {
	// InputPath is the script file. StdinInput reads standard input.
	InputPath string

	// Data is an inline script, used instead of InputPath.
	Data []byte

	// NoMerge ends and begins a fresh run or lumi whenever one recurs,
	// instead of merging into the open one.
	NoMerge bool

	// TracePath, when set, receives each session's trace atomically.
	// Otherwise the trace goes to the writer set by WithTraceWriter.
	TracePath string

	// ReportDir, when set, receives report.json after every session.
	ReportDir string

	// History is the lineage run ids are reported in.
	History uuid.UUID

	// ShutdownTimeout bounds how long Stop waits. Default 10s.
	ShutdownTimeout time.Duration
}

// SetDefaults fills in zero-valued fields.
func (c *Config) SetDefaults() {
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = app.DefaultShutdownTimeout
	}
}

// Validate checks that the configuration can run a session.
func (c *Config) Validate() error {
	switch {
	case c.InputPath == "" && c.Data == nil:
		return fmt.Errorf("%w: no input: set InputPath or Data", ErrInvalidConfig)
	case c.InputPath != "" && c.Data != nil:
		return fmt.Errorf("%w: InputPath and Data are mutually exclusive", ErrInvalidConfig)
	case c.ShutdownTimeout < 0:
		return fmt.Errorf("%w: negative ShutdownTimeout", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) inputName() string {
	switch {
	case c.Data != nil:
		return "inline"
	case c.InputPath == StdinInput:
		return "stdin"
	default:
		return c.InputPath
	}
}
