package runloop

import (
	"github.com/bft-labs/runloop/internal/app"
	"github.com/bft-labs/runloop/internal/domain"
)

// Errors returned by the Runner. Match them with errors.Is.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig

	// ErrLoadInput wraps failures to read the script.
	ErrLoadInput = app.ErrLoadInput
)
