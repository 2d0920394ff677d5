package ports

import "io"

// Trace is the destination of one session's trace.
type Trace interface {
	io.Writer

	// Commit publishes what has been written.
	Commit() error

	// Discard drops an uncommitted trace. It is a no-op after Commit.
	Discard() error
}

// TraceSink opens a Trace per session.
type TraceSink interface {
	Open() (Trace, error)
}
