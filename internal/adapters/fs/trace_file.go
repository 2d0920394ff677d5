package fs

import (
	"fmt"

	"github.com/google/renameio/v2"

	"github.com/bft-labs/runloop/internal/ports"
)

// TraceFile implements ports.TraceSink. Each trace is written to a pending
// file next to path and replaces path only on Commit, so readers never see
// a partial trace.
type TraceFile struct {
	path string
}

// NewTraceFile creates a sink that publishes traces to path.
func NewTraceFile(path string) *TraceFile {
	return &TraceFile{path: path}
}

// Open starts a new pending trace.
func (t *TraceFile) Open() (ports.Trace, error) {
	f, err := renameio.NewPendingFile(t.path, renameio.WithPermissions(0o644))
	if err != nil {
		return nil, fmt.Errorf("open trace %s: %w", t.path, err)
	}
	return &pendingTrace{f: f}, nil
}

// Path returns the published trace path.
func (t *TraceFile) Path() string {
	return t.path
}

type pendingTrace struct {
	f *renameio.PendingFile
}

func (p *pendingTrace) Write(b []byte) (int, error) {
	return p.f.Write(b)
}

func (p *pendingTrace) Commit() error {
	return p.f.CloseAtomicallyReplace()
}

func (p *pendingTrace) Discard() error {
	return p.f.Cleanup()
}
