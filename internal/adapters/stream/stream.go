// Package stream implements the session ports over in-memory data and
// plain readers and writers.
package stream

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bft-labs/runloop/internal/ports"
)

// Inline implements ports.ScriptLoader over a script held in memory.
type Inline struct {
	data []byte
	name string
}

// NewInline creates a loader that always returns data.
func NewInline(data []byte, name string) *Inline {
	return &Inline{data: data, name: name}
}

func (i *Inline) Load(ctx context.Context) ([]byte, error) {
	return i.data, nil
}

func (i *Inline) Name() string {
	return i.name
}

// Reader implements ports.ScriptLoader over a reader that can be consumed
// only once, such as stdin. The first Load reads it to the end and later
// Loads return the same bytes.
type Reader struct {
	r    io.Reader
	name string

	once sync.Once
	data []byte
	err  error
}

// NewReader creates a loader over r.
func NewReader(r io.Reader, name string) *Reader {
	return &Reader{r: r, name: name}
}

func (r *Reader) Load(ctx context.Context) ([]byte, error) {
	r.once.Do(func() {
		r.data, r.err = io.ReadAll(r.r)
		if r.err != nil {
			r.err = fmt.Errorf("read script %s: %w", r.name, r.err)
		}
	})
	return r.data, r.err
}

func (r *Reader) Name() string {
	return r.name
}

// Writer implements ports.TraceSink by writing straight through to w.
// Nothing is buffered, so Commit and Discard have nothing to do.
type Writer struct {
	w io.Writer
}

// NewWriter creates a sink over w. A nil w discards traces.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		w = io.Discard
	}
	return &Writer{w: w}
}

func (w *Writer) Open() (ports.Trace, error) {
	return writerTrace{w.w}, nil
}

type writerTrace struct {
	io.Writer
}

func (writerTrace) Commit() error  { return nil }
func (writerTrace) Discard() error { return nil }
