package mock

import (
	"fmt"
	"io"
	"maps"

	"github.com/google/uuid"

	"github.com/bft-labs/runloop/pkg/lifecycle"
	"github.com/bft-labs/runloop/pkg/processor"
	"github.com/bft-labs/runloop/pkg/transition"
)

// StopSentinel is the event payload that requests a stop after the event.
const StopSentinel = 7

// Option configures a Processor.
type Option func(*Processor)

// WithHistory sets the lineage every run id is reported in.
func WithHistory(history uuid.UUID) Option {
	return func(p *Processor) {
		p.history = history
	}
}

// Processor is a scripted lifecycle.Target that records every hook call.
type Processor struct {
	out     io.Writer
	source  *transition.Source
	latch   transition.Latch
	history uuid.UUID

	run  lifecycle.RunNumber
	lumi lifecycle.LumiNumber

	closeOutput    bool
	endLoop        bool
	stopRequested  bool
	eventProcessed bool

	counts   map[string]int
	reported []error
	writeErr error
}

var (
	_ lifecycle.Target = (*Processor)(nil)
	_ processor.Source = (*Processor)(nil)
)

// New creates a Processor reading script and tracing to out.
func New(script string, out io.Writer, opts ...Option) *Processor {
	return NewBytes([]byte(script), out, opts...)
}

// NewBytes creates a Processor over a script held in a byte slice.
func NewBytes(script []byte, out io.Writer, opts ...Option) *Processor {
	p := &Processor{
		out:         out,
		closeOutput: true,
		endLoop:     true,
		counts:      make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.source = transition.NewSource(script,
		transition.WithLatch(&p.latch),
		transition.WithObserver(transition.ObserverFunc(p.observe)),
	)
	return p
}

// Next returns the next transition from the script.
func (p *Processor) Next() transition.Transition { return p.source.Next() }

// AtEnd reports whether the script has been read past its end.
func (p *Processor) AtEnd() bool { return p.source.AtEnd() }

// Exhausted reports whether no bytes of the script remain.
func (p *Processor) Exhausted() bool { return p.source.Exhausted() }

// Counts returns how many times each hook was called.
func (p *Processor) Counts() map[string]int {
	return maps.Clone(p.counts)
}

// Reported returns the errors passed to ReportError, in order.
func (p *Processor) Reported() []error {
	return append([]error(nil), p.reported...)
}

// Err returns the first error writing the trace, if any.
func (p *Processor) Err() error {
	return p.writeErr
}

// observe applies a token's payload before the transition is handed out.
func (p *Processor) observe(tok transition.Token) {
	p.eventProcessed = false
	switch tok.Tag {
	case transition.TagRun:
		p.printf("    *** next: Run %d ***\n", tok.Value)
		p.run = lifecycle.RunNumber(tok.Value)
	case transition.TagLumi:
		p.printf("    *** next: Lumi %d ***\n", tok.Value)
		p.lumi = lifecycle.LumiNumber(tok.Value)
	case transition.TagEvent:
		p.printf("    *** next: Event ***\n")
		p.stopRequested = tok.Value == StopSentinel
		if p.stopRequested {
			p.printf("    *** shouldWeStop will return true this event ***\n")
		}
	case transition.TagFile:
		p.printf("    *** next: File %d ***\n", tok.Value)
		p.closeOutput = tok.Value != 0
	case transition.TagStop:
		p.printf("    *** next: Stop %d ***\n", tok.Value)
		p.endLoop = tok.Value != 0
	case transition.TagRestart:
		p.printf("    *** next: Restart %d ***\n", tok.Value)
		p.endLoop = tok.Value == 0
	case transition.TagThrow:
		p.printf("    *** next: Throw %d ***\n", tok.Value)
	default:
		p.printf("    *** next: Invalid %q ***\n", tok.Tag)
	}
}

func (p *Processor) runID(run lifecycle.RunNumber) lifecycle.RunID {
	return lifecycle.RunID{History: p.history, Run: run}
}

// hook records one hook call.
func (p *Processor) hook(name, format string, args ...any) {
	p.counts[name]++
	p.printf("\t"+format+"\n", args...)
}

// throwIfNeeded consumes an armed latch and fails the named hook.
func (p *Processor) throwIfNeeded(hook string) error {
	if !p.latch.Consume() {
		return nil
	}
	p.counts["throwing"]++
	p.printf("\tthrowing\n")
	return lifecycle.NewFault(hook)
}

func (p *Processor) printf(format string, args ...any) {
	if p.writeErr != nil {
		return
	}
	if _, err := fmt.Fprintf(p.out, format, args...); err != nil {
		p.writeErr = err
	}
}

func failedSuffix(globalOK bool) string {
	if globalOK {
		return ""
	}
	return " global failed"
}
