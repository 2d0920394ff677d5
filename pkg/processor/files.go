package processor

import (
	"github.com/bft-labs/runloop/pkg/lifecycle"
	"github.com/bft-labs/runloop/pkg/log"
	"github.com/bft-labs/runloop/pkg/transition"
)

// FilesProcessor drives one pass over a files scope.
//
// The same FilesProcessor is reused for every pass of one outer-loop
// iteration. It is not safe for concurrent use.
type FilesProcessor struct {
	policy MergePolicy
	logger log.Logger

	inputOpen  bool
	outputOpen bool
	run        *runResource
	lumi       *lumiResource

	transitions int
	events      int
}

// NewFilesProcessor creates a processor with a fixed merge policy.
// A nil logger discards output.
func NewFilesProcessor(policy MergePolicy, logger log.Logger) *FilesProcessor {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &FilesProcessor{policy: policy, logger: logger}
}

// Policy returns the merge policy.
func (p *FilesProcessor) Policy() MergePolicy {
	return p.policy
}

// Transitions returns how many transitions the processor has consumed.
func (p *FilesProcessor) Transitions() int {
	return p.transitions
}

// Events returns how many events the processor has handed to the target.
func (p *FilesProcessor) Events() int {
	return p.events
}

// Process reads transitions from src and drives t until a transition ends
// the pass. It returns the kind of that transition.
//
// Open lumi and run scopes are always ended before Process returns. When a
// hook fails, the failure is returned after the scopes and files have been
// closed in cleanup mode.
func (p *FilesProcessor) Process(t lifecycle.Target, src Source) (kind transition.Kind, err error) {
	defer func() {
		if uerr := p.unwind(t, err != nil); err == nil {
			err = uerr
		}
		if err != nil {
			p.closeFiles(t, true)
		}
	}()

	next := p.next(src)
	for {
		switch next.Kind {
		case transition.File:
			if err := p.processFile(t); err != nil {
				return next.Kind, err
			}
			next = p.next(src)
		case transition.Run:
			next, err = p.processRuns(t, src, next)
			if err != nil {
				return next.Kind, err
			}
		default:
			return next.Kind, nil
		}
	}
}

// NormalEnd closes the files left open by a pass that ended normally.
func (p *FilesProcessor) NormalEnd(t lifecycle.Target) {
	p.closeFiles(t, false)
}

func (p *FilesProcessor) next(src Source) transition.Transition {
	tr := src.Next()
	if !tr.IsEndOfInput() {
		p.transitions++
	}
	p.logger.Debug("transition", log.Stringer("transition", tr))
	return tr
}

func (p *FilesProcessor) processFile(t lifecycle.Target) error {
	if !p.inputOpen && !p.outputOpen {
		return p.readFirstFile(t)
	}
	if t.ShouldWeCloseOutput() {
		// Runs and lumis do not survive an output file boundary.
		if err := p.unwind(t, false); err != nil {
			return err
		}
		p.closeFiles(t, false)
		return p.readFirstFile(t)
	}
	if p.policy == NoMerge {
		if err := p.unwind(t, false); err != nil {
			return err
		}
	}
	return p.gotoNewInputFile(t)
}

func (p *FilesProcessor) readFirstFile(t lifecycle.Target) error {
	if err := t.ReadFile(); err != nil {
		return err
	}
	p.inputOpen = true
	t.RespondToOpenInputFile()
	t.OpenOutputFiles()
	p.outputOpen = true
	return nil
}

func (p *FilesProcessor) gotoNewInputFile(t lifecycle.Target) error {
	if p.inputOpen {
		p.inputOpen = false
		t.RespondToCloseInputFile()
		t.CloseInputFile(false)
	}
	if err := t.ReadFile(); err != nil {
		return err
	}
	p.inputOpen = true
	t.RespondToOpenInputFile()
	return nil
}
