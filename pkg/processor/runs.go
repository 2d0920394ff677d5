package processor

import (
	"fmt"

	"github.com/bft-labs/runloop/pkg/lifecycle"
	"github.com/bft-labs/runloop/pkg/log"
	"github.com/bft-labs/runloop/pkg/transition"
)

// processRuns handles run and lumi transitions. It is entered on a Run and
// returns the first transition it does not handle.
func (p *FilesProcessor) processRuns(t lifecycle.Target, src Source, next transition.Transition) (transition.Transition, error) {
	for {
		switch next.Kind {
		case transition.Run:
			if err := p.processRun(t); err != nil {
				return next, err
			}
			next = p.next(src)
		case transition.Lumi:
			var err error
			next, err = p.processLumis(t, src, next)
			if err != nil {
				return next, err
			}
		default:
			return next, nil
		}
	}
}

func (p *FilesProcessor) processRun(t lifecycle.Target) error {
	id := t.NextRunID()
	if p.run != nil && p.policy == Merge && p.run.id == id {
		if merged := t.ReadAndMergeRun(); merged != p.run.id {
			return fmt.Errorf("%w: run %s read as %s", ErrMergeMismatch, p.run.id, merged)
		}
		return nil
	}

	if err := p.unwind(t, false); err != nil {
		return err
	}

	id = t.ReadRun()
	p.run = &runResource{id: id}
	ok, err := t.BeginRun(id)
	if err != nil {
		return err
	}
	p.run.globalOK = ok
	if !ok {
		p.logger.Warn("global begin run failed", log.Stringer("run", id))
	}
	return nil
}
