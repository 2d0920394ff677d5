package processor

import (
	"fmt"

	"github.com/bft-labs/runloop/pkg/lifecycle"
	"github.com/bft-labs/runloop/pkg/log"
	"github.com/bft-labs/runloop/pkg/transition"
)

// processLumis handles lumi and event transitions inside the open run. It
// is entered on a Lumi and returns the first transition it does not handle.
//
// When the target asks to stop after an event, the event transition itself
// is returned and no further transition is read.
func (p *FilesProcessor) processLumis(t lifecycle.Target, src Source, next transition.Transition) (transition.Transition, error) {
	for {
		switch next.Kind {
		case transition.Lumi:
			if err := p.processLumi(t); err != nil {
				return next, err
			}
			next = p.next(src)
		case transition.Event:
			if err := t.ReadAndProcessEvent(); err != nil {
				return next, err
			}
			p.events++
			if t.ShouldWeStop() {
				p.logger.Debug("stop requested after event", log.Int("events", p.events))
				return next, nil
			}
			next = p.next(src)
		default:
			return next, nil
		}
	}
}

func (p *FilesProcessor) processLumi(t lifecycle.Target) error {
	num := t.NextLumiID()
	if p.lumi != nil && p.policy == Merge && p.lumi.run == p.run.id && p.lumi.lumi == num {
		if merged := t.ReadAndMergeLumi(); merged != p.lumi.lumi {
			return fmt.Errorf("%w: lumi %d read as %d", ErrMergeMismatch, p.lumi.lumi, merged)
		}
		return nil
	}

	if err := p.endLumi(t, false); err != nil {
		return err
	}

	num = t.ReadLuminosityBlock()
	p.lumi = &lumiResource{run: p.run.id, lumi: num}
	ok, err := t.BeginLumi(p.run.id, num)
	if err != nil {
		return err
	}
	p.lumi.globalOK = ok
	if !ok {
		p.logger.Warn("global begin lumi failed",
			log.Stringer("run", p.run.id),
			log.Uint32("lumi", uint32(num)),
		)
	}
	return nil
}
