package processor

import (
	"github.com/bft-labs/runloop/pkg/lifecycle"
	"github.com/bft-labs/runloop/pkg/log"
)

// runResource is an open run scope.
type runResource struct {
	id       lifecycle.RunID
	globalOK bool
}

// lumiResource is an open lumi scope.
type lumiResource struct {
	run      lifecycle.RunID
	lumi     lifecycle.LumiNumber
	globalOK bool
}

// end closes the run: end hook, write when the global transition succeeded
// and this is a normal end, then drop it from the cache.
func (r *runResource) end(t lifecycle.RunHooks, cleaningUp bool) error {
	err := t.EndRun(r.id, r.globalOK, cleaningUp)
	if err == nil && r.globalOK && !cleaningUp {
		t.WriteRun(r.id)
	}
	t.DeleteRunFromCache(r.id)
	return err
}

func (l *lumiResource) end(t lifecycle.LumiHooks, cleaningUp bool) error {
	err := t.EndLumi(l.run, l.lumi, l.globalOK, cleaningUp)
	if err == nil && l.globalOK && !cleaningUp {
		t.WriteLumi(l.run, l.lumi)
	}
	t.DeleteLumiFromCache(l.run, l.lumi)
	return err
}

// endLumi ends the open lumi, if any.
func (p *FilesProcessor) endLumi(t lifecycle.Target, cleaningUp bool) error {
	l := p.lumi
	if l == nil {
		return nil
	}
	p.lumi = nil
	err := l.end(t, cleaningUp)
	if err != nil && cleaningUp {
		p.logger.Warn("end lumi failed during cleanup",
			log.Stringer("run", l.run),
			log.Uint32("lumi", uint32(l.lumi)),
			log.Err(err),
		)
		return nil
	}
	return err
}

// endRun ends the open run, if any. The lumi must already be ended.
func (p *FilesProcessor) endRun(t lifecycle.Target, cleaningUp bool) error {
	r := p.run
	if r == nil {
		return nil
	}
	p.run = nil
	err := r.end(t, cleaningUp)
	if err != nil && cleaningUp {
		p.logger.Warn("end run failed during cleanup",
			log.Stringer("run", r.id),
			log.Err(err),
		)
		return nil
	}
	return err
}

// unwind ends the open lumi and then the open run. If ending the lumi
// fails, the run is still ended, in cleanup mode.
func (p *FilesProcessor) unwind(t lifecycle.Target, cleaningUp bool) error {
	err := p.endLumi(t, cleaningUp)
	if err != nil {
		cleaningUp = true
	}
	if rerr := p.endRun(t, cleaningUp); err == nil {
		err = rerr
	}
	return err
}

// closeFiles closes whatever input and output files are open.
func (p *FilesProcessor) closeFiles(t lifecycle.Target, cleaningUp bool) {
	if p.inputOpen {
		p.inputOpen = false
		t.RespondToCloseInputFile()
		t.CloseInputFile(cleaningUp)
	}
	if p.outputOpen {
		p.outputOpen = false
		t.CloseOutputFiles()
	}
}
