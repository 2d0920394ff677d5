package mock

import "github.com/bft-labs/runloop/pkg/lifecycle"

func (p *Processor) ReadFile() error {
	p.hook("readFile", "readFile")
	return p.throwIfNeeded("readFile")
}

func (p *Processor) CloseInputFile(cleaningUp bool) {
	p.hook("closeInputFile", "closeInputFile")
}

func (p *Processor) OpenOutputFiles() {
	p.hook("openOutputFiles", "openOutputFiles")
}

func (p *Processor) CloseOutputFiles() {
	p.hook("closeOutputFiles", "closeOutputFiles")
}

func (p *Processor) RespondToOpenInputFile() {
	p.hook("respondToOpenInputFile", "respondToOpenInputFile")
}

func (p *Processor) RespondToCloseInputFile() {
	p.hook("respondToCloseInputFile", "respondToCloseInputFile")
}

func (p *Processor) ShouldWeCloseOutput() bool {
	p.hook("shouldWeCloseOutput", "shouldWeCloseOutput")
	return p.closeOutput
}

func (p *Processor) NextRunID() lifecycle.RunID {
	return p.runID(p.run)
}

func (p *Processor) ReadRun() lifecycle.RunID {
	p.hook("readRun", "readRun %d", p.run)
	return p.runID(p.run)
}

func (p *Processor) ReadAndMergeRun() lifecycle.RunID {
	p.hook("readAndMergeRun", "readAndMergeRun %d", p.run)
	return p.runID(p.run)
}

func (p *Processor) BeginRun(id lifecycle.RunID) (bool, error) {
	p.hook("beginRun", "beginRun %d", id.Run)
	if err := p.throwIfNeeded("beginRun"); err != nil {
		return false, err
	}
	return true, nil
}

// EndRun never fails while cleaning up; otherwise an armed latch fails it.
func (p *Processor) EndRun(id lifecycle.RunID, globalOK, cleaningUp bool) error {
	p.hook("endRun", "endRun %d%s", id.Run, failedSuffix(globalOK))
	if cleaningUp {
		return nil
	}
	return p.throwIfNeeded("endRun")
}

func (p *Processor) WriteRun(id lifecycle.RunID) {
	p.hook("writeRun", "writeRun %d", id.Run)
}

func (p *Processor) DeleteRunFromCache(id lifecycle.RunID) {
	p.hook("deleteRunFromCache", "deleteRunFromCache %d", id.Run)
}

func (p *Processor) NextLumiID() lifecycle.LumiNumber {
	return p.lumi
}

func (p *Processor) ReadLuminosityBlock() lifecycle.LumiNumber {
	p.hook("readLuminosityBlock", "readLuminosityBlock %d", p.lumi)
	return p.lumi
}

func (p *Processor) ReadAndMergeLumi() lifecycle.LumiNumber {
	p.hook("readAndMergeLumi", "readAndMergeLumi %d", p.lumi)
	return p.lumi
}

func (p *Processor) BeginLumi(run lifecycle.RunID, lumi lifecycle.LumiNumber) (bool, error) {
	p.hook("beginLumi", "beginLumi %d/%d", run.Run, lumi)
	if err := p.throwIfNeeded("beginLumi"); err != nil {
		return false, err
	}
	return true, nil
}

// EndLumi follows the same failure rule as EndRun.
func (p *Processor) EndLumi(run lifecycle.RunID, lumi lifecycle.LumiNumber, globalOK, cleaningUp bool) error {
	p.hook("endLumi", "endLumi %d/%d%s", run.Run, lumi, failedSuffix(globalOK))
	if cleaningUp {
		return nil
	}
	return p.throwIfNeeded("endLumi")
}

func (p *Processor) WriteLumi(run lifecycle.RunID, lumi lifecycle.LumiNumber) {
	p.hook("writeLumi", "writeLumi %d/%d", run.Run, lumi)
}

func (p *Processor) DeleteLumiFromCache(run lifecycle.RunID, lumi lifecycle.LumiNumber) {
	p.hook("deleteLumiFromCache", "deleteLumiFromCache %d/%d", run.Run, lumi)
}

// ReadAndProcessEvent marks the event processed before checking for a fault.
func (p *Processor) ReadAndProcessEvent() error {
	p.hook("readEvent", "readEvent")
	p.hook("processEvent", "processEvent")
	p.eventProcessed = true
	return p.throwIfNeeded("processEvent")
}

func (p *Processor) ShouldWeStop() bool {
	p.hook("shouldWeStop", "shouldWeStop")
	return p.eventProcessed && p.stopRequested
}

func (p *Processor) StartingNewLoop() {
	p.hook("startingNewLoop", "startingNewLoop")
}

func (p *Processor) EndOfLoop() bool {
	p.hook("endOfLoop", "endOfLoop")
	return p.endLoop
}

// RewindInput is recorded only. The script already lists what the input
// delivers after the rewind.
func (p *Processor) RewindInput() {
	p.hook("rewind", "rewind")
}

func (p *Processor) PrepareForNextLoop() {
	p.hook("prepareForNextLoop", "prepareForNextLoop")
}

func (p *Processor) ReportError(err error) {
	p.reported = append(p.reported, err)
	p.hook("reportError", "reportError")
}
