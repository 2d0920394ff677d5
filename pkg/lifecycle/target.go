package lifecycle

// Target is the capability set a processing loop drives.
//
// Calls are made from a single goroutine, one at a time.
type Target interface {
	FileHooks
	RunHooks
	LumiHooks
	EventHooks
	LoopHooks
}

// FileHooks open and close input and output files.
type FileHooks interface {
	// ReadFile opens the next input file. It may fail.
	ReadFile() error
	CloseInputFile(cleaningUp bool)
	OpenOutputFiles()
	CloseOutputFiles()
	RespondToOpenInputFile()
	RespondToCloseInputFile()

	// ShouldWeCloseOutput is asked at every file boundary after the first.
	ShouldWeCloseOutput() bool
}

// RunHooks manage the run scope.
type RunHooks interface {
	// NextRunID is the id carried by the run transition just read.
	NextRunID() RunID
	ReadRun() RunID
	ReadAndMergeRun() RunID
	BeginRun(id RunID) (globalOK bool, err error)
	EndRun(id RunID, globalOK, cleaningUp bool) error
	WriteRun(id RunID)
	DeleteRunFromCache(id RunID)
}

// LumiHooks manage the luminosity-block scope nested in a run.
type LumiHooks interface {
	// NextLumiID is the number carried by the lumi transition just read.
	NextLumiID() LumiNumber
	ReadLuminosityBlock() LumiNumber
	ReadAndMergeLumi() LumiNumber
	BeginLumi(run RunID, lumi LumiNumber) (globalOK bool, err error)
	EndLumi(run RunID, lumi LumiNumber, globalOK, cleaningUp bool) error
	WriteLumi(run RunID, lumi LumiNumber)
	DeleteLumiFromCache(run RunID, lumi LumiNumber)
}

// EventHooks process events inside a lumi.
type EventHooks interface {
	ReadAndProcessEvent() error

	// ShouldWeStop is asked after every processed event.
	ShouldWeStop() bool
}

// LoopHooks bracket the passes of the outer loop.
type LoopHooks interface {
	StartingNewLoop()
	EndOfLoop() bool
	RewindInput()
	PrepareForNextLoop()

	// ReportError is called when a pass ends on anything but a stop.
	ReportError(err error)
}
