// Package processor sequences lifecycle hooks from a stream of transitions.
//
// A FilesProcessor makes one pass over a files scope. It reads transitions
// from a Source and keeps at most one open run and one open lumi, nested
// strictly inside each other:
//
//	Idle --File--> Idle
//	Idle --Run--> InRun --Lumi--> InRunAndLumi --Event--> InRunAndLumi
//	any --Stop/Invalid/unexpected--> Stopped
//
// Whatever a pass begins, it ends. Process unwinds the open lumi and run on
// every exit path. After a failure the unwind runs in cleanup mode, and
// errors raised while cleaning up are logged and dropped.
//
// A Driver is the outer run-to-completion loop. It repeats passes until the
// target's EndOfLoop says so, and starts a fresh FilesProcessor until the
// source has nothing left to read.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package processor
