// Package runloop provides an embeddable runner for transition-driven
// processing sessions.
//
// A session reads a token script, drives the recording lifecycle target
// through the nested file, run and lumi scopes until the script is
// exhausted, and produces a textual trace plus a [report.Report].
//
// # Basic Usage
//
//	r, err := runloop.New(runloop.Config{InputPath: "script.txt"},
//	    runloop.WithTraceWriter(os.Stdout),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rep, err := r.RunOnce(ctx)
//
// # Long-running Mode
//
// [Runner.Start] runs a session in the background and runs it again every
// time [Runner.Trigger] is called, typically by a plugin such as
// plugins/inputwatcher. [Runner.Stop] cancels the worker and shuts plugins
// down in reverse registration order.
//
// # Event Handling
//
// Implement [EventHandler] (embedding [BaseEventHandler] for no-op
// defaults) and pass it via [WithEventHandler]. Events are delivered
// synchronously from the session goroutine.
//
// # Lifecycle States
//
// A Runner is in one of [StateStopped], [StateStarting], [StateRunning],
// [StateStopping] or [StateCrashed]. Use [Runner.Status] to query it.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package runloop
