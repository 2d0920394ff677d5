// Package lifecycle defines the hooks a processing loop drives.
//
// A [Target] is the engine whose begin/end hooks are sequenced by
// processor.FilesProcessor and processor.Driver. In production it would
// be the real processing engine; mock.Processor is a recording stand-in.
//
// # Hook contract
//
// Begin hooks (BeginRun, BeginLumi) report the global-transition outcome.
// A false outcome is not an error: it is carried to the matching end hook.
// A hook that fails returns a *FaultError wrapping ErrTransientFault.
//
// End hooks receive the earlier outcome and a cleaningUp flag. When
// cleaningUp is true the loop is already unwinding after a failure and the
// end hook must not fail.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package lifecycle
