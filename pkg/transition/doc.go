// Package transition turns a textual token script into the typed transitions
// that drive a processing loop.
//
// A script is a whitespace-separated list of <kind> <integer> pairs:
//
//	f 1 r 1 l 1 e 1 e 7 s 1
//
// Recognized kinds are r (run), l (lumi), e (event), f (file), s (stop),
// x (restart, delivered as a Stop) and t (throw). A throw never reaches the
// consumer: it arms the Source's Latch and the next real transition is
// returned in its place. Unknown kinds are delivered as Invalid. An
// unparsable or missing pair ends the input, after which Next keeps
// returning the terminal Stop.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package transition
