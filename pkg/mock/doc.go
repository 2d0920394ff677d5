// Package mock provides a recording lifecycle target driven by a token
// script.
//
// A Processor is both the transition source and the lifecycle target for
// a processor.Driver. It writes one trace line per hook call and one
// "*** next: ... ***" line per token read. The order and count of trace
// lines is the conformance surface of the processing loop.
//
//	var trace bytes.Buffer
//	m := mock.New("r 1 l 1 e 1 s 1", &trace)
//	stats, _ := processor.NewDriver(m, m).Run(ctx)
//
// Token payloads drive the target's answers:
//
//	e 7   ShouldWeStop returns true after this event
//	f 0   ShouldWeCloseOutput returns false (other values: true)
//	s 0   EndOfLoop returns false (other values: true)
//	x 1   EndOfLoop returns false, restarting the pass; x 0 ends it
//	t n   the next hook that checks for faults fails
package mock
