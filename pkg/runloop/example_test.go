package runloop_test

import (
	"context"
	"fmt"
	"os"

	"github.com/bft-labs/runloop/pkg/runloop"
)

// ExampleNew runs one session over an inline script and prints its trace.
func ExampleNew() {
	r, err := runloop.New(runloop.Config{Data: []byte("r 1 l 1 e 1 s 1")},
		runloop.WithTraceWriter(os.Stdout),
	)
	if err != nil {
		fmt.Printf("failed to create runner: %v\n", err)
		return
	}

	rep, err := r.RunOnce(context.Background())
	if err != nil {
		fmt.Printf("session failed: %v\n", err)
		return
	}
	fmt.Printf("events=%d errors=%d\n", rep.Events, rep.ErrorsReported)

	// Output:
	// 	startingNewLoop
	//     *** next: Run 1 ***
	// 	readRun 1
	// 	beginRun 1
	//     *** next: Lumi 1 ***
	// 	readLuminosityBlock 1
	// 	beginLumi 1/1
	//     *** next: Event ***
	// 	readEvent
	// 	processEvent
	// 	shouldWeStop
	//     *** next: Stop 1 ***
	// 	endLumi 1/1
	// 	writeLumi 1/1
	// 	deleteLumiFromCache 1/1
	// 	endRun 1
	// 	writeRun 1
	// 	deleteRunFromCache 1
	// 	endOfLoop
	// 	startingNewLoop
	// 	endOfLoop
	// events=1 errors=0
}

// Example_withEventHandler shows how to receive session results.
func Example_withEventHandler() {
	handler := &printingHandler{}
	r, err := runloop.New(runloop.Config{Data: []byte("r 1 t 1 l 1 s 1")},
		runloop.WithEventHandler(handler),
	)
	if err != nil {
		fmt.Printf("failed to create runner: %v\n", err)
		return
	}
	_, _ = r.RunOnce(context.Background())

	// Output: session done: 1 errors reported, last: beginLumi: lifecycle: transient fault
}

type printingHandler struct {
	runloop.BaseEventHandler
}

func (h *printingHandler) OnSessionComplete(event runloop.SessionEvent) {
	fmt.Printf("session done: %d errors reported, last: %s\n",
		event.Report.ErrorsReported, event.Report.LastError)
}
