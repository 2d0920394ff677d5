package runloop

import "github.com/bft-labs/runloop/pkg/report"

// State is the lifecycle state of a Runner.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// StateChangeEvent is delivered when the Runner changes state.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// SessionEvent is delivered when a session finishes. Err is nil unless the
// session itself failed; errors reported during processing are counted in
// the report instead.
type SessionEvent struct {
	Report report.Report
	Err    error
}

// EventHandler receives Runner events.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnSessionComplete(event SessionEvent)
}

// BaseEventHandler implements EventHandler with no-op methods. Embed it to
// handle only some events.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}
func (BaseEventHandler) OnSessionComplete(SessionEvent) {}
