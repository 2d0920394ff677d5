package report

import (
	"time"

	"github.com/google/uuid"
)

// Report summarizes one processing session.
type Report struct {
	// SessionID identifies the session.
	SessionID uuid.UUID `json:"session_id"`

	// Input names where the script came from.
	Input string `json:"input"`

	// Policy is the merge policy the session ran with.
	Policy string `json:"policy"`

	OuterIterations int `json:"outer_iterations"`
	InnerIterations int `json:"inner_iterations"`
	Transitions     int `json:"transitions"`
	Events          int `json:"events"`
	ErrorsReported  int `json:"errors_reported"`

	// LastError is the last error reported to the target, if any.
	LastError string `json:"last_error,omitempty"`

	// Hooks counts hook invocations by name.
	Hooks map[string]int `json:"hooks"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// New starts a report for a session beginning now.
func New(input, policy string) Report {
	return Report{
		SessionID: uuid.New(),
		Input:     input,
		Policy:    policy,
		Hooks:     map[string]int{},
		StartedAt: time.Now(),
	}
}

// IsEmpty returns true if the report has not been initialized.
func (r Report) IsEmpty() bool {
	return r.SessionID == uuid.Nil
}

// Finish stamps the end time.
func (r *Report) Finish(at time.Time) {
	r.FinishedAt = at
}

// Duration returns how long the session ran. It is zero until Finish.
func (r Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Clean reports whether the session finished without reported errors.
func (r Report) Clean() bool {
	return r.ErrorsReported == 0
}
