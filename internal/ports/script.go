package ports

import "context"

// ScriptLoader supplies the token script for a session.
// Load is called once per session, so a loader backed by a file sees edits
// made between sessions.
type ScriptLoader interface {
	// Load returns the whole script.
	Load(ctx context.Context) ([]byte, error)

	// Name describes the input in logs and reports.
	Name() string
}
