package report

import "context"

// Repository persists the last session report.
type Repository interface {
	// Load retrieves the last saved report.
	// Returns an empty report and nil error if none exists.
	Load(ctx context.Context) (Report, error)

	// Save persists a report atomically, replacing the previous one.
	Save(ctx context.Context, r Report) error
}
