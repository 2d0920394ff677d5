// Package report records the outcome of a processing session.
//
// A Report is built once a driver run finishes and is persisted through a
// Repository so that the last session can be inspected after the process
// exits.
//
// # Usage
//
//	repo := report.NewFileRepository("/var/lib/runloop")
//
//	r := report.New("script.txt", "merge")
//	// ... run the session, then fill in the stats ...
//	r.Finish(time.Now())
//
//	if err := repo.Save(ctx, r); err != nil {
//	    return err
//	}
//
// Report JSON uses snake_case field names.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package report
