// Package ports defines the interfaces that connect the session executor in
// internal/app to infrastructure adapters.
//
// # Port Interfaces
//
//   - [ScriptLoader]: supplies the token script a session runs over
//   - [TraceSink]: receives the textual trace a session produces
//
// The application layer depends only on these interfaces. Adapters in
// internal/adapters implement them over files, stdin and plain writers.
package ports
