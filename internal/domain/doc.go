// Package domain holds the error values shared between the runner core and
// its public API.
//
// It has no dependencies on infrastructure concerns. The public runloop
// package re-exports every error defined here so callers can match them
// with errors.Is.
package domain
