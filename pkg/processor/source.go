package processor

import "github.com/bft-labs/runloop/pkg/transition"

// Source yields the transitions a processor consumes.
// *transition.Source satisfies it.
type Source interface {
	Next() transition.Transition

	// AtEnd reports whether a read past the end of input has happened.
	AtEnd() bool

	// Exhausted reports whether the underlying stream has nothing left.
	Exhausted() bool
}

// MergePolicy decides what happens when a run or lumi recurs.
type MergePolicy int

const (
	// Merge reads a recurring run or lumi into the open one, and keeps
	// scopes open across input file boundaries.
	Merge MergePolicy = iota

	// NoMerge always ends the open scope and begins a fresh one, and ends
	// open scopes at every input file boundary.
	NoMerge
)

func (p MergePolicy) String() string {
	if p == NoMerge {
		return "no-merge"
	}
	return "merge"
}
