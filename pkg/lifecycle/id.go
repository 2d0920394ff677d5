package lifecycle

import (
	"fmt"

	"github.com/google/uuid"
)

// RunNumber identifies a run within a history. Zero means unset.
type RunNumber uint32

// LumiNumber identifies a luminosity block within its run. Zero means unset.
type LumiNumber uint32

// RunID is the full identity of a run: the lineage it belongs to and its
// number. Two runs are the same run only if both parts match.
type RunID struct {
	History uuid.UUID
	Run     RunNumber
}

// NewRunID returns a RunID in the nil history.
func NewRunID(run RunNumber) RunID {
	return RunID{Run: run}
}

// IsZero reports whether the id is unset.
func (id RunID) IsZero() bool {
	return id.Run == 0 && id.History == uuid.Nil
}

func (id RunID) String() string {
	if id.History == uuid.Nil {
		return fmt.Sprintf("%d", id.Run)
	}
	return fmt.Sprintf("%s:%d", id.History, id.Run)
}
