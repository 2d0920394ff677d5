package processor

import (
	"errors"
	"fmt"

	"github.com/bft-labs/runloop/pkg/transition"
)

// ErrMergeMismatch is returned when a target merges a run or lumi other
// than the one that is open.
var ErrMergeMismatch = errors.New("processor: merged id does not match open scope")

// UnexpectedTransitionError is reported when a pass ends on anything other
// than a Stop: an Invalid token, a stop requested after an event, or a
// transition that is not legal in the current scope.
type UnexpectedTransitionError struct {
	Kind transition.Kind
}

func (e *UnexpectedTransitionError) Error() string {
	return fmt.Sprintf("processor: pass ended on %s transition", e.Kind)
}
