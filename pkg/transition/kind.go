package transition

import "fmt"

// Kind classifies a transition.
type Kind int

const (
	Invalid Kind = iota
	File
	Run
	Lumi
	Event
	Stop
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case File:
		return "File"
	case Run:
		return "Run"
	case Lumi:
		return "Lumi"
	case Event:
		return "Event"
	case Stop:
		return "Stop"
	default:
		return "Unknown"
	}
}

// Token tags as they appear in a script.
const (
	TagRun     byte = 'r'
	TagLumi    byte = 'l'
	TagEvent   byte = 'e'
	TagFile    byte = 'f'
	TagStop    byte = 's'
	TagRestart byte = 'x'
	TagThrow   byte = 't'
)

// Token is one <tag> <value> pair read from a script.
type Token struct {
	Tag   byte
	Value int
}

func (t Token) String() string {
	return fmt.Sprintf("%c %d", t.Tag, t.Value)
}

// Transition is a single unit handed from a Source to the processing loop.
//
// Tag keeps the script tag so that a restart can be told apart from a plain
// stop. The terminal transition produced at end of input has a zero Tag.
type Transition struct {
	Kind  Kind
	Tag   byte
	Value int
}

// EndOfInput is the transition returned once the script is exhausted.
var EndOfInput = Transition{Kind: Stop}

// IsEndOfInput reports whether t is the terminal end-of-input transition.
func (t Transition) IsEndOfInput() bool {
	return t.Kind == Stop && t.Tag == 0
}

// IsRestart reports whether t came from a restart token.
func (t Transition) IsRestart() bool {
	return t.Tag == TagRestart
}

func (t Transition) String() string {
	if t.Tag == 0 {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%c %d)", t.Kind, t.Tag, t.Value)
}

// kindOf maps a script tag to the kind it produces.
func kindOf(tag byte) Kind {
	switch tag {
	case TagRun:
		return Run
	case TagLumi:
		return Lumi
	case TagEvent:
		return Event
	case TagFile:
		return File
	case TagStop, TagRestart:
		return Stop
	default:
		return Invalid
	}
}
