package transition

import (
	"fmt"
	"io"
	"strconv"
)

// Observer is notified of every token a Source reads, including throws.
type Observer interface {
	ObserveToken(tok Token)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(tok Token)

// ObserveToken calls f(tok).
func (f ObserverFunc) ObserveToken(tok Token) { f(tok) }

// Option configures a Source.
type Option func(*Source)

// WithLatch shares latch with the Source; throw tokens arm it.
// Without this option the Source owns a private latch.
func WithLatch(latch *Latch) Option {
	return func(s *Source) {
		s.latch = latch
	}
}

// WithObserver registers an observer for every token read.
func WithObserver(obs Observer) Option {
	return func(s *Source) {
		s.observer = obs
	}
}

// Source is a forward-only cursor over a token script.
// It is not safe for concurrent use.
type Source struct {
	data     []byte
	pos      int
	failed   bool
	tokens   int
	latch    *Latch
	observer Observer
}

// NewSource creates a Source over the given script.
func NewSource(data []byte, opts ...Option) *Source {
	s := &Source{data: data}
	for _, opt := range opts {
		opt(s)
	}
	if s.latch == nil {
		s.latch = &Latch{}
	}
	return s
}

// NewSourceString creates a Source over a script held in a string.
func NewSourceString(script string, opts ...Option) *Source {
	return NewSource([]byte(script), opts...)
}

// NewSourceReader reads r to the end and creates a Source over its contents.
func NewSourceReader(r io.Reader, opts ...Option) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return NewSource(data, opts...), nil
}

// Latch returns the latch armed by throw tokens.
func (s *Source) Latch() *Latch {
	return s.latch
}

// Next returns the next transition. Throw tokens arm the latch and are
// skipped. Once the input is exhausted or malformed, Next returns
// EndOfInput forever.
func (s *Source) Next() Transition {
	for {
		tok, ok := s.readToken()
		if !ok {
			s.failed = true
			return EndOfInput
		}
		s.tokens++
		if s.observer != nil {
			s.observer.ObserveToken(tok)
		}
		if tok.Tag == TagThrow {
			s.latch.Arm()
			continue
		}
		return Transition{Kind: kindOf(tok.Tag), Tag: tok.Tag, Value: tok.Value}
	}
}

// AtEnd reports whether a read has failed: the script ran out or a pair
// could not be parsed.
func (s *Source) AtEnd() bool {
	return s.failed
}

// Exhausted reports whether the underlying bytes can yield nothing more.
// It can be true before AtEnd when the last token ends exactly at the end
// of the data.
func (s *Source) Exhausted() bool {
	return s.failed || s.pos >= len(s.data)
}

// Tokens returns how many tokens have been read, throws included.
func (s *Source) Tokens() int {
	return s.tokens
}

// readToken reads one <tag> <int> pair. A tag is any single non-space byte.
func (s *Source) readToken() (Token, bool) {
	if s.failed {
		return Token{}, false
	}
	s.skipSpace()
	if s.pos >= len(s.data) {
		return Token{}, false
	}
	tag := s.data[s.pos]
	s.pos++

	s.skipSpace()
	start := s.pos
	if s.pos < len(s.data) && (s.data[s.pos] == '-' || s.data[s.pos] == '+') {
		s.pos++
	}
	for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
	}
	value, err := strconv.Atoi(string(s.data[start:s.pos]))
	if err != nil {
		return Token{}, false
	}
	return Token{Tag: tag, Value: value}, true
}

func (s *Source) skipSpace() {
	for s.pos < len(s.data) && isSpace(s.data[s.pos]) {
		s.pos++
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
