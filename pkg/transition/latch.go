package transition

// Latch is a single-shot fault-injection flag. A throw token arms it and
// the next operation that checks it consumes it and fails.
//
// The zero value is an unarmed latch. A Latch is not safe for concurrent use.
type Latch struct {
	armed bool
}

// Arm sets the latch.
func (l *Latch) Arm() {
	l.armed = true
}

// Armed reports whether the latch is set without clearing it.
func (l *Latch) Armed() bool {
	return l.armed
}

// Consume clears the latch and reports whether it was set.
func (l *Latch) Consume() bool {
	armed := l.armed
	l.armed = false
	return armed
}
