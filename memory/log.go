package memory

// Log is the ordered, append-only conversation history of one session.
// It is not safe for concurrent use.
type Log struct {
	turns []Turn
}

// NewLog returns a log seeded with a copy of turns.
func NewLog(turns ...Turn) *Log {
	l := &Log{}
	l.turns = append(l.turns, turns...)
	return l
}

// Append adds turns at the end of the log.
func (l *Log) Append(turns ...Turn) {
	l.turns = append(l.turns, turns...)
}

// Snapshot returns a copy of all turns; mutating it does not affect the log.
func (l *Log) Snapshot() []Turn {
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

func (l *Log) Len() int { return len(l.turns) }
