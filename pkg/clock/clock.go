// Package clock supplies the current instant to the value types' Now
// constructors.
//
// Three sources cover production and tests:
//
//	System  reads the host clock.
//	Fixed   always returns the same instant.
//	Offset  shifts another source by a constant amount.
//
// Monotonic wraps any source so that successive readings strictly
// increase, following Lamport's clock rules: each reading is
// max(previous+1, source). The store uses it to give saved records a
// deterministic order even when two saves land in the same millisecond.
package clock

import "time"

// Source reports the current instant as millis since 1970-01-01T00:00Z.
type Source interface {
	NowMillis() int64
}

// System reads the host clock.
type System struct{}

func (System) NowMillis() int64 { return time.Now().UnixMilli() }

// Fixed always reports the same instant.
type Fixed int64

func (f Fixed) NowMillis() int64 { return int64(f) }

// Offset shifts Source by Millis.
type Offset struct {
	Source Source
	Millis int64
}

func (o Offset) NowMillis() int64 { return o.Source.NowMillis() + o.Millis }

// Default is the source used when a caller passes nil.
var Default Source = System{}

// Now reads src, falling back to Default.
func Now(src Source) int64 {
	if src == nil {
		return Default.NowMillis()
	}
	return src.NowMillis()
}

// Monotonic is a Source whose readings strictly increase. Not
// goroutine-safe; each CLI invocation owns one.
type Monotonic struct {
	src  Source
	last int64
	init bool
}

// NewMonotonic wraps src; nil means Default.
func NewMonotonic(src Source) *Monotonic {
	if src == nil {
		src = Default
	}
	return &Monotonic{src: src}
}

// NowMillis returns max(previous+1, source reading).
func (m *Monotonic) NowMillis() int64 {
	now := m.src.NowMillis()
	if m.init && now <= m.last {
		now = m.last + 1
	}
	m.last, m.init = now, true
	return now
}

// Observe folds in an instant seen elsewhere, such as the newest stored
// record, so later readings order after it.
func (m *Monotonic) Observe(millis int64) {
	if !m.init || millis > m.last {
		m.last, m.init = millis, true
	}
}

// Last returns the previous reading without advancing.
func (m *Monotonic) Last() int64 { return m.last }

// Less is a deterministic total order over (millis, id) pairs: earlier
// millis first, then the lexicographically smaller id.
func Less(millisA int64, idA string, millisB int64, idB string) bool {
	if millisA != millisB {
		return millisA < millisB
	}
	return idA < idB
}
