package temporal

import (
	"sync/atomic"

	"github.com/daviddao/chronology/pkg/chrono"
	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/period"
	"github.com/daviddao/chronology/pkg/safemath"
)

// span is the half-open range [start, end) shared by Interval and
// MutableInterval.
type span struct {
	start  int64
	end    int64
	chrono chrono.Chronology
}

func checkSpan(start, end int64) error {
	if end < start {
		return chronoerr.Invalid("the end instant must be greater than or equal to the start")
	}
	return nil
}

func (s *span) StartMillis() int64            { return s.start }
func (s *span) EndMillis() int64              { return s.end }
func (s *span) Chronology() chrono.Chronology { return orISO(s.chrono) }

func (s *span) Start() DateTime { return DateTime{millis: s.start, chrono: s.chrono} }
func (s *span) End() DateTime   { return DateTime{millis: s.end, chrono: s.chrono} }

func (s *span) durationMillis() (int64, error) { return safemath.Sub(s.end, s.start) }

// Contains reports whether instant lies in [start, end).
func (s *span) Contains(instant int64) bool { return instant >= s.start && instant < s.end }

// containsSpan reports whether [start, end) covers the other range. An
// empty range at the end is not contained.
func (s *span) containsSpan(o *span) bool {
	return s.start <= o.start && o.start < s.end && o.end <= s.end
}

func (s *span) overlaps(o *span) bool {
	if s.start == s.end {
		return o.Contains(s.start)
	}
	if o.start == o.end {
		return s.Contains(o.start)
	}
	return s.start < o.end && o.start < s.end
}

func (s *span) abuts(o *span) bool { return s.start == o.end || s.end == o.start }

func (s *span) IsBefore(instant int64) bool { return s.end <= instant }
func (s *span) IsAfter(instant int64) bool  { return s.start > instant }

// Period splits the range into typ's units in the range's chronology.
func (s *span) Period(typ *period.Type) (*period.Period, error) {
	return period.Between(s.start, s.end, typ, s.Chronology())
}

func (s *span) String() string { return s.Start().String() + "/" + s.End().String() }

// ---------------------------------------------------------------------------
// Interval
// ---------------------------------------------------------------------------

// Interval is an immutable half-open range of instants. Use *Interval; the
// duration is cached on first use.
type Interval struct {
	span
	duration atomic.Pointer[Duration]
}

// NewInterval fails with InvalidArgument when end is before start.
func NewInterval(start, end int64, c chrono.Chronology) (*Interval, error) {
	if err := checkSpan(start, end); err != nil {
		return nil, err
	}
	return &Interval{span: span{start: start, end: end, chrono: orISO(c)}}, nil
}

// IntervalBetween takes the chronology of start.
func IntervalBetween(start, end DateTime) (*Interval, error) {
	return NewInterval(start.millis, end.millis, start.Chronology())
}

// IntervalAfter spans p from start.
func IntervalAfter(start DateTime, p chrono.ReadablePeriod) (*Interval, error) {
	end, err := start.Plus(p)
	if err != nil {
		return nil, err
	}
	return IntervalBetween(start, end)
}

// Duration is the exact length. Two goroutines racing on the first call
// compute the same value.
func (i *Interval) Duration() (Duration, error) {
	if d := i.duration.Load(); d != nil {
		return *d, nil
	}
	ms, err := i.durationMillis()
	if err != nil {
		return Duration{}, err
	}
	d := Duration{millis: ms}
	i.duration.Store(&d)
	return d, nil
}

func (i *Interval) ContainsInterval(o *Interval) bool { return i.containsSpan(&o.span) }
func (i *Interval) Overlaps(o *Interval) bool         { return i.overlaps(&o.span) }
func (i *Interval) Abuts(o *Interval) bool            { return i.abuts(&o.span) }

// Overlap returns the shared range, or false when there is none.
func (i *Interval) Overlap(o *Interval) (*Interval, bool) {
	if !i.Overlaps(o) {
		return nil, false
	}
	start, end := max(i.start, o.start), min(i.end, o.end)
	return &Interval{span: span{start: start, end: end, chrono: i.chrono}}, true
}

// Gap returns the range between two intervals that neither overlap nor
// abut, or false.
func (i *Interval) Gap(o *Interval) (*Interval, bool) {
	switch {
	case i.start > o.end:
		return &Interval{span: span{start: o.end, end: i.start, chrono: i.chrono}}, true
	case o.start > i.end:
		return &Interval{span: span{start: i.end, end: o.start, chrono: i.chrono}}, true
	}
	return nil, false
}

func (i *Interval) WithStart(start int64) (*Interval, error) { return NewInterval(start, i.end, i.chrono) }
func (i *Interval) WithEnd(end int64) (*Interval, error)     { return NewInterval(i.start, end, i.chrono) }

func (i *Interval) WithChronology(c chrono.Chronology) *Interval {
	return &Interval{span: span{start: i.start, end: i.end, chrono: orISO(c)}}
}

// WithDurationAfterStart keeps the start and sets the length.
func (i *Interval) WithDurationAfterStart(d Duration) (*Interval, error) {
	end, err := i.Chronology().AddDuration(i.start, d.millis, 1)
	if err != nil {
		return nil, err
	}
	return NewInterval(i.start, end, i.chrono)
}

// WithPeriodAfterStart keeps the start and ends p later.
func (i *Interval) WithPeriodAfterStart(p chrono.ReadablePeriod) (*Interval, error) {
	end, err := i.Chronology().Add(p, i.start, 1)
	if err != nil {
		return nil, err
	}
	return NewInterval(i.start, end, i.chrono)
}

// Equal compares the endpoints and the chronology.
func (i *Interval) Equal(o *Interval) bool {
	return i.start == o.start && i.end == o.end && i.Chronology() == o.Chronology()
}

// Mutable returns an independent mutable copy.
func (i *Interval) Mutable() *MutableInterval {
	return &MutableInterval{span: i.span}
}

// ---------------------------------------------------------------------------
// MutableInterval
// ---------------------------------------------------------------------------

// MutableInterval is a range whose endpoints change in place. Not safe for
// concurrent use. Every change checks that end is not before start and
// forgets the cached duration.
type MutableInterval struct {
	span
	duration *Duration
}

func NewMutableInterval(start, end int64, c chrono.Chronology) (*MutableInterval, error) {
	if err := checkSpan(start, end); err != nil {
		return nil, err
	}
	return &MutableInterval{span: span{start: start, end: end, chrono: orISO(c)}}, nil
}

func (m *MutableInterval) Duration() (Duration, error) {
	if m.duration != nil {
		return *m.duration, nil
	}
	ms, err := m.durationMillis()
	if err != nil {
		return Duration{}, err
	}
	m.duration = &Duration{millis: ms}
	return *m.duration, nil
}

// SetInterval replaces both endpoints at once.
func (m *MutableInterval) SetInterval(start, end int64) error {
	if err := checkSpan(start, end); err != nil {
		return err
	}
	m.start, m.end, m.duration = start, end, nil
	return nil
}

func (m *MutableInterval) SetStart(start int64) error { return m.SetInterval(start, m.end) }
func (m *MutableInterval) SetEnd(end int64) error     { return m.SetInterval(m.start, end) }

func (m *MutableInterval) SetChronology(c chrono.Chronology) { m.chrono = orISO(c) }

// SetDurationAfterStart moves the end to start plus d.
func (m *MutableInterval) SetDurationAfterStart(d Duration) error {
	end, err := m.Chronology().AddDuration(m.start, d.millis, 1)
	if err != nil {
		return err
	}
	return m.SetEnd(end)
}

// SetDurationBeforeEnd moves the start to end minus d.
func (m *MutableInterval) SetDurationBeforeEnd(d Duration) error {
	start, err := m.Chronology().AddDuration(m.end, d.millis, -1)
	if err != nil {
		return err
	}
	return m.SetStart(start)
}

// SetPeriodAfterStart moves the end to start plus p.
func (m *MutableInterval) SetPeriodAfterStart(p chrono.ReadablePeriod) error {
	end, err := m.Chronology().Add(p, m.start, 1)
	if err != nil {
		return err
	}
	return m.SetEnd(end)
}

// SetPeriodBeforeEnd moves the start to end minus p.
func (m *MutableInterval) SetPeriodBeforeEnd(p chrono.ReadablePeriod) error {
	start, err := m.Chronology().Add(p, m.end, -1)
	if err != nil {
		return err
	}
	return m.SetStart(start)
}

func (m *MutableInterval) ContainsInterval(o *MutableInterval) bool { return m.containsSpan(&o.span) }
func (m *MutableInterval) Overlaps(o *MutableInterval) bool         { return m.overlaps(&o.span) }

// Interval returns an immutable copy.
func (m *MutableInterval) Interval() *Interval {
	return &Interval{span: m.span}
}
