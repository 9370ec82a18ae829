package temporal

import (
	"github.com/daviddao/chronology/pkg/chrono"
	"github.com/daviddao/chronology/pkg/field"
)

// MutableDateTime is a DateTime that changes in place. Not safe for
// concurrent use. A failed change leaves the value as it was.
type MutableDateTime struct {
	millis int64
	chrono chrono.Chronology

	// rounding, when set, is applied after every change.
	rounding field.DateTimeField
	mode     RoundingMode
}

// RoundingMode picks how SetRounding rounds.
type RoundingMode int

const (
	RoundNone RoundingMode = iota
	RoundFloor
	RoundCeiling
	RoundHalfFloor
	RoundHalfCeiling
	RoundHalfEven
)

func NewMutableDateTime(millis int64, c chrono.Chronology) *MutableDateTime {
	return &MutableDateTime{millis: millis, chrono: orISO(c)}
}

func (m *MutableDateTime) Millis() int64                 { return m.millis }
func (m *MutableDateTime) Chronology() chrono.Chronology { return orISO(m.chrono) }

// DateTime returns an immutable snapshot.
func (m *MutableDateTime) DateTime() DateTime { return DateTime{millis: m.millis, chrono: m.chrono} }

func (m *MutableDateTime) Get(t field.DateTimeFieldType) (int, error) { return m.DateTime().Get(t) }

// SetRounding makes every later change round with f in mode. RoundNone
// clears it.
func (m *MutableDateTime) SetRounding(t field.DateTimeFieldType, mode RoundingMode) error {
	if mode == RoundNone {
		m.rounding, m.mode = nil, RoundNone
		return nil
	}
	f, err := supportedField(m.Chronology(), t)
	if err != nil {
		return err
	}
	m.rounding, m.mode = f, mode
	return m.SetMillis(m.millis)
}

func (m *MutableDateTime) round(ms int64) (int64, error) {
	f := m.rounding
	if f == nil {
		return ms, nil
	}
	switch m.mode {
	case RoundFloor:
		return f.RoundFloor(ms)
	case RoundCeiling:
		return f.RoundCeiling(ms)
	case RoundHalfFloor:
		return f.RoundHalfFloor(ms)
	case RoundHalfCeiling:
		return f.RoundHalfCeiling(ms)
	case RoundHalfEven:
		return f.RoundHalfEven(ms)
	}
	return ms, nil
}

// SetMillis moves to another instant.
func (m *MutableDateTime) SetMillis(ms int64) error {
	ms, err := m.round(ms)
	if err != nil {
		return err
	}
	m.millis = ms
	return nil
}

func (m *MutableDateTime) update(d DateTime, err error) error {
	if err != nil {
		return err
	}
	return m.SetMillis(d.millis)
}

func (m *MutableDateTime) Set(t field.DateTimeFieldType, value int) error {
	return m.update(m.DateTime().With(t, value))
}

func (m *MutableDateTime) SetDate(year, month, day int) error {
	return m.update(m.DateTime().WithDate(year, month, day))
}

func (m *MutableDateTime) SetTime(hour, minute, second, millis int) error {
	return m.update(m.DateTime().WithTime(hour, minute, second, millis))
}

func (m *MutableDateTime) Add(unit field.DurationFieldType, amount int64) error {
	return m.update(m.DateTime().Add(unit, amount))
}

func (m *MutableDateTime) AddPeriod(p chrono.ReadablePeriod, scalar int) error {
	return m.update(m.DateTime().WithPeriodAdded(p, scalar))
}

func (m *MutableDateTime) AddDuration(d Duration) error {
	return m.update(m.DateTime().PlusDuration(d))
}

// AddWrap wraps one field within its range.
func (m *MutableDateTime) AddWrap(t field.DateTimeFieldType, amount int) error {
	p, err := m.DateTime().Property(t)
	if err != nil {
		return err
	}
	return m.update(p.AddWrap(amount))
}

// SetChronology keeps the instant and clears any rounding.
func (m *MutableDateTime) SetChronology(c chrono.Chronology) {
	m.chrono = orISO(c)
	m.rounding, m.mode = nil, RoundNone
}

// SetZone keeps the instant and changes the zone.
func (m *MutableDateTime) SetZone(zone *chrono.Zone) error {
	c, err := m.Chronology().WithZone(zone)
	if err != nil {
		return err
	}
	m.SetChronology(c)
	return nil
}

// SetZoneRetainFields keeps the local fields and changes the zone.
func (m *MutableDateTime) SetZoneRetainFields(zone *chrono.Zone) error {
	ms, c, err := retainFields(m.Chronology(), m.millis, zone)
	if err != nil {
		return err
	}
	m.millis, m.chrono = ms, c
	m.rounding, m.mode = nil, RoundNone
	return nil
}

func (m *MutableDateTime) String() string { return m.DateTime().String() }
