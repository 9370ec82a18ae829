package field

import (
	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/safemath"
)

// ImpreciseUnit is the embeddable mechanics of a field whose unit varies in
// length (months, years). The embedding field must supply Get, Set, Add,
// RoundFloor, the bounds and RangeDurationField; Add in particular must not
// be inherited, since the linked duration field delegates back to it.
//
// The unit's duration field is derived from the field itself: adding months
// is monthOfYear.Add, and the month difference is monthOfYear.DifferenceInt64.
type ImpreciseUnit struct {
	Base
	unitMillis int64
	duration   *linkedDurationField
}

// NewImpreciseUnit binds the imprecise mechanics to self. unitMillis is
// the average unit length, used only as the first estimate when probing.
func NewImpreciseUnit(t DateTimeFieldType, unitMillis int64, self DateTimeField) ImpreciseUnit {
	if unitMillis < 1 {
		panic("field: average unit millis must be positive")
	}
	return ImpreciseUnit{
		Base:       NewBase(t, self),
		unitMillis: unitMillis,
		duration:   &linkedDurationField{typ: t.DurationType(), unitMillis: unitMillis, owner: self},
	}
}

func (u *ImpreciseUnit) DurationField() DurationField { return u.duration }

func (u *ImpreciseUnit) Difference(minuend, subtrahend int64) (int, error) {
	d, err := u.self.DifferenceInt64(minuend, subtrahend)
	if err != nil {
		return 0, err
	}
	return safemath.ToInt32(d)
}

// DifferenceInt64 estimates the unit count by dividing by the average
// unit length, then probes with Add until the count neither overshoots
// nor falls short. The probe loop has no fixed bound: it stops as soon as
// the estimate is exact, which for calendar units is within a step or two.
func (u *ImpreciseUnit) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	if minuend < subtrahend {
		d, err := u.self.DifferenceInt64(subtrahend, minuend)
		if err != nil {
			return 0, err
		}
		return safemath.Neg(d)
	}
	span, err := safemath.Sub(minuend, subtrahend)
	if err != nil {
		// The two instants straddle the whole range; halve the estimate.
		span = minuend/2 - subtrahend/2
	}
	difference := span / u.unitMillis
	probe := func(d int64) (int64, error) { return u.self.Add(subtrahend, d) }

	at, err := probe(difference)
	if err != nil {
		return 0, err
	}
	switch {
	case at < minuend:
		for {
			difference++
			next, err := probe(difference)
			if err != nil {
				if chronoerr.Is(err, chronoerr.Overflow) || chronoerr.Is(err, chronoerr.OutOfRange) {
					break
				}
				return 0, err
			}
			if next > minuend {
				break
			}
		}
		difference--
	case at > minuend:
		for {
			difference--
			next, err := probe(difference)
			if err != nil {
				return 0, err
			}
			if next <= minuend {
				break
			}
		}
	}
	return difference, nil
}

// NewLinkedDurationField returns an imprecise unit of type t whose Add and
// Difference call back into owner. unitMillis is the average unit length.
func NewLinkedDurationField(owner DateTimeField, t DurationFieldType, unitMillis int64) DurationField {
	return &linkedDurationField{typ: t, unitMillis: unitMillis, owner: owner}
}

// linkedDurationField is the unit of an imprecise field, implemented by
// calling back into that field.
type linkedDurationField struct {
	typ        DurationFieldType
	unitMillis int64
	owner      DateTimeField
}

func (d *linkedDurationField) Type() DurationFieldType { return d.typ }
func (d *linkedDurationField) Name() string            { return d.typ.Name() }
func (d *linkedDurationField) IsSupported() bool       { return true }
func (d *linkedDurationField) IsPrecise() bool         { return false }
func (d *linkedDurationField) UnitMillis() int64       { return d.unitMillis }

func (d *linkedDurationField) Value(int64) (int64, error) {
	return 0, chronoerr.UnsupportedOp("%s is imprecise: a duration needs a start instant", d.Name())
}

func (d *linkedDurationField) ValueAt(duration, instant int64) (int64, error) {
	return valueAtVia(d, duration, instant)
}

func (d *linkedDurationField) Millis(int64) (int64, error) {
	return 0, chronoerr.UnsupportedOp("%s is imprecise: its length in millis depends on the start instant", d.Name())
}

func (d *linkedDurationField) MillisAt(value, instant int64) (int64, error) {
	return millisAtVia(d, value, instant)
}

func (d *linkedDurationField) Add(instant, value int64) (int64, error) {
	return d.owner.Add(instant, value)
}

func (d *linkedDurationField) Subtract(instant, value int64) (int64, error) {
	return subtractVia(d, instant, value)
}

func (d *linkedDurationField) Difference(minuend, subtrahend int64) (int, error) {
	return d.owner.Difference(minuend, subtrahend)
}

func (d *linkedDurationField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	return d.owner.DifferenceInt64(minuend, subtrahend)
}
