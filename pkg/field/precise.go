package field

import (
	"github.com/daviddao/chronology/pkg/safemath"
)

// PreciseUnit is the embeddable mechanics of a field whose unit has a
// fixed millisecond size (dayOfMonth counts days, hourOfDay counts hours).
// The embedding field supplies Get, MaximumValue and RangeDurationField.
type PreciseUnit struct {
	Base
	unit       DurationField
	unitMillis int64
}

// NewPreciseUnit binds the precise-unit mechanics to self. unit must be
// precise.
func NewPreciseUnit(t DateTimeFieldType, unit DurationField, self DateTimeField) PreciseUnit {
	if !unit.IsPrecise() {
		panic("field: unit duration field must be precise")
	}
	if unit.UnitMillis() < 1 {
		panic("field: unit duration field must have a positive size")
	}
	return PreciseUnit{Base: NewBase(t, self), unit: unit, unitMillis: unit.UnitMillis()}
}

func (p *PreciseUnit) DurationField() DurationField { return p.unit }

// UnitMillis returns the size of one unit of this field.
func (p *PreciseUnit) UnitMillis() int64 { return p.unitMillis }

func (p *PreciseUnit) MinimumValue() int { return 0 }

// Set moves instant by whole units so the field reads value.
func (p *PreciseUnit) Set(instant int64, value int) (int64, error) {
	if err := VerifyValueBounds(p.Name(), value, p.self.MinimumValueAt(instant), maximumForSet(p.self, instant, value)); err != nil {
		return 0, err
	}
	delta, err := safemath.Mul(int64(value-p.self.Get(instant)), p.unitMillis)
	if err != nil {
		return 0, err
	}
	return safemath.Add(instant, delta)
}

func (p *PreciseUnit) RoundFloor(instant int64) (int64, error) {
	if instant >= 0 {
		return instant - instant%p.unitMillis, nil
	}
	instant++
	return safemath.Sub(instant-instant%p.unitMillis, p.unitMillis)
}

func (p *PreciseUnit) RoundCeiling(instant int64) (int64, error) {
	if instant > 0 {
		instant--
		return safemath.Add(instant-instant%p.unitMillis, p.unitMillis)
	}
	return instant - instant%p.unitMillis, nil
}

func (p *PreciseUnit) Remainder(instant int64) (int64, error) {
	if instant >= 0 {
		return instant % p.unitMillis, nil
	}
	return ((instant + 1) % p.unitMillis) + p.unitMillis - 1, nil
}

// ---------------------------------------------------------------------------
// PreciseDateTimeField
// ---------------------------------------------------------------------------

// PreciseDateTimeField is a field whose unit and range are both precise,
// so its value is plain modular arithmetic on the instant
// (minuteOfHour = instant / minute mod 60).
type PreciseDateTimeField struct {
	PreciseUnit
	rangeField DurationField
	span       int
}

// NewPreciseDateTimeField builds a field counting unit within rangeField.
func NewPreciseDateTimeField(t DateTimeFieldType, unit, rangeField DurationField) *PreciseDateTimeField {
	if !rangeField.IsPrecise() {
		panic("field: range duration field must be precise")
	}
	span := rangeField.UnitMillis() / unit.UnitMillis()
	if span < 2 {
		panic("field: the effective range must be at least 2")
	}
	f := &PreciseDateTimeField{rangeField: rangeField, span: int(span)}
	f.PreciseUnit = NewPreciseUnit(t, unit, f)
	return f
}

func (f *PreciseDateTimeField) Get(instant int64) int {
	unit := f.unitMillis
	span := int64(f.span)
	if instant >= 0 {
		return int((instant / unit) % span)
	}
	return f.span - 1 + int(((instant+1)/unit)%span)
}

func (f *PreciseDateTimeField) AddWrapField(instant int64, amount int) (int64, error) {
	current := f.Get(instant)
	wrapped, err := WrappedValue(current, int64(amount), f.MinimumValue(), f.MaximumValue())
	if err != nil {
		return 0, err
	}
	return f.shift(instant, wrapped-current)
}

func (f *PreciseDateTimeField) Set(instant int64, value int) (int64, error) {
	if err := VerifyValueBounds(f.Name(), value, f.MinimumValue(), f.MaximumValue()); err != nil {
		return 0, err
	}
	return f.shift(instant, value-f.Get(instant))
}

// shift moves instant by delta units.
func (f *PreciseDateTimeField) shift(instant int64, delta int) (int64, error) {
	ms, err := safemath.Mul(int64(delta), f.unitMillis)
	if err != nil {
		return 0, err
	}
	return safemath.Add(instant, ms)
}

func (f *PreciseDateTimeField) RangeDurationField() DurationField { return f.rangeField }

func (f *PreciseDateTimeField) MaximumValue() int { return f.span - 1 }

// Range returns the number of distinct values this field takes.
func (f *PreciseDateTimeField) Range() int { return f.span }
