package field

import (
	"math"

	"github.com/daviddao/chronology/pkg/chronoerr"
)

// Decorated forwards the primitive operations to a wrapped field. Fields
// that adjust another field's values (offset, zero-is-max, skip) embed it
// and override the few operations they change.
type Decorated struct {
	Base
	wrapped DateTimeField
}

// NewDecorated binds the forwarding mechanics to self.
func NewDecorated(wrapped DateTimeField, t DateTimeFieldType, self DateTimeField) Decorated {
	if wrapped == nil {
		panic("field: the wrapped field must not be nil")
	}
	if !wrapped.IsSupported() {
		panic("field: the wrapped field must be supported")
	}
	return Decorated{Base: NewBase(t, self), wrapped: wrapped}
}

// Wrapped returns the decorated field.
func (d *Decorated) Wrapped() DateTimeField { return d.wrapped }

func (d *Decorated) Get(instant int64) int { return d.wrapped.Get(instant) }

func (d *Decorated) Set(instant int64, value int) (int64, error) {
	return d.wrapped.Set(instant, value)
}

func (d *Decorated) DurationField() DurationField      { return d.wrapped.DurationField() }
func (d *Decorated) RangeDurationField() DurationField { return d.wrapped.RangeDurationField() }
func (d *Decorated) MinimumValue() int                 { return d.wrapped.MinimumValue() }
func (d *Decorated) MaximumValue() int                 { return d.wrapped.MaximumValue() }

func (d *Decorated) RoundFloor(instant int64) (int64, error) { return d.wrapped.RoundFloor(instant) }

// ---------------------------------------------------------------------------
// Delegated
// ---------------------------------------------------------------------------

// DelegatedDateTimeField forwards every operation to another field, optionally
// under a different type and range unit.
type DelegatedDateTimeField struct {
	DateTimeField
	typ        DateTimeFieldType
	rangeField DurationField
}

// NewDelegatedDateTimeField relabels wrapped as t; a nil rangeField keeps
// the wrapped field's range unit.
func NewDelegatedDateTimeField(wrapped DateTimeField, rangeField DurationField, t DateTimeFieldType) *DelegatedDateTimeField {
	if t == 0 {
		t = wrapped.Type()
	}
	return &DelegatedDateTimeField{DateTimeField: wrapped, typ: t, rangeField: rangeField}
}

func (d *DelegatedDateTimeField) Type() DateTimeFieldType { return d.typ }
func (d *DelegatedDateTimeField) Name() string            { return d.typ.Name() }

func (d *DelegatedDateTimeField) RangeDurationField() DurationField {
	if d.rangeField != nil {
		return d.rangeField
	}
	return d.DateTimeField.RangeDurationField()
}

// ---------------------------------------------------------------------------
// Offset
// ---------------------------------------------------------------------------

// OffsetDateTimeField shifts a wrapped field's values by a constant, e.g.
// the Buddhist year is the Gregorian year plus 543.
type OffsetDateTimeField struct {
	Decorated
	offset int
	min    int
	max    int
}

// NewOffsetDateTimeField shifts wrapped by offset, keeping its bounds.
func NewOffsetDateTimeField(wrapped DateTimeField, t DateTimeFieldType, offset int) *OffsetDateTimeField {
	return NewBoundedOffsetDateTimeField(wrapped, t, offset, math.MinInt32, math.MaxInt32)
}

// NewBoundedOffsetDateTimeField shifts wrapped by offset and narrows the
// resulting bounds to [min, max].
func NewBoundedOffsetDateTimeField(wrapped DateTimeField, t DateTimeFieldType, offset, min, max int) *OffsetDateTimeField {
	if offset == 0 {
		panic("field: the offset cannot be zero")
	}
	if t == 0 {
		t = wrapped.Type()
	}
	f := &OffsetDateTimeField{offset: offset, min: min, max: max}
	f.Decorated = NewDecorated(wrapped, t, f)
	if lo := wrapped.MinimumValue() + offset; min < lo {
		f.min = lo
	}
	if hi := wrapped.MaximumValue() + offset; max > hi {
		f.max = hi
	}
	return f
}

// Offset returns the constant added to the wrapped field's value.
func (f *OffsetDateTimeField) Offset() int { return f.offset }

func (f *OffsetDateTimeField) Get(instant int64) int { return f.wrapped.Get(instant) + f.offset }

func (f *OffsetDateTimeField) Add(instant int64, amount int64) (int64, error) {
	out, err := f.wrapped.Add(instant, amount)
	if err != nil {
		return 0, err
	}
	if err := VerifyValueBounds(f.Name(), f.Get(out), f.min, f.max); err != nil {
		return 0, err
	}
	return out, nil
}

func (f *OffsetDateTimeField) AddWrapField(instant int64, amount int) (int64, error) {
	wrapped, err := WrappedValue(f.Get(instant), int64(amount), f.min, f.max)
	if err != nil {
		return 0, err
	}
	return f.Set(instant, wrapped)
}

func (f *OffsetDateTimeField) Set(instant int64, value int) (int64, error) {
	if err := VerifyValueBounds(f.Name(), value, f.min, f.max); err != nil {
		return 0, err
	}
	return f.wrapped.Set(instant, value-f.offset)
}

func (f *OffsetDateTimeField) IsLeap(instant int64) bool        { return f.wrapped.IsLeap(instant) }
func (f *OffsetDateTimeField) LeapAmount(instant int64) int     { return f.wrapped.LeapAmount(instant) }
func (f *OffsetDateTimeField) LeapDurationField() DurationField { return f.wrapped.LeapDurationField() }

func (f *OffsetDateTimeField) MinimumValue() int { return f.min }
func (f *OffsetDateTimeField) MaximumValue() int { return f.max }

func (f *OffsetDateTimeField) RoundCeiling(instant int64) (int64, error) {
	return f.wrapped.RoundCeiling(instant)
}
func (f *OffsetDateTimeField) RoundHalfFloor(instant int64) (int64, error) {
	return f.wrapped.RoundHalfFloor(instant)
}
func (f *OffsetDateTimeField) RoundHalfCeiling(instant int64) (int64, error) {
	return f.wrapped.RoundHalfCeiling(instant)
}
func (f *OffsetDateTimeField) RoundHalfEven(instant int64) (int64, error) {
	return f.wrapped.RoundHalfEven(instant)
}
func (f *OffsetDateTimeField) Remainder(instant int64) (int64, error) {
	return f.wrapped.Remainder(instant)
}

// ---------------------------------------------------------------------------
// Zero is max
// ---------------------------------------------------------------------------

// ZeroIsMaxDateTimeField reports the wrapped field's zero as its maximum
// plus one: hourOfDay 0..23 becomes clockhourOfDay 1..24.
type ZeroIsMaxDateTimeField struct {
	Decorated
}

// NewZeroIsMaxDateTimeField wraps a field whose minimum is zero.
func NewZeroIsMaxDateTimeField(wrapped DateTimeField, t DateTimeFieldType) *ZeroIsMaxDateTimeField {
	if wrapped.MinimumValue() != 0 {
		panic("field: wrapped field's minimum value must be zero")
	}
	f := &ZeroIsMaxDateTimeField{}
	f.Decorated = NewDecorated(wrapped, t, f)
	return f
}

func (f *ZeroIsMaxDateTimeField) Get(instant int64) int {
	v := f.wrapped.Get(instant)
	if v == 0 {
		v = f.MaximumValue()
	}
	return v
}

func (f *ZeroIsMaxDateTimeField) Add(instant int64, amount int64) (int64, error) {
	return f.wrapped.Add(instant, amount)
}

func (f *ZeroIsMaxDateTimeField) AddWrapField(instant int64, amount int) (int64, error) {
	return f.wrapped.AddWrapField(instant, amount)
}

func (f *ZeroIsMaxDateTimeField) Difference(minuend, subtrahend int64) (int, error) {
	return f.wrapped.Difference(minuend, subtrahend)
}

func (f *ZeroIsMaxDateTimeField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	return f.wrapped.DifferenceInt64(minuend, subtrahend)
}

func (f *ZeroIsMaxDateTimeField) Set(instant int64, value int) (int64, error) {
	max := f.MaximumValue()
	if err := VerifyValueBounds(f.Name(), value, 1, max); err != nil {
		return 0, err
	}
	if value == max {
		value = 0
	}
	return f.wrapped.Set(instant, value)
}

func (f *ZeroIsMaxDateTimeField) IsLeap(instant int64) bool        { return f.wrapped.IsLeap(instant) }
func (f *ZeroIsMaxDateTimeField) LeapAmount(instant int64) int     { return f.wrapped.LeapAmount(instant) }
func (f *ZeroIsMaxDateTimeField) LeapDurationField() DurationField { return f.wrapped.LeapDurationField() }

func (f *ZeroIsMaxDateTimeField) MinimumValue() int                { return 1 }
func (f *ZeroIsMaxDateTimeField) MinimumValueAt(int64) int         { return 1 }
func (f *ZeroIsMaxDateTimeField) MaximumValue() int                { return f.wrapped.MaximumValue() + 1 }
func (f *ZeroIsMaxDateTimeField) MaximumValueAt(instant int64) int { return f.wrapped.MaximumValueAt(instant) + 1 }

func (f *ZeroIsMaxDateTimeField) RoundCeiling(instant int64) (int64, error) {
	return f.wrapped.RoundCeiling(instant)
}
func (f *ZeroIsMaxDateTimeField) RoundHalfFloor(instant int64) (int64, error) {
	return f.wrapped.RoundHalfFloor(instant)
}
func (f *ZeroIsMaxDateTimeField) RoundHalfCeiling(instant int64) (int64, error) {
	return f.wrapped.RoundHalfCeiling(instant)
}
func (f *ZeroIsMaxDateTimeField) RoundHalfEven(instant int64) (int64, error) {
	return f.wrapped.RoundHalfEven(instant)
}
func (f *ZeroIsMaxDateTimeField) Remainder(instant int64) (int64, error) {
	return f.wrapped.Remainder(instant)
}

// ---------------------------------------------------------------------------
// Skip / skip-undo
// ---------------------------------------------------------------------------

// SkipDateTimeField removes one value from a wrapped field's sequence.
// The Julian calendar has no year zero: 1 BC is followed by AD 1.
type SkipDateTimeField struct {
	Decorated
	skip int
	min  int
}

// NewSkipDateTimeField hides skip from wrapped, shifting values at or
// below it down by one.
func NewSkipDateTimeField(wrapped DateTimeField, skip int) *SkipDateTimeField {
	f := &SkipDateTimeField{skip: skip}
	f.Decorated = NewDecorated(wrapped, wrapped.Type(), f)
	switch min := wrapped.MinimumValue(); {
	case min < skip:
		f.min = min - 1
	case min == skip:
		f.min = skip + 1
	default:
		f.min = min
	}
	return f
}

func (f *SkipDateTimeField) Get(instant int64) int {
	v := f.wrapped.Get(instant)
	if v <= f.skip {
		v--
	}
	return v
}

func (f *SkipDateTimeField) Set(instant int64, value int) (int64, error) {
	if err := VerifyValueBounds(f.Name(), value, f.min, f.MaximumValue()); err != nil {
		return 0, err
	}
	if value <= f.skip {
		if value == f.skip {
			return 0, chronoerr.RangeMsg(f.Name(), int64(value), "value is skipped by this calendar")
		}
		value++
	}
	return f.wrapped.Set(instant, value)
}

func (f *SkipDateTimeField) Add(instant int64, amount int64) (int64, error) {
	return f.wrapped.Add(instant, amount)
}

func (f *SkipDateTimeField) MinimumValue() int { return f.min }

// SkipUndoDateTimeField restores a value a SkipDateTimeField removed, so
// a calendar built on the Julian year can count through year zero again.
type SkipUndoDateTimeField struct {
	Decorated
	skip int
	min  int
}

// NewSkipUndoDateTimeField reinstates skip in wrapped's sequence.
func NewSkipUndoDateTimeField(wrapped DateTimeField, skip int) *SkipUndoDateTimeField {
	f := &SkipUndoDateTimeField{skip: skip}
	f.Decorated = NewDecorated(wrapped, wrapped.Type(), f)
	switch min := wrapped.MinimumValue(); {
	case min < skip:
		f.min = min + 1
	case min == skip+1:
		f.min = skip
	default:
		f.min = min
	}
	return f
}

func (f *SkipUndoDateTimeField) Get(instant int64) int {
	v := f.wrapped.Get(instant)
	if v < f.skip {
		v++
	}
	return v
}

func (f *SkipUndoDateTimeField) Set(instant int64, value int) (int64, error) {
	if err := VerifyValueBounds(f.Name(), value, f.min, f.MaximumValue()); err != nil {
		return 0, err
	}
	if value <= f.skip {
		value--
	}
	return f.wrapped.Set(instant, value)
}

func (f *SkipUndoDateTimeField) Add(instant int64, amount int64) (int64, error) {
	return f.wrapped.Add(instant, amount)
}

func (f *SkipUndoDateTimeField) MinimumValue() int { return f.min }

// ---------------------------------------------------------------------------
// Unsupported
// ---------------------------------------------------------------------------

// UnsupportedDateTimeField stands in for a calendar field a chronology does
// not model. Get reads zero; every write fails with Unsupported.
type UnsupportedDateTimeField struct {
	typ  DateTimeFieldType
	unit DurationField
}

// NewUnsupportedDateTimeField returns an unsupported field measured in unit.
func NewUnsupportedDateTimeField(t DateTimeFieldType, unit DurationField) *UnsupportedDateTimeField {
	if unit == nil {
		unit = Unsupported(t.DurationType())
	}
	return &UnsupportedDateTimeField{typ: t, unit: unit}
}

func (f *UnsupportedDateTimeField) Type() DateTimeFieldType { return f.typ }
func (f *UnsupportedDateTimeField) Name() string            { return f.typ.Name() }
func (f *UnsupportedDateTimeField) IsSupported() bool       { return false }

func (f *UnsupportedDateTimeField) Get(int64) int { return 0 }

func (f *UnsupportedDateTimeField) fail() error { return chronoerr.UnsupportedField(f.Name()) }

func (f *UnsupportedDateTimeField) Set(int64, int) (int64, error) { return 0, f.fail() }

func (f *UnsupportedDateTimeField) Add(instant int64, amount int64) (int64, error) {
	return f.unit.Add(instant, amount)
}

func (f *UnsupportedDateTimeField) AddWrapField(int64, int) (int64, error) { return 0, f.fail() }

func (f *UnsupportedDateTimeField) Difference(minuend, subtrahend int64) (int, error) {
	return f.unit.Difference(minuend, subtrahend)
}

func (f *UnsupportedDateTimeField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	return f.unit.DifferenceInt64(minuend, subtrahend)
}

func (f *UnsupportedDateTimeField) IsLeap(int64) bool                 { return false }
func (f *UnsupportedDateTimeField) LeapAmount(int64) int              { return 0 }
func (f *UnsupportedDateTimeField) LeapDurationField() DurationField  { return nil }
func (f *UnsupportedDateTimeField) DurationField() DurationField      { return f.unit }
func (f *UnsupportedDateTimeField) RangeDurationField() DurationField { return nil }
func (f *UnsupportedDateTimeField) MinimumValue() int                 { return 0 }
func (f *UnsupportedDateTimeField) MinimumValueAt(int64) int          { return 0 }
func (f *UnsupportedDateTimeField) MaximumValue() int                 { return 0 }
func (f *UnsupportedDateTimeField) MaximumValueAt(int64) int          { return 0 }

func (f *UnsupportedDateTimeField) RoundFloor(int64) (int64, error)       { return 0, f.fail() }
func (f *UnsupportedDateTimeField) RoundCeiling(int64) (int64, error)     { return 0, f.fail() }
func (f *UnsupportedDateTimeField) RoundHalfFloor(int64) (int64, error)   { return 0, f.fail() }
func (f *UnsupportedDateTimeField) RoundHalfCeiling(int64) (int64, error) { return 0, f.fail() }
func (f *UnsupportedDateTimeField) RoundHalfEven(int64) (int64, error)    { return 0, f.fail() }
func (f *UnsupportedDateTimeField) Remainder(int64) (int64, error)        { return 0, f.fail() }
