package field

import (
	"sync"

	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/safemath"
)

// Fixed unit sizes.
const (
	MillisPerSecond  int64 = 1000
	MillisPerMinute        = 60 * MillisPerSecond
	MillisPerHour          = 60 * MillisPerMinute
	MillisPerHalfday       = 12 * MillisPerHour
	MillisPerDay           = 24 * MillisPerHour
	MillisPerWeek          = 7 * MillisPerDay
)

// DurationField measures one unit of time between timeline positions.
//
// UnitMillis is exact only when IsPrecise reports true; for months, years and
// the like it is an average, useful for estimates and ordering but never as a
// multiplier.
type DurationField interface {
	Type() DurationFieldType
	Name() string
	IsSupported() bool
	IsPrecise() bool
	UnitMillis() int64

	// Value converts a millisecond duration to whole units. Precise only.
	Value(duration int64) (int64, error)
	// ValueAt converts a duration that starts at instant to whole units.
	ValueAt(duration, instant int64) (int64, error)
	// Millis converts a count of units to milliseconds. Precise only.
	Millis(value int64) (int64, error)
	// MillisAt converts a count of units added at instant to milliseconds.
	MillisAt(value, instant int64) (int64, error)

	Add(instant, value int64) (int64, error)
	Subtract(instant, value int64) (int64, error)

	// Difference returns the whole units between the two instants,
	// narrowed to the 32-bit range.
	Difference(minuend, subtrahend int64) (int, error)
	DifferenceInt64(minuend, subtrahend int64) (int64, error)
}

func subtractVia(f DurationField, instant, value int64) (int64, error) {
	neg, err := safemath.Neg(value)
	if err != nil {
		return 0, err
	}
	return f.Add(instant, neg)
}

func differenceVia(f DurationField, minuend, subtrahend int64) (int, error) {
	d, err := f.DifferenceInt64(minuend, subtrahend)
	if err != nil {
		return 0, err
	}
	return safemath.ToInt32(d)
}

func millisAtVia(f DurationField, value, instant int64) (int64, error) {
	end, err := f.Add(instant, value)
	if err != nil {
		return 0, err
	}
	return safemath.Sub(end, instant)
}

func valueAtVia(f DurationField, duration, instant int64) (int64, error) {
	end, err := safemath.Add(instant, duration)
	if err != nil {
		return 0, err
	}
	return f.DifferenceInt64(end, instant)
}

// ---------------------------------------------------------------------------
// Precise
// ---------------------------------------------------------------------------

// PreciseDurationField is a unit with a fixed millisecond size.
type PreciseDurationField struct {
	typ  DurationFieldType
	unit int64
}

// NewPreciseDurationField returns a fixed-size unit. It panics when unit
// is not positive; unit sizes are compile-time facts, not user input.
func NewPreciseDurationField(t DurationFieldType, unitMillis int64) *PreciseDurationField {
	if unitMillis <= 0 {
		panic("field: precise duration unit must be positive")
	}
	return &PreciseDurationField{typ: t, unit: unitMillis}
}

// MillisField is the shared one-millisecond unit.
var MillisField = NewPreciseDurationField(Millis, 1)

func (f *PreciseDurationField) Type() DurationFieldType { return f.typ }
func (f *PreciseDurationField) Name() string            { return f.typ.Name() }
func (f *PreciseDurationField) IsSupported() bool       { return true }
func (f *PreciseDurationField) IsPrecise() bool         { return true }
func (f *PreciseDurationField) UnitMillis() int64       { return f.unit }

func (f *PreciseDurationField) Value(duration int64) (int64, error) {
	return duration / f.unit, nil
}

func (f *PreciseDurationField) ValueAt(duration, _ int64) (int64, error) {
	return duration / f.unit, nil
}

func (f *PreciseDurationField) Millis(value int64) (int64, error) {
	return safemath.Mul(value, f.unit)
}

func (f *PreciseDurationField) MillisAt(value, _ int64) (int64, error) {
	return safemath.Mul(value, f.unit)
}

func (f *PreciseDurationField) Add(instant, value int64) (int64, error) {
	add, err := safemath.Mul(value, f.unit)
	if err != nil {
		return 0, err
	}
	return safemath.Add(instant, add)
}

func (f *PreciseDurationField) Subtract(instant, value int64) (int64, error) {
	return subtractVia(f, instant, value)
}

func (f *PreciseDurationField) Difference(minuend, subtrahend int64) (int, error) {
	return differenceVia(f, minuend, subtrahend)
}

func (f *PreciseDurationField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	diff, err := safemath.Sub(minuend, subtrahend)
	if err != nil {
		return 0, err
	}
	return diff / f.unit, nil
}

func (f *PreciseDurationField) String() string { return "DurationField[" + f.Name() + "]" }

// ---------------------------------------------------------------------------
// Scaled
// ---------------------------------------------------------------------------

// ScaledDurationField multiplies another unit, e.g. centuries from years.
type ScaledDurationField struct {
	wrapped DurationField
	typ     DurationFieldType
	scalar  int64
}

// NewScaledDurationField returns wrapped scaled by scalar. Scalars of
// 0 and 1 are rejected with a panic.
func NewScaledDurationField(wrapped DurationField, t DurationFieldType, scalar int) *ScaledDurationField {
	if scalar == 0 || scalar == 1 {
		panic("field: scalar must not be 0 or 1")
	}
	return &ScaledDurationField{wrapped: wrapped, typ: t, scalar: int64(scalar)}
}

func (f *ScaledDurationField) Type() DurationFieldType { return f.typ }
func (f *ScaledDurationField) Name() string            { return f.typ.Name() }
func (f *ScaledDurationField) IsSupported() bool       { return f.wrapped.IsSupported() }
func (f *ScaledDurationField) IsPrecise() bool         { return f.wrapped.IsPrecise() }
func (f *ScaledDurationField) UnitMillis() int64       { return f.wrapped.UnitMillis() * f.scalar }

// Scalar returns the multiplier applied to the wrapped unit.
func (f *ScaledDurationField) Scalar() int { return int(f.scalar) }

func (f *ScaledDurationField) Value(duration int64) (int64, error) {
	v, err := f.wrapped.Value(duration)
	if err != nil {
		return 0, err
	}
	return v / f.scalar, nil
}

func (f *ScaledDurationField) ValueAt(duration, instant int64) (int64, error) {
	v, err := f.wrapped.ValueAt(duration, instant)
	if err != nil {
		return 0, err
	}
	return v / f.scalar, nil
}

func (f *ScaledDurationField) Millis(value int64) (int64, error) {
	scaled, err := safemath.Mul(value, f.scalar)
	if err != nil {
		return 0, err
	}
	return f.wrapped.Millis(scaled)
}

func (f *ScaledDurationField) MillisAt(value, instant int64) (int64, error) {
	scaled, err := safemath.Mul(value, f.scalar)
	if err != nil {
		return 0, err
	}
	return f.wrapped.MillisAt(scaled, instant)
}

func (f *ScaledDurationField) Add(instant, value int64) (int64, error) {
	scaled, err := safemath.Mul(value, f.scalar)
	if err != nil {
		return 0, err
	}
	return f.wrapped.Add(instant, scaled)
}

func (f *ScaledDurationField) Subtract(instant, value int64) (int64, error) {
	return subtractVia(f, instant, value)
}

func (f *ScaledDurationField) Difference(minuend, subtrahend int64) (int, error) {
	return differenceVia(f, minuend, subtrahend)
}

func (f *ScaledDurationField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	d, err := f.wrapped.DifferenceInt64(minuend, subtrahend)
	if err != nil {
		return 0, err
	}
	return d / f.scalar, nil
}

// ---------------------------------------------------------------------------
// Unsupported
// ---------------------------------------------------------------------------

// UnsupportedDurationField stands in for a unit a chronology does not
// model. It reads as zero and rejects any non-zero amount.
type UnsupportedDurationField struct {
	typ DurationFieldType
}

var (
	unsupportedMu       sync.Mutex
	unsupportedDuration = map[DurationFieldType]*UnsupportedDurationField{}
)

// Unsupported returns the shared unsupported unit of type t.
func Unsupported(t DurationFieldType) *UnsupportedDurationField {
	unsupportedMu.Lock()
	defer unsupportedMu.Unlock()
	f, ok := unsupportedDuration[t]
	if !ok {
		f = &UnsupportedDurationField{typ: t}
		unsupportedDuration[t] = f
	}
	return f
}

func (f *UnsupportedDurationField) Type() DurationFieldType { return f.typ }
func (f *UnsupportedDurationField) Name() string            { return f.typ.Name() }
func (f *UnsupportedDurationField) IsSupported() bool       { return false }
func (f *UnsupportedDurationField) IsPrecise() bool         { return true }
func (f *UnsupportedDurationField) UnitMillis() int64       { return 0 }

func (f *UnsupportedDurationField) Value(int64) (int64, error)          { return 0, nil }
func (f *UnsupportedDurationField) ValueAt(int64, int64) (int64, error) { return 0, nil }

func (f *UnsupportedDurationField) Millis(value int64) (int64, error) {
	if value != 0 {
		return 0, chronoerr.UnsupportedField(f.Name())
	}
	return 0, nil
}

func (f *UnsupportedDurationField) MillisAt(value, _ int64) (int64, error) {
	return f.Millis(value)
}

func (f *UnsupportedDurationField) Add(instant, value int64) (int64, error) {
	if value != 0 {
		return 0, chronoerr.UnsupportedField(f.Name())
	}
	return instant, nil
}

func (f *UnsupportedDurationField) Subtract(instant, value int64) (int64, error) {
	return f.Add(instant, value)
}

func (f *UnsupportedDurationField) Difference(int64, int64) (int, error) { return 0, nil }

func (f *UnsupportedDurationField) DifferenceInt64(int64, int64) (int64, error) { return 0, nil }
