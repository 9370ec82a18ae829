package field

import (
	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/safemath"
)

// DateTimeField reads and writes one calendar value at a timeline position.
//
// Get never fails. Every operation that produces a new timeline position
// returns an error so range violations, unsupported writes and overflow
// surface to the caller instead of wrapping.
type DateTimeField interface {
	Type() DateTimeFieldType
	Name() string
	IsSupported() bool

	Get(instant int64) int
	Set(instant int64, value int) (int64, error)
	Add(instant int64, amount int64) (int64, error)
	AddWrapField(instant int64, amount int) (int64, error)
	Difference(minuend, subtrahend int64) (int, error)
	DifferenceInt64(minuend, subtrahend int64) (int64, error)

	IsLeap(instant int64) bool
	LeapAmount(instant int64) int
	LeapDurationField() DurationField
	DurationField() DurationField
	RangeDurationField() DurationField

	MinimumValue() int
	MinimumValueAt(instant int64) int
	MaximumValue() int
	MaximumValueAt(instant int64) int

	RoundFloor(instant int64) (int64, error)
	RoundCeiling(instant int64) (int64, error)
	RoundHalfFloor(instant int64) (int64, error)
	RoundHalfCeiling(instant int64) (int64, error)
	RoundHalfEven(instant int64) (int64, error)
	Remainder(instant int64) (int64, error)
}

// SetBounder is implemented by fields whose legal maximum for Set depends
// on the value being set (dayOfMonth accepts 1..28 without consulting the
// month, so it can be set before the month is known).
type SetBounder interface {
	MaximumValueForSet(instant int64, value int) int
}

// Base supplies the operations every field derives from its primitive
// ones (Get, Set, RoundFloor, DurationField and the bounds). A concrete
// field embeds Base, passes itself as self, and overrides whatever its
// calendar needs to do differently.
type Base struct {
	typ  DateTimeFieldType
	self DateTimeField
}

// NewBase binds the derived operations to self.
func NewBase(t DateTimeFieldType, self DateTimeField) Base {
	return Base{typ: t, self: self}
}

func (b *Base) Type() DateTimeFieldType { return b.typ }
func (b *Base) Name() string            { return b.typ.Name() }
func (b *Base) IsSupported() bool       { return true }
func (b *Base) String() string          { return "DateTimeField[" + b.Name() + "]" }

func (b *Base) Add(instant int64, amount int64) (int64, error) {
	return b.self.DurationField().Add(instant, amount)
}

func (b *Base) AddWrapField(instant int64, amount int) (int64, error) {
	current := b.self.Get(instant)
	wrapped, err := WrappedValue(current, int64(amount), b.self.MinimumValueAt(instant), b.self.MaximumValueAt(instant))
	if err != nil {
		return 0, err
	}
	return b.self.Set(instant, wrapped)
}

func (b *Base) Difference(minuend, subtrahend int64) (int, error) {
	return b.self.DurationField().Difference(minuend, subtrahend)
}

func (b *Base) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	return b.self.DurationField().DifferenceInt64(minuend, subtrahend)
}

func (b *Base) IsLeap(int64) bool                { return false }
func (b *Base) LeapAmount(int64) int             { return 0 }
func (b *Base) LeapDurationField() DurationField { return nil }

func (b *Base) MinimumValueAt(int64) int { return b.self.MinimumValue() }
func (b *Base) MaximumValueAt(int64) int { return b.self.MaximumValue() }

// RoundCeiling rounds up to the next unit boundary unless instant is
// already on one.
func (b *Base) RoundCeiling(instant int64) (int64, error) {
	floor, err := b.self.RoundFloor(instant)
	if err != nil {
		return 0, err
	}
	if floor != instant {
		return b.self.Add(floor, 1)
	}
	return instant, nil
}

func (b *Base) bounds(instant int64) (floor, ceiling int64, err error) {
	if floor, err = b.self.RoundFloor(instant); err != nil {
		return 0, 0, err
	}
	if ceiling, err = b.self.RoundCeiling(instant); err != nil {
		return 0, 0, err
	}
	return floor, ceiling, nil
}

// RoundHalfFloor rounds to the nearest boundary, favouring the floor on a tie.
func (b *Base) RoundHalfFloor(instant int64) (int64, error) {
	floor, ceiling, err := b.bounds(instant)
	if err != nil {
		return 0, err
	}
	if instant-floor <= ceiling-instant {
		return floor, nil
	}
	return ceiling, nil
}

// RoundHalfCeiling rounds to the nearest boundary, favouring the ceiling on a tie.
func (b *Base) RoundHalfCeiling(instant int64) (int64, error) {
	floor, ceiling, err := b.bounds(instant)
	if err != nil {
		return 0, err
	}
	if ceiling-instant <= instant-floor {
		return ceiling, nil
	}
	return floor, nil
}

// RoundHalfEven rounds to the nearest boundary. A tie goes to the floor
// when the floor's value is even and to the ceiling otherwise.
func (b *Base) RoundHalfEven(instant int64) (int64, error) {
	floor, ceiling, err := b.bounds(instant)
	if err != nil {
		return 0, err
	}
	fromFloor := instant - floor
	toCeiling := ceiling - instant
	switch {
	case fromFloor < toCeiling:
		return floor, nil
	case toCeiling < fromFloor:
		return ceiling, nil
	case b.self.Get(floor)&1 == 0:
		return floor, nil
	default:
		return ceiling, nil
	}
}

func (b *Base) Remainder(instant int64) (int64, error) {
	floor, err := b.self.RoundFloor(instant)
	if err != nil {
		return 0, err
	}
	return instant - floor, nil
}

// maximumForSet returns the upper bound Set should validate against.
func maximumForSet(f DateTimeField, instant int64, value int) int {
	if sb, ok := f.(SetBounder); ok {
		return sb.MaximumValueForSet(instant, value)
	}
	return f.MaximumValueAt(instant)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// VerifyValueBounds fails with an OutOfRange error naming the field when
// value lies outside [lower, upper].
func VerifyValueBounds(name string, value, lower, upper int) error {
	if value < lower || value > upper {
		return chronoerr.Range(name, int64(value), int64(lower), int64(upper))
	}
	return nil
}

// WrappedValue adds delta to current and wraps the sum into [min, max].
func WrappedValue(current int, delta int64, min, max int) (int, error) {
	if min >= max {
		return 0, chronoerr.Invalid("wrap range min %d must be below max %d", min, max)
	}
	span := int64(max) - int64(min) + 1
	v := int64(current) + delta - int64(min)
	return int(safemath.FloorMod(v, span)) + min, nil
}
