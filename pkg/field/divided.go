package field

import (
	"github.com/daviddao/chronology/pkg/safemath"
)

// DividedDateTimeField groups a wrapped field's values into blocks of
// divisor: centuryOfEra is yearOfEra divided by 100. Negative values
// floor, so -1 lands in block -1 rather than 0.
type DividedDateTimeField struct {
	Decorated
	divisor    int
	unit       *ScaledDurationField
	rangeField DurationField
	min        int
	max        int
}

// NewDividedDateTimeField divides wrapped by divisor. A nil rangeField
// keeps the wrapped field's range unit.
func NewDividedDateTimeField(wrapped DateTimeField, rangeField DurationField, t DateTimeFieldType, divisor int) *DividedDateTimeField {
	if divisor < 2 {
		panic("field: the divisor must be at least 2")
	}
	if rangeField == nil {
		rangeField = wrapped.RangeDurationField()
	}
	f := &DividedDateTimeField{
		divisor:    divisor,
		unit:       NewScaledDurationField(wrapped.DurationField(), t.DurationType(), divisor),
		rangeField: rangeField,
		min:        floorQuotient(wrapped.MinimumValue(), divisor),
		max:        floorQuotient(wrapped.MaximumValue(), divisor),
	}
	f.Decorated = NewDecorated(wrapped, t, f)
	return f
}

// Divisor returns the block size.
func (f *DividedDateTimeField) Divisor() int { return f.divisor }

func (f *DividedDateTimeField) Get(instant int64) int {
	return floorQuotient(f.wrapped.Get(instant), f.divisor)
}

func (f *DividedDateTimeField) Add(instant int64, amount int64) (int64, error) {
	scaled, err := safemath.Mul(amount, int64(f.divisor))
	if err != nil {
		return 0, err
	}
	return f.wrapped.Add(instant, scaled)
}

func (f *DividedDateTimeField) AddWrapField(instant int64, amount int) (int64, error) {
	wrapped, err := WrappedValue(f.Get(instant), int64(amount), f.min, f.max)
	if err != nil {
		return 0, err
	}
	return f.Set(instant, wrapped)
}

func (f *DividedDateTimeField) Difference(minuend, subtrahend int64) (int, error) {
	d, err := f.DifferenceInt64(minuend, subtrahend)
	if err != nil {
		return 0, err
	}
	return safemath.ToInt32(d)
}

func (f *DividedDateTimeField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	d, err := f.wrapped.DifferenceInt64(minuend, subtrahend)
	if err != nil {
		return 0, err
	}
	return d / int64(f.divisor), nil
}

// Set keeps the position within the block: setting centuryOfEra to 19 on
// year 2024 gives 1924.
func (f *DividedDateTimeField) Set(instant int64, value int) (int64, error) {
	if err := VerifyValueBounds(f.Name(), value, f.min, f.max); err != nil {
		return 0, err
	}
	rem := floorRemainder(f.wrapped.Get(instant), f.divisor)
	return f.wrapped.Set(instant, value*f.divisor+rem)
}

func (f *DividedDateTimeField) DurationField() DurationField      { return f.unit }
func (f *DividedDateTimeField) RangeDurationField() DurationField { return f.rangeField }

func (f *DividedDateTimeField) MinimumValue() int { return f.min }
func (f *DividedDateTimeField) MaximumValue() int { return f.max }

func (f *DividedDateTimeField) RoundFloor(instant int64) (int64, error) {
	start, err := f.wrapped.Set(instant, f.Get(instant)*f.divisor)
	if err != nil {
		return 0, err
	}
	return f.wrapped.RoundFloor(start)
}

// ---------------------------------------------------------------------------
// Remainder
// ---------------------------------------------------------------------------

// RemainderDateTimeField is the position within a divided field's block:
// yearOfCentury alongside centuryOfEra. Values run 0..divisor-1.
type RemainderDateTimeField struct {
	Decorated
	divisor    int
	unit       DurationField
	rangeField DurationField
}

// NewRemainderDateTimeField pairs with divided. A nil rangeField measures
// the range in the divided field's unit.
func NewRemainderDateTimeField(divided *DividedDateTimeField, rangeField DurationField, t DateTimeFieldType) *RemainderDateTimeField {
	if rangeField == nil {
		rangeField = divided.DurationField()
	}
	return newRemainder(divided.Wrapped(), rangeField, t, divided.Divisor())
}

// NewRemainderOf builds the remainder of wrapped modulo divisor directly.
// A nil rangeField measures the range in wrapped's unit scaled by divisor.
func NewRemainderOf(wrapped DateTimeField, rangeField DurationField, t DateTimeFieldType, divisor int) *RemainderDateTimeField {
	if rangeField == nil {
		rt, ok := t.RangeDurationType()
		if !ok {
			rt = wrapped.DurationField().Type()
		}
		rangeField = NewScaledDurationField(wrapped.DurationField(), rt, divisor)
	}
	return newRemainder(wrapped, rangeField, t, divisor)
}

func newRemainder(wrapped DateTimeField, rangeField DurationField, t DateTimeFieldType, divisor int) *RemainderDateTimeField {
	if divisor < 2 {
		panic("field: the divisor must be at least 2")
	}
	f := &RemainderDateTimeField{divisor: divisor, unit: wrapped.DurationField(), rangeField: rangeField}
	f.Decorated = NewDecorated(wrapped, t, f)
	return f
}

func (f *RemainderDateTimeField) Get(instant int64) int {
	return floorRemainder(f.wrapped.Get(instant), f.divisor)
}

func (f *RemainderDateTimeField) AddWrapField(instant int64, amount int) (int64, error) {
	wrapped, err := WrappedValue(f.Get(instant), int64(amount), 0, f.divisor-1)
	if err != nil {
		return 0, err
	}
	return f.Set(instant, wrapped)
}

func (f *RemainderDateTimeField) Set(instant int64, value int) (int64, error) {
	if err := VerifyValueBounds(f.Name(), value, 0, f.divisor-1); err != nil {
		return 0, err
	}
	block := floorQuotient(f.wrapped.Get(instant), f.divisor)
	return f.wrapped.Set(instant, block*f.divisor+value)
}

func (f *RemainderDateTimeField) DurationField() DurationField      { return f.unit }
func (f *RemainderDateTimeField) RangeDurationField() DurationField { return f.rangeField }

func (f *RemainderDateTimeField) MinimumValue() int { return 0 }
func (f *RemainderDateTimeField) MaximumValue() int { return f.divisor - 1 }

func (f *RemainderDateTimeField) RoundCeiling(instant int64) (int64, error) {
	return f.wrapped.RoundCeiling(instant)
}
func (f *RemainderDateTimeField) RoundHalfFloor(instant int64) (int64, error) {
	return f.wrapped.RoundHalfFloor(instant)
}
func (f *RemainderDateTimeField) RoundHalfCeiling(instant int64) (int64, error) {
	return f.wrapped.RoundHalfCeiling(instant)
}
func (f *RemainderDateTimeField) RoundHalfEven(instant int64) (int64, error) {
	return f.wrapped.RoundHalfEven(instant)
}
func (f *RemainderDateTimeField) Remainder(instant int64) (int64, error) {
	return f.wrapped.Remainder(instant)
}

func floorQuotient(v, divisor int) int {
	if v >= 0 {
		return v / divisor
	}
	return (v+1)/divisor - 1
}

func floorRemainder(v, divisor int) int {
	if v >= 0 {
		return v % divisor
	}
	return divisor - 1 + (v+1)%divisor
}
