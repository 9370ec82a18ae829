package chrono

import (
	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/safemath"
)

// newZoned decorates every supported field of a UTC chronology so it
// reads and writes local time in zone. Each distinct unit is wrapped once
// so fields sharing a unit still share it after zoning.
func newZoned(utc *assembled, zone *Zone) *assembled {
	a := &assembled{cal: utc.cal, zone: zone, minDays: utc.minDays, utc: utc, fields: utc.fields}

	converted := make(map[field.DurationField]field.DurationField)
	convert := func(d field.DurationField) field.DurationField {
		if d == nil || !d.IsSupported() {
			return d
		}
		if z, ok := converted[d]; ok {
			return z
		}
		z := newZonedDurationField(d, zone)
		converted[d] = z
		return z
	}

	for _, slot := range a.fields.durationSlots() {
		*slot = convert(*slot)
	}
	for _, slot := range a.fields.dateTimeSlots() {
		f := *slot
		if f == nil || !f.IsSupported() {
			continue
		}
		*slot = newZonedDateTimeField(f, zone,
			convert(f.DurationField()), convert(f.RangeDurationField()), convert(f.LeapDurationField()))
	}
	return a
}

// useTimeArithmetic reports whether a unit is short enough that adding it
// should move the instant by exact millis rather than keep the local time.
func useTimeArithmetic(unit field.DurationField) bool {
	return unit != nil && unit.UnitMillis() < field.MillisPerHalfday
}

// offsetToAdd returns the offset at instant, failing when instant plus
// the offset leaves the int64 range.
func (z *Zone) offsetToAdd(instant int64) (int64, error) {
	offset := int64(z.Offset(instant))
	if _, err := safemath.Add(instant, offset); err != nil {
		return 0, chronoerr.Overflowed("adding time zone offset caused overflow")
	}
	return offset, nil
}

// offsetFromLocalToSubtract returns the offset for local millis, failing
// when local minus the offset leaves the int64 range.
func (z *Zone) offsetFromLocalToSubtract(local int64) (int64, error) {
	offset := int64(z.OffsetFromLocal(local))
	if _, err := safemath.Sub(local, offset); err != nil {
		return 0, chronoerr.Overflowed("subtracting time zone offset caused overflow")
	}
	return offset, nil
}

// ---------------------------------------------------------------------------
// zonedDurationField
// ---------------------------------------------------------------------------

type zonedDurationField struct {
	wrapped   field.DurationField
	zone      *Zone
	timeField bool
}

func newZonedDurationField(wrapped field.DurationField, zone *Zone) *zonedDurationField {
	return &zonedDurationField{wrapped: wrapped, zone: zone, timeField: useTimeArithmetic(wrapped)}
}

func (f *zonedDurationField) Type() field.DurationFieldType { return f.wrapped.Type() }
func (f *zonedDurationField) Name() string                  { return f.wrapped.Name() }
func (f *zonedDurationField) IsSupported() bool             { return f.wrapped.IsSupported() }
func (f *zonedDurationField) UnitMillis() int64             { return f.wrapped.UnitMillis() }

// IsPrecise: a day is only a fixed length in a zone without transitions.
func (f *zonedDurationField) IsPrecise() bool {
	if f.timeField {
		return f.wrapped.IsPrecise()
	}
	return f.wrapped.IsPrecise() && f.zone.IsFixed()
}

func (f *zonedDurationField) Value(duration int64) (int64, error) { return f.wrapped.Value(duration) }
func (f *zonedDurationField) Millis(value int64) (int64, error)   { return f.wrapped.Millis(value) }

func (f *zonedDurationField) ValueAt(duration, instant int64) (int64, error) {
	offset, err := f.zone.offsetToAdd(instant)
	if err != nil {
		return 0, err
	}
	return f.wrapped.ValueAt(duration, instant+offset)
}

func (f *zonedDurationField) MillisAt(value, instant int64) (int64, error) {
	offset, err := f.zone.offsetToAdd(instant)
	if err != nil {
		return 0, err
	}
	return f.wrapped.MillisAt(value, instant+offset)
}

func (f *zonedDurationField) Add(instant, value int64) (int64, error) {
	offset, err := f.zone.offsetToAdd(instant)
	if err != nil {
		return 0, err
	}
	local, err := f.wrapped.Add(instant+offset, value)
	if err != nil {
		return 0, err
	}
	if !f.timeField {
		if offset, err = f.zone.offsetFromLocalToSubtract(local); err != nil {
			return 0, err
		}
	}
	return safemath.Sub(local, offset)
}

func (f *zonedDurationField) Subtract(instant, value int64) (int64, error) {
	neg, err := safemath.Neg(value)
	if err != nil {
		return 0, err
	}
	return f.Add(instant, neg)
}

func (f *zonedDurationField) Difference(minuend, subtrahend int64) (int, error) {
	d, err := f.DifferenceInt64(minuend, subtrahend)
	if err != nil {
		return 0, err
	}
	return safemath.ToInt32(d)
}

func (f *zonedDurationField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	m, s, err := localPair(f.zone, f.timeField, minuend, subtrahend)
	if err != nil {
		return 0, err
	}
	return f.wrapped.DifferenceInt64(m, s)
}

func (f *zonedDurationField) String() string { return "DurationField[" + f.Name() + "]" }

// localPair shifts both instants of a difference into local time. Time
// units shift both by the subtrahend's offset so a transition between them
// still counts.
func localPair(zone *Zone, timeField bool, minuend, subtrahend int64) (int64, int64, error) {
	offset, err := zone.offsetToAdd(subtrahend)
	if err != nil {
		return 0, 0, err
	}
	minuendOffset := offset
	if !timeField {
		if minuendOffset, err = zone.offsetToAdd(minuend); err != nil {
			return 0, 0, err
		}
	}
	return minuend + minuendOffset, subtrahend + offset, nil
}

// ---------------------------------------------------------------------------
// zonedDateTimeField
// ---------------------------------------------------------------------------

type zonedDateTimeField struct {
	field.Base
	wrapped    field.DateTimeField
	zone       *Zone
	duration   field.DurationField
	rangeField field.DurationField
	leapField  field.DurationField
	timeField  bool
}

func newZonedDateTimeField(wrapped field.DateTimeField, zone *Zone, duration, rangeField, leap field.DurationField) *zonedDateTimeField {
	f := &zonedDateTimeField{
		wrapped:    wrapped,
		zone:       zone,
		duration:   duration,
		rangeField: rangeField,
		leapField:  leap,
		timeField:  useTimeArithmetic(duration),
	}
	f.Base = field.NewBase(wrapped.Type(), f)
	return f
}

func (f *zonedDateTimeField) Get(instant int64) int {
	return f.wrapped.Get(f.zone.toLocal(instant))
}

func (f *zonedDateTimeField) Add(instant int64, value int64) (int64, error) {
	return f.apply(instant, func(local int64) (int64, error) { return f.wrapped.Add(local, value) })
}

func (f *zonedDateTimeField) AddWrapField(instant int64, value int) (int64, error) {
	return f.apply(instant, func(local int64) (int64, error) { return f.wrapped.AddWrapField(local, value) })
}

func (f *zonedDateTimeField) RoundFloor(instant int64) (int64, error) {
	return f.apply(instant, f.wrapped.RoundFloor)
}

func (f *zonedDateTimeField) RoundCeiling(instant int64) (int64, error) {
	return f.apply(instant, f.wrapped.RoundCeiling)
}

// apply runs op on the local value of instant. Time fields shift back by
// the same offset; date fields resolve the new local time against the
// zone, staying on the original side of an overlap.
func (f *zonedDateTimeField) apply(instant int64, op func(local int64) (int64, error)) (int64, error) {
	if f.timeField {
		offset, err := f.zone.offsetToAdd(instant)
		if err != nil {
			return 0, err
		}
		local, err := op(instant + offset)
		if err != nil {
			return 0, err
		}
		return safemath.Sub(local, offset)
	}
	local, err := f.zone.ConvertUTCToLocal(instant)
	if err != nil {
		return 0, err
	}
	if local, err = op(local); err != nil {
		return 0, err
	}
	return f.zone.convertLocalToUTCNear(local, false, instant)
}

// Set fails when the requested local value falls in a transition gap.
func (f *zonedDateTimeField) Set(instant int64, value int) (int64, error) {
	local, err := f.zone.ConvertUTCToLocal(instant)
	if err != nil {
		return 0, err
	}
	if local, err = f.wrapped.Set(local, value); err != nil {
		return 0, err
	}
	result, err := f.zone.convertLocalToUTCNear(local, false, instant)
	if err != nil {
		return 0, err
	}
	if f.Get(result) != value {
		return 0, chronoerr.RangeMsg(f.Name(), int64(value), f.zone.illegalInstant(local).Error())
	}
	return result, nil
}

func (f *zonedDateTimeField) Difference(minuend, subtrahend int64) (int, error) {
	m, s, err := localPair(f.zone, f.timeField, minuend, subtrahend)
	if err != nil {
		return 0, err
	}
	return f.wrapped.Difference(m, s)
}

func (f *zonedDateTimeField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	m, s, err := localPair(f.zone, f.timeField, minuend, subtrahend)
	if err != nil {
		return 0, err
	}
	return f.wrapped.DifferenceInt64(m, s)
}

func (f *zonedDateTimeField) Remainder(instant int64) (int64, error) {
	local, err := f.zone.ConvertUTCToLocal(instant)
	if err != nil {
		return 0, err
	}
	return f.wrapped.Remainder(local)
}

func (f *zonedDateTimeField) IsLeap(instant int64) bool {
	return f.wrapped.IsLeap(f.zone.toLocal(instant))
}

func (f *zonedDateTimeField) LeapAmount(instant int64) int {
	return f.wrapped.LeapAmount(f.zone.toLocal(instant))
}

func (f *zonedDateTimeField) MinimumValueAt(instant int64) int {
	return f.wrapped.MinimumValueAt(f.zone.toLocal(instant))
}

func (f *zonedDateTimeField) MaximumValueAt(instant int64) int {
	return f.wrapped.MaximumValueAt(f.zone.toLocal(instant))
}

func (f *zonedDateTimeField) DurationField() field.DurationField      { return f.duration }
func (f *zonedDateTimeField) RangeDurationField() field.DurationField { return f.rangeField }
func (f *zonedDateTimeField) LeapDurationField() field.DurationField  { return f.leapField }
func (f *zonedDateTimeField) MinimumValue() int                       { return f.wrapped.MinimumValue() }
func (f *zonedDateTimeField) MaximumValue() int                       { return f.wrapped.MaximumValue() }
