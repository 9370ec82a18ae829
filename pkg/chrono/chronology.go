// Package chrono assembles calendar systems out of the field package's
// building blocks and binds them to time zones.
//
// A Chronology is immutable and shared: New returns the same instance for
// the same calendar and zone, so chronologies may be compared with ==.
//
//	iso, _ := chrono.New(chrono.ISO, chrono.UTC)
//	jan31, _ := iso.DateTimeMillis(2023, 1, 31, 0)
//	feb28, _ := iso.Fields().MonthOfYear.Add(jan31, 1)
package chrono

import (
	"strconv"

	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/safemath"
)

// Calendar names a calendar system.
type Calendar string

const (
	ISO       Calendar = "ISO"
	Gregorian Calendar = "Gregorian"
	Julian    Calendar = "Julian"
	GJ        Calendar = "GJ"
	Buddhist  Calendar = "Buddhist"
)

// Calendars lists every supported calendar system.
func Calendars() []Calendar { return []Calendar{ISO, Gregorian, Julian, GJ, Buddhist} }

// PeriodShape is an ordered list of duration units, largest first.
type PeriodShape interface {
	Size() int
	FieldType(i int) field.DurationFieldType
}

// ReadablePeriod is a PeriodShape with a value for each unit.
type ReadablePeriod interface {
	PeriodShape
	Value(i int) int
}

// Chronology is a calendar system bound to a time zone.
type Chronology interface {
	// ID identifies the chronology, e.g. "ISO[Europe/London]". ForID
	// reverses it.
	ID() string
	Calendar() Calendar
	Zone() *Zone
	MinDaysInFirstWeek() int

	WithUTC() Chronology
	WithZone(zone *Zone) (Chronology, error)

	// Fields exposes the full field table. The table must not be modified.
	Fields() *Fields
	Field(t field.DateTimeFieldType) field.DateTimeField
	DurationField(t field.DurationFieldType) field.DurationField

	// DateTimeMillis assembles an instant from a date and millisOfDay,
	// validating each field from largest to smallest.
	DateTimeMillis(year, month, day, millisOfDay int) (int64, error)
	DateTimeMillisHMS(year, month, day, hour, minute, second, millis int) (int64, error)

	// Values reads each field of types at instant.
	Values(types []field.DateTimeFieldType, instant int64) []int
	// SetValues writes each field of types onto instant in order.
	SetValues(types []field.DateTimeFieldType, values []int, instant int64) (int64, error)
	// Validate checks a partial field set against this calendar, first
	// against each field's overall bounds and then against bounds that
	// depend on the other values (the length of the given month).
	Validate(types []field.DateTimeFieldType, values []int) error

	// Add applies period scaled by scalar to instant, unit by unit in the
	// period's order.
	Add(period ReadablePeriod, instant int64, scalar int) (int64, error)
	AddDuration(instant, duration int64, scalar int) (int64, error)
	// PeriodBetween splits the span from start to end into shape's units,
	// largest first.
	PeriodBetween(shape PeriodShape, start, end int64) ([]int, error)
	// PeriodOf splits a millisecond duration into shape's precise units.
	PeriodOf(shape PeriodShape, duration int64) ([]int, error)

	String() string
}

// Fields is the complete field table of a chronology.
type Fields struct {
	Millis    field.DurationField
	Seconds   field.DurationField
	Minutes   field.DurationField
	Hours     field.DurationField
	Halfdays  field.DurationField
	Days      field.DurationField
	Weeks     field.DurationField
	Weekyears field.DurationField
	Months    field.DurationField
	Years     field.DurationField
	Centuries field.DurationField
	Eras      field.DurationField

	MillisOfSecond     field.DateTimeField
	MillisOfDay        field.DateTimeField
	SecondOfMinute     field.DateTimeField
	SecondOfDay        field.DateTimeField
	MinuteOfHour       field.DateTimeField
	MinuteOfDay        field.DateTimeField
	HourOfDay          field.DateTimeField
	ClockhourOfDay     field.DateTimeField
	HourOfHalfday      field.DateTimeField
	ClockhourOfHalfday field.DateTimeField
	HalfdayOfDay       field.DateTimeField

	DayOfWeek         field.DateTimeField
	DayOfMonth        field.DateTimeField
	DayOfYear         field.DateTimeField
	WeekOfWeekyear    field.DateTimeField
	Weekyear          field.DateTimeField
	WeekyearOfCentury field.DateTimeField
	MonthOfYear       field.DateTimeField
	Year              field.DateTimeField
	YearOfEra         field.DateTimeField
	YearOfCentury     field.DateTimeField
	CenturyOfEra      field.DateTimeField
	Era               field.DateTimeField
}

// DateTimeField returns the field for t, or nil for an invalid token.
func (f *Fields) DateTimeField(t field.DateTimeFieldType) field.DateTimeField {
	switch t {
	case field.Era:
		return f.Era
	case field.YearOfEra:
		return f.YearOfEra
	case field.CenturyOfEra:
		return f.CenturyOfEra
	case field.YearOfCentury:
		return f.YearOfCentury
	case field.Year:
		return f.Year
	case field.DayOfYear:
		return f.DayOfYear
	case field.MonthOfYear:
		return f.MonthOfYear
	case field.DayOfMonth:
		return f.DayOfMonth
	case field.WeekyearOfCentury:
		return f.WeekyearOfCentury
	case field.Weekyear:
		return f.Weekyear
	case field.WeekOfWeekyear:
		return f.WeekOfWeekyear
	case field.DayOfWeek:
		return f.DayOfWeek
	case field.HalfdayOfDay:
		return f.HalfdayOfDay
	case field.HourOfHalfday:
		return f.HourOfHalfday
	case field.ClockhourOfHalfday:
		return f.ClockhourOfHalfday
	case field.ClockhourOfDay:
		return f.ClockhourOfDay
	case field.HourOfDay:
		return f.HourOfDay
	case field.MinuteOfDay:
		return f.MinuteOfDay
	case field.MinuteOfHour:
		return f.MinuteOfHour
	case field.SecondOfDay:
		return f.SecondOfDay
	case field.SecondOfMinute:
		return f.SecondOfMinute
	case field.MillisOfDay:
		return f.MillisOfDay
	case field.MillisOfSecond:
		return f.MillisOfSecond
	}
	return nil
}

// DurationField returns the unit for t, or nil for an invalid token.
func (f *Fields) DurationField(t field.DurationFieldType) field.DurationField {
	switch t {
	case field.Eras:
		return f.Eras
	case field.Centuries:
		return f.Centuries
	case field.Weekyears:
		return f.Weekyears
	case field.Years:
		return f.Years
	case field.Months:
		return f.Months
	case field.Weeks:
		return f.Weeks
	case field.Days:
		return f.Days
	case field.Halfdays:
		return f.Halfdays
	case field.Hours:
		return f.Hours
	case field.Minutes:
		return f.Minutes
	case field.Seconds:
		return f.Seconds
	case field.Millis:
		return f.Millis
	}
	return nil
}

func (f *Fields) durationSlots() []*field.DurationField {
	return []*field.DurationField{
		&f.Millis, &f.Seconds, &f.Minutes, &f.Hours, &f.Halfdays, &f.Days,
		&f.Weeks, &f.Weekyears, &f.Months, &f.Years, &f.Centuries, &f.Eras,
	}
}

func (f *Fields) dateTimeSlots() []*field.DateTimeField {
	return []*field.DateTimeField{
		&f.MillisOfSecond, &f.MillisOfDay, &f.SecondOfMinute, &f.SecondOfDay,
		&f.MinuteOfHour, &f.MinuteOfDay, &f.HourOfDay, &f.ClockhourOfDay,
		&f.HourOfHalfday, &f.ClockhourOfHalfday, &f.HalfdayOfDay,
		&f.DayOfWeek, &f.DayOfMonth, &f.DayOfYear, &f.WeekOfWeekyear,
		&f.Weekyear, &f.WeekyearOfCentury, &f.MonthOfYear, &f.Year,
		&f.YearOfEra, &f.YearOfCentury, &f.CenturyOfEra, &f.Era,
	}
}

// timeFields fills the time-of-day part of the table, identical for every
// calendar under UTC.
func (f *Fields) timeFields() {
	f.Millis = field.MillisField
	f.Seconds = secondsField
	f.Minutes = minutesField
	f.Hours = hoursField
	f.Halfdays = halfdaysField
	f.Days = daysField
	f.Weeks = weeksField

	f.MillisOfSecond = field.NewPreciseDateTimeField(field.MillisOfSecond, field.MillisField, secondsField)
	f.MillisOfDay = field.NewPreciseDateTimeField(field.MillisOfDay, field.MillisField, daysField)
	f.SecondOfMinute = field.NewPreciseDateTimeField(field.SecondOfMinute, secondsField, minutesField)
	f.SecondOfDay = field.NewPreciseDateTimeField(field.SecondOfDay, secondsField, daysField)
	f.MinuteOfHour = field.NewPreciseDateTimeField(field.MinuteOfHour, minutesField, hoursField)
	f.MinuteOfDay = field.NewPreciseDateTimeField(field.MinuteOfDay, minutesField, daysField)
	f.HourOfDay = field.NewPreciseDateTimeField(field.HourOfDay, hoursField, daysField)
	f.HourOfHalfday = field.NewPreciseDateTimeField(field.HourOfHalfday, hoursField, halfdaysField)
	f.ClockhourOfDay = field.NewZeroIsMaxDateTimeField(f.HourOfDay, field.ClockhourOfDay)
	f.ClockhourOfHalfday = field.NewZeroIsMaxDateTimeField(f.HourOfHalfday, field.ClockhourOfHalfday)
	f.HalfdayOfDay = field.NewPreciseDateTimeField(field.HalfdayOfDay, halfdaysField, daysField)
}

// ---------------------------------------------------------------------------
// assembled
// ---------------------------------------------------------------------------

// assembled is the one Chronology implementation. Calendars differ only
// in the field table they install and, for the basic calendars, in a
// direct instant computation that replaces the sequential field sets.
type assembled struct {
	cal     Calendar
	zone    *Zone
	minDays int
	fields  Fields

	// utc is the UTC variant this chronology decorates; nil when zone is UTC.
	utc *assembled
	// direct computes instants without sequential field sets; nil when
	// the year, month and day fields are not the calendar's own.
	direct instantBuilder
}

type instantBuilder interface {
	dateTimeMillis(year, month, day, millisOfDay int) (int64, error)
	dateTimeMillisHMS(year, month, day, hour, minute, second, millis int) (int64, error)
}

var _ Chronology = (*assembled)(nil)

func (a *assembled) ID() string {
	id := string(a.cal)
	if a.minDays != defaultMinDays {
		id += "," + strconv.Itoa(a.minDays)
	}
	return id + "[" + a.zone.ID() + "]"
}

func (a *assembled) String() string          { return a.ID() }
func (a *assembled) Calendar() Calendar      { return a.cal }
func (a *assembled) Zone() *Zone             { return a.zone }
func (a *assembled) MinDaysInFirstWeek() int { return a.minDays }
func (a *assembled) Fields() *Fields         { return &a.fields }

func (a *assembled) WithUTC() Chronology {
	if a.utc == nil {
		return a
	}
	return a.utc
}

func (a *assembled) WithZone(zone *Zone) (Chronology, error) {
	if zone == a.zone && zone != nil {
		return a, nil
	}
	return NewWithMinDays(a.cal, zone, a.minDays)
}

func (a *assembled) Field(t field.DateTimeFieldType) field.DateTimeField {
	return a.fields.DateTimeField(t)
}

func (a *assembled) DurationField(t field.DurationFieldType) field.DurationField {
	return a.fields.DurationField(t)
}

func (a *assembled) DateTimeMillis(year, month, day, millisOfDay int) (int64, error) {
	if a.utc != nil {
		local, err := a.utc.DateTimeMillis(year, month, day, millisOfDay)
		if err != nil {
			return 0, err
		}
		return a.zone.localToUTC(local)
	}
	if a.direct != nil {
		return a.direct.dateTimeMillis(year, month, day, millisOfDay)
	}
	return a.SetValues(
		[]field.DateTimeFieldType{field.Year, field.MonthOfYear, field.DayOfMonth, field.MillisOfDay},
		[]int{year, month, day, millisOfDay}, 0)
}

func (a *assembled) DateTimeMillisHMS(year, month, day, hour, minute, second, millis int) (int64, error) {
	if a.utc != nil {
		local, err := a.utc.DateTimeMillisHMS(year, month, day, hour, minute, second, millis)
		if err != nil {
			return 0, err
		}
		return a.zone.localToUTC(local)
	}
	if a.direct != nil {
		return a.direct.dateTimeMillisHMS(year, month, day, hour, minute, second, millis)
	}
	return a.SetValues(
		[]field.DateTimeFieldType{field.Year, field.MonthOfYear, field.DayOfMonth,
			field.HourOfDay, field.MinuteOfHour, field.SecondOfMinute, field.MillisOfSecond},
		[]int{year, month, day, hour, minute, second, millis}, 0)
}

func (a *assembled) Values(types []field.DateTimeFieldType, instant int64) []int {
	out := make([]int, len(types))
	for i, t := range types {
		if f := a.Field(t); f != nil {
			out[i] = f.Get(instant)
		}
	}
	return out
}

func (a *assembled) SetValues(types []field.DateTimeFieldType, values []int, instant int64) (int64, error) {
	if len(types) != len(values) {
		return 0, chronoerr.Invalid("%d field types but %d values", len(types), len(values))
	}
	for i, t := range types {
		f := a.Field(t)
		if f == nil {
			return 0, chronoerr.Invalid("unknown field type %d", int(t))
		}
		var err error
		if instant, err = f.Set(instant, values[i]); err != nil {
			return 0, err
		}
	}
	return instant, nil
}

func (a *assembled) Validate(types []field.DateTimeFieldType, values []int) error {
	if a.utc != nil {
		return a.utc.Validate(types, values)
	}
	if len(types) != len(values) {
		return chronoerr.Invalid("%d field types but %d values", len(types), len(values))
	}
	fields := make([]field.DateTimeField, len(types))
	for i, t := range types {
		f := a.Field(t)
		if f == nil {
			return chronoerr.Invalid("unknown field type %d", int(t))
		}
		fields[i] = f
		if err := field.VerifyValueBounds(f.Name(), values[i], f.MinimumValue(), f.MaximumValue()); err != nil {
			return err
		}
	}
	for i, f := range fields {
		pb, ok := f.(PartialBounder)
		if !ok {
			continue
		}
		if err := field.VerifyValueBounds(f.Name(), values[i], f.MinimumValue(), pb.MaximumValueForPartial(types, values)); err != nil {
			return err
		}
	}
	return nil
}

func (a *assembled) Add(period ReadablePeriod, instant int64, scalar int) (int64, error) {
	if scalar == 0 || period == nil {
		return instant, nil
	}
	for i, n := 0, period.Size(); i < n; i++ {
		value := int64(period.Value(i))
		if value == 0 {
			continue
		}
		unit := a.DurationField(period.FieldType(i))
		if unit == nil {
			return 0, chronoerr.Invalid("unknown duration type %d", int(period.FieldType(i)))
		}
		scaled, err := safemath.Mul(value, int64(scalar))
		if err != nil {
			return 0, err
		}
		if instant, err = unit.Add(instant, scaled); err != nil {
			return 0, err
		}
	}
	return instant, nil
}

func (a *assembled) AddDuration(instant, duration int64, scalar int) (int64, error) {
	if duration == 0 || scalar == 0 {
		return instant, nil
	}
	add, err := safemath.Mul(duration, int64(scalar))
	if err != nil {
		return 0, err
	}
	return safemath.Add(instant, add)
}

// PeriodBetween walks the units largest first, taking the whole-unit
// difference and advancing start by it, so replaying the result from
// start lands exactly on end.
func (a *assembled) PeriodBetween(shape PeriodShape, start, end int64) ([]int, error) {
	values := make([]int, shape.Size())
	if start == end {
		return values, nil
	}
	for i := range values {
		unit := a.DurationField(shape.FieldType(i))
		if unit == nil {
			return nil, chronoerr.Invalid("unknown duration type %d", int(shape.FieldType(i)))
		}
		v, err := unit.Difference(end, start)
		if err != nil {
			return nil, err
		}
		if v != 0 {
			if start, err = unit.Add(start, int64(v)); err != nil {
				return nil, err
			}
		}
		values[i] = v
	}
	return values, nil
}

// PeriodOf consumes duration with the precise units only; imprecise units
// are left at zero.
func (a *assembled) PeriodOf(shape PeriodShape, duration int64) ([]int, error) {
	values := make([]int, shape.Size())
	if duration == 0 {
		return values, nil
	}
	var total int64
	for i := range values {
		unit := a.DurationField(shape.FieldType(i))
		if unit == nil {
			return nil, chronoerr.Invalid("unknown duration type %d", int(shape.FieldType(i)))
		}
		if !unit.IsPrecise() || !unit.IsSupported() {
			continue
		}
		v, err := unit.Difference(duration, total)
		if err != nil {
			return nil, err
		}
		millis, err := unit.Millis(int64(v))
		if err != nil {
			return nil, err
		}
		if total, err = safemath.Add(total, millis); err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
