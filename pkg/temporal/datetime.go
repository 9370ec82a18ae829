package temporal

import (
	"fmt"
	"time"

	"github.com/daviddao/chronology/pkg/chrono"
	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/clock"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/safemath"
)

// DateTime is an instant bound to a chronology. The zero value is the
// epoch in ISO UTC.
type DateTime struct {
	millis int64
	chrono chrono.Chronology
}

func orISO(c chrono.Chronology) chrono.Chronology {
	if c == nil {
		return chrono.ISOUTC()
	}
	return c
}

// NewDateTime binds millis to c; nil means ISO UTC.
func NewDateTime(millis int64, c chrono.Chronology) DateTime {
	return DateTime{millis: millis, chrono: orISO(c)}
}

// DateTimeOf assembles a date-time from fields in c. A local time inside a
// transition gap fails with InvalidArgument.
func DateTimeOf(year, month, day, hour, minute, second, millis int, c chrono.Chronology) (DateTime, error) {
	c = orISO(c)
	ms, err := c.DateTimeMillisHMS(year, month, day, hour, minute, second, millis)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{millis: ms, chrono: c}, nil
}

// Now reads src in c.
func Now(src clock.Source, c chrono.Chronology) DateTime {
	return NewDateTime(clock.Now(src), c)
}

// FromTime converts t, keeping its zone when the zone database knows it.
func FromTime(t time.Time, cal chrono.Calendar) (DateTime, error) {
	zone, err := chrono.LoadZone(t.Location().String())
	if err != nil {
		_, offset := t.Zone()
		if zone, err = chrono.FixedZone(offset * 1000); err != nil {
			return DateTime{}, err
		}
	}
	c, err := chrono.New(cal, zone)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{millis: t.UnixMilli(), chrono: c}, nil
}

func (d DateTime) Millis() int64                 { return d.millis }
func (d DateTime) Chronology() chrono.Chronology { return orISO(d.chrono) }
func (d DateTime) Zone() *chrono.Zone            { return d.Chronology().Zone() }

// Std converts to a time.Time in the same zone.
func (d DateTime) Std() time.Time { return time.UnixMilli(d.millis).In(d.Zone().Location()) }

func (d DateTime) with(millis int64) DateTime { return DateTime{millis: millis, chrono: d.chrono} }

// Get reads one field. Fields the chronology does not model fail with
// Unsupported.
func (d DateTime) Get(t field.DateTimeFieldType) (int, error) {
	f, err := supportedField(d.Chronology(), t)
	if err != nil {
		return 0, err
	}
	return f.Get(d.millis), nil
}

func supportedField(c chrono.Chronology, t field.DateTimeFieldType) (field.DateTimeField, error) {
	f := c.Field(t)
	if f == nil {
		return nil, chronoerr.Invalid("unknown field type %d", int(t))
	}
	if !f.IsSupported() {
		return nil, chronoerr.UnsupportedField(t.Name())
	}
	return f, nil
}

func (d DateTime) fields() *chrono.Fields { return d.Chronology().Fields() }

func (d DateTime) Era() int            { return d.fields().Era.Get(d.millis) }
func (d DateTime) CenturyOfEra() int   { return d.fields().CenturyOfEra.Get(d.millis) }
func (d DateTime) YearOfEra() int      { return d.fields().YearOfEra.Get(d.millis) }
func (d DateTime) Year() int           { return d.fields().Year.Get(d.millis) }
func (d DateTime) Weekyear() int       { return d.fields().Weekyear.Get(d.millis) }
func (d DateTime) MonthOfYear() int    { return d.fields().MonthOfYear.Get(d.millis) }
func (d DateTime) WeekOfWeekyear() int { return d.fields().WeekOfWeekyear.Get(d.millis) }
func (d DateTime) DayOfYear() int      { return d.fields().DayOfYear.Get(d.millis) }
func (d DateTime) DayOfMonth() int     { return d.fields().DayOfMonth.Get(d.millis) }
func (d DateTime) DayOfWeek() int      { return d.fields().DayOfWeek.Get(d.millis) }
func (d DateTime) HourOfDay() int      { return d.fields().HourOfDay.Get(d.millis) }
func (d DateTime) MinuteOfHour() int   { return d.fields().MinuteOfHour.Get(d.millis) }
func (d DateTime) SecondOfMinute() int { return d.fields().SecondOfMinute.Get(d.millis) }
func (d DateTime) MillisOfSecond() int { return d.fields().MillisOfSecond.Get(d.millis) }
func (d DateTime) MillisOfDay() int    { return d.fields().MillisOfDay.Get(d.millis) }

// With sets one field.
func (d DateTime) With(t field.DateTimeFieldType, value int) (DateTime, error) {
	f, err := supportedField(d.Chronology(), t)
	if err != nil {
		return DateTime{}, err
	}
	ms, err := f.Set(d.millis, value)
	if err != nil {
		return DateTime{}, err
	}
	return d.with(ms), nil
}

// WithDate sets year, month and day, keeping the time of day.
func (d DateTime) WithDate(year, month, day int) (DateTime, error) {
	ms, err := setAll(d.Chronology(), d.millis,
		[]field.DateTimeFieldType{field.Year, field.MonthOfYear, field.DayOfMonth}, []int{year, month, day})
	if err != nil {
		return DateTime{}, err
	}
	return d.with(ms), nil
}

// WithTime sets the time of day, keeping the date.
func (d DateTime) WithTime(hour, minute, second, millis int) (DateTime, error) {
	ms, err := setAll(d.Chronology(), d.millis,
		[]field.DateTimeFieldType{field.HourOfDay, field.MinuteOfHour, field.SecondOfMinute, field.MillisOfSecond},
		[]int{hour, minute, second, millis})
	if err != nil {
		return DateTime{}, err
	}
	return d.with(ms), nil
}

func setAll(c chrono.Chronology, millis int64, types []field.DateTimeFieldType, values []int) (int64, error) {
	return c.SetValues(types, values, millis)
}

// Add adds amount of unit, e.g. Add(field.Months, 1).
func (d DateTime) Add(unit field.DurationFieldType, amount int64) (DateTime, error) {
	ms, err := addUnit(d.Chronology(), d.millis, unit, amount)
	if err != nil {
		return DateTime{}, err
	}
	return d.with(ms), nil
}

func addUnit(c chrono.Chronology, millis int64, unit field.DurationFieldType, amount int64) (int64, error) {
	if amount == 0 {
		return millis, nil
	}
	f := c.DurationField(unit)
	if f == nil {
		return 0, chronoerr.Invalid("unknown duration type %d", int(unit))
	}
	return f.Add(millis, amount)
}

func (d DateTime) PlusYears(n int) (DateTime, error)   { return d.Add(field.Years, int64(n)) }
func (d DateTime) PlusMonths(n int) (DateTime, error)  { return d.Add(field.Months, int64(n)) }
func (d DateTime) PlusWeeks(n int) (DateTime, error)   { return d.Add(field.Weeks, int64(n)) }
func (d DateTime) PlusDays(n int) (DateTime, error)    { return d.Add(field.Days, int64(n)) }
func (d DateTime) PlusHours(n int) (DateTime, error)   { return d.Add(field.Hours, int64(n)) }
func (d DateTime) PlusMinutes(n int) (DateTime, error) { return d.Add(field.Minutes, int64(n)) }
func (d DateTime) PlusSeconds(n int) (DateTime, error) { return d.Add(field.Seconds, int64(n)) }
func (d DateTime) PlusMillis(n int) (DateTime, error)  { return d.Add(field.Millis, int64(n)) }

// Plus adds a period unit by unit, largest first.
func (d DateTime) Plus(p chrono.ReadablePeriod) (DateTime, error) { return d.WithPeriodAdded(p, 1) }

// Minus subtracts a period.
func (d DateTime) Minus(p chrono.ReadablePeriod) (DateTime, error) { return d.WithPeriodAdded(p, -1) }

// WithPeriodAdded adds p scaled by scalar.
func (d DateTime) WithPeriodAdded(p chrono.ReadablePeriod, scalar int) (DateTime, error) {
	ms, err := d.Chronology().Add(p, d.millis, scalar)
	if err != nil {
		return DateTime{}, err
	}
	return d.with(ms), nil
}

// PlusDuration adds an exact length.
func (d DateTime) PlusDuration(dur Duration) (DateTime, error) {
	ms, err := d.Chronology().AddDuration(d.millis, dur.millis, 1)
	if err != nil {
		return DateTime{}, err
	}
	return d.with(ms), nil
}

func (d DateTime) MinusDuration(dur Duration) (DateTime, error) {
	ms, err := d.Chronology().AddDuration(d.millis, dur.millis, -1)
	if err != nil {
		return DateTime{}, err
	}
	return d.with(ms), nil
}

// WithZone keeps the instant and changes the zone.
func (d DateTime) WithZone(zone *chrono.Zone) (DateTime, error) {
	c, err := d.Chronology().WithZone(zone)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{millis: d.millis, chrono: c}, nil
}

// WithZoneRetainFields keeps the local fields and changes the zone, so
// the instant moves by the offset difference.
func (d DateTime) WithZoneRetainFields(zone *chrono.Zone) (DateTime, error) {
	ms, c, err := retainFields(d.Chronology(), d.millis, zone)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{millis: ms, chrono: c}, nil
}

func retainFields(c chrono.Chronology, millis int64, zone *chrono.Zone) (int64, chrono.Chronology, error) {
	next, err := c.WithZone(zone)
	if err != nil {
		return 0, nil, err
	}
	local, err := c.Zone().ConvertUTCToLocal(millis)
	if err != nil {
		return 0, nil, err
	}
	ms, err := zone.ConvertLocalToUTC(local, false)
	if err != nil {
		return 0, nil, err
	}
	return ms, next, nil
}

// WithChronology keeps the instant under another calendar system.
func (d DateTime) WithChronology(c chrono.Chronology) DateTime {
	return DateTime{millis: d.millis, chrono: orISO(c)}
}

// Property binds one field of d for rounding and range queries.
func (d DateTime) Property(t field.DateTimeFieldType) (Property, error) {
	f, err := supportedField(d.Chronology(), t)
	if err != nil {
		return Property{}, err
	}
	return Property{dt: d, field: f}, nil
}

// WithTimeAtStartOfDay moves to the first valid instant of the day, which
// is later than midnight when midnight falls in a transition gap.
func (d DateTime) WithTimeAtStartOfDay() (DateTime, error) {
	c := d.Chronology()
	zone := c.Zone()
	local, err := zone.ConvertUTCToLocal(d.millis)
	if err != nil {
		return DateTime{}, err
	}
	midnight, err := c.WithUTC().Fields().DayOfMonth.RoundFloor(local)
	if err != nil {
		return DateTime{}, err
	}
	ms, err := zone.ConvertLocalToUTC(midnight, true)
	if err == nil {
		return d.with(ms), nil
	}
	if !chronoerr.Is(err, chronoerr.InvalidArgument) {
		return DateTime{}, err
	}
	// Midnight is skipped; the day starts at the transition.
	if ms, err = zone.ConvertLocalToUTC(midnight, false); err != nil {
		return DateTime{}, err
	}
	if ms+int64(zone.Offset(ms)) < midnight {
		return d.with(zone.NextTransition(ms)), nil
	}
	return d.with(zone.PreviousTransition(ms) + 1), nil
}

// LocalDate returns the date in d's zone.
func (d DateTime) LocalDate() LocalDate {
	c := d.Chronology()
	local, _ := c.Zone().ConvertUTCToLocal(d.millis)
	return newLocalDate(local, c.WithUTC())
}

// LocalTime returns the time of day in d's zone.
func (d DateTime) LocalTime() LocalTime {
	return LocalTime{millisOfDay: d.MillisOfDay(), chrono: d.Chronology().WithUTC()}
}

// LocalDateTime returns the local fields in d's zone.
func (d DateTime) LocalDateTime() LocalDateTime {
	c := d.Chronology()
	local, _ := c.Zone().ConvertUTCToLocal(d.millis)
	return LocalDateTime{local: local, chrono: c.WithUTC()}
}

func (d DateTime) IsBefore(o DateTime) bool { return d.millis < o.millis }
func (d DateTime) IsAfter(o DateTime) bool  { return d.millis > o.millis }

// Equal compares the instant and the chronology.
func (d DateTime) Equal(o DateTime) bool {
	return d.millis == o.millis && d.Chronology() == o.Chronology()
}

// Compare orders by instant only.
func (d DateTime) Compare(o DateTime) int {
	switch {
	case d.millis < o.millis:
		return -1
	case d.millis > o.millis:
		return 1
	}
	return 0
}

// DurationTo returns the exact length from d to o.
func (d DateTime) DurationTo(o DateTime) (Duration, error) {
	ms, err := safemath.Sub(o.millis, d.millis)
	return Duration{millis: ms}, err
}

// String formats as ISO-8601 with the zone offset, e.g.
// "2023-01-31T00:00:00.000Z".
func (d DateTime) String() string {
	f := d.fields()
	m := d.millis
	return fmt.Sprintf("%s-%02d-%02dT%02d:%02d:%02d.%03d%s",
		formatYear(f.Year.Get(m)), f.MonthOfYear.Get(m), f.DayOfMonth.Get(m),
		f.HourOfDay.Get(m), f.MinuteOfHour.Get(m), f.SecondOfMinute.Get(m), f.MillisOfSecond.Get(m),
		formatOffset(d.Zone().Offset(m)))
}

func formatYear(y int) string {
	if y < 0 {
		return fmt.Sprintf("-%04d", -y)
	}
	return fmt.Sprintf("%04d", y)
}

func formatOffset(offsetMillis int) string {
	if offsetMillis == 0 {
		return "Z"
	}
	sign := '+'
	if offsetMillis < 0 {
		sign, offsetMillis = '-', -offsetMillis
	}
	minutes := offsetMillis / int(field.MillisPerMinute)
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}
