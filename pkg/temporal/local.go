package temporal

import (
	"fmt"

	"github.com/daviddao/chronology/pkg/chrono"
	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/safemath"
)

// Local values hold local millis: the instant the fields would denote in
// UTC. Their chronology is always the UTC form of the one they were built
// with, so no zone ever applies.

func utcOf(c chrono.Chronology) chrono.Chronology { return orISO(c).WithUTC() }

func isDateUnit(u field.DurationFieldType) bool { return u >= field.Eras && u <= field.Days }
func isTimeUnit(u field.DurationFieldType) bool { return u >= field.Halfdays && u <= field.Millis }

// isTimeField reports whether t cycles within a day.
func isTimeField(t field.DateTimeFieldType) bool {
	r, ok := t.RangeDurationType()
	return ok && isTimeUnit(t.DurationType()) && (r == field.Days || isTimeUnit(r))
}

func localField(c chrono.Chronology, t field.DateTimeFieldType, allowed func(field.DateTimeFieldType) bool) (field.DateTimeField, error) {
	if !allowed(t) {
		return nil, chronoerr.UnsupportedField(t.Name())
	}
	return supportedField(c, t)
}

// addLocal adds the units of p that allowed accepts; the others are
// skipped.
func addLocal(c chrono.Chronology, local int64, p chrono.ReadablePeriod, scalar int, allowed func(field.DurationFieldType) bool) (int64, error) {
	if p == nil || scalar == 0 {
		return local, nil
	}
	for i, n := 0, p.Size(); i < n; i++ {
		v := int64(p.Value(i))
		if v == 0 || !allowed(p.FieldType(i)) {
			continue
		}
		amount, err := safemath.Mul(v, int64(scalar))
		if err != nil {
			return 0, err
		}
		if local, err = addUnit(c, local, p.FieldType(i), amount); err != nil {
			return 0, err
		}
	}
	return local, nil
}

// ---------------------------------------------------------------------------
// LocalDate
// ---------------------------------------------------------------------------

// LocalDate is a date without a time of day or zone.
type LocalDate struct {
	local  int64 // midnight
	chrono chrono.Chronology
}

func newLocalDate(local int64, c chrono.Chronology) LocalDate {
	midnight := safemath.FloorDiv(local, field.MillisPerDay) * field.MillisPerDay
	return LocalDate{local: midnight, chrono: c}
}

// LocalDateOf validates the date in c.
func LocalDateOf(year, month, day int, c chrono.Chronology) (LocalDate, error) {
	c = utcOf(c)
	ms, err := c.DateTimeMillis(year, month, day, 0)
	if err != nil {
		return LocalDate{}, err
	}
	return LocalDate{local: ms, chrono: c}, nil
}

func (d LocalDate) LocalMillis() int64            { return d.local }
func (d LocalDate) Chronology() chrono.Chronology { return utcOf(d.chrono) }

func (d LocalDate) fields() *chrono.Fields { return d.Chronology().Fields() }

func (d LocalDate) Era() int            { return d.fields().Era.Get(d.local) }
func (d LocalDate) Year() int           { return d.fields().Year.Get(d.local) }
func (d LocalDate) Weekyear() int       { return d.fields().Weekyear.Get(d.local) }
func (d LocalDate) MonthOfYear() int    { return d.fields().MonthOfYear.Get(d.local) }
func (d LocalDate) WeekOfWeekyear() int { return d.fields().WeekOfWeekyear.Get(d.local) }
func (d LocalDate) DayOfYear() int      { return d.fields().DayOfYear.Get(d.local) }
func (d LocalDate) DayOfMonth() int     { return d.fields().DayOfMonth.Get(d.local) }
func (d LocalDate) DayOfWeek() int      { return d.fields().DayOfWeek.Get(d.local) }

func isDateField(t field.DateTimeFieldType) bool { return isDateUnit(t.DurationType()) }

// Get reads a date field; time fields fail with Unsupported.
func (d LocalDate) Get(t field.DateTimeFieldType) (int, error) {
	f, err := localField(d.Chronology(), t, isDateField)
	if err != nil {
		return 0, err
	}
	return f.Get(d.local), nil
}

func (d LocalDate) With(t field.DateTimeFieldType, value int) (LocalDate, error) {
	f, err := localField(d.Chronology(), t, isDateField)
	if err != nil {
		return LocalDate{}, err
	}
	ms, err := f.Set(d.local, value)
	if err != nil {
		return LocalDate{}, err
	}
	return LocalDate{local: ms, chrono: d.chrono}, nil
}

func (d LocalDate) add(unit field.DurationFieldType, n int) (LocalDate, error) {
	ms, err := addUnit(d.Chronology(), d.local, unit, int64(n))
	if err != nil {
		return LocalDate{}, err
	}
	return LocalDate{local: ms, chrono: d.chrono}, nil
}

func (d LocalDate) PlusYears(n int) (LocalDate, error)  { return d.add(field.Years, n) }
func (d LocalDate) PlusMonths(n int) (LocalDate, error) { return d.add(field.Months, n) }
func (d LocalDate) PlusWeeks(n int) (LocalDate, error)  { return d.add(field.Weeks, n) }
func (d LocalDate) PlusDays(n int) (LocalDate, error)   { return d.add(field.Days, n) }

// Plus adds the date units of p; time units are ignored.
func (d LocalDate) Plus(p chrono.ReadablePeriod) (LocalDate, error) {
	ms, err := addLocal(d.Chronology(), d.local, p, 1, isDateUnit)
	if err != nil {
		return LocalDate{}, err
	}
	return LocalDate{local: ms, chrono: d.chrono}, nil
}

func (d LocalDate) Minus(p chrono.ReadablePeriod) (LocalDate, error) {
	ms, err := addLocal(d.Chronology(), d.local, p, -1, isDateUnit)
	if err != nil {
		return LocalDate{}, err
	}
	return LocalDate{local: ms, chrono: d.chrono}, nil
}

// AtStartOfDay returns the first instant of the date in zone.
func (d LocalDate) AtStartOfDay(zone *chrono.Zone) (DateTime, error) {
	noon, err := d.At(LocalTime{millisOfDay: int(field.MillisPerHalfday)}).InZone(zone)
	if err != nil {
		return DateTime{}, err
	}
	return noon.WithTimeAtStartOfDay()
}

// At joins the date with a time of day.
func (d LocalDate) At(t LocalTime) LocalDateTime {
	return LocalDateTime{local: d.local + int64(t.millisOfDay), chrono: d.chrono}
}

func (d LocalDate) Compare(o LocalDate) int   { return compareMillis(d.local, o.local) }
func (d LocalDate) IsBefore(o LocalDate) bool { return d.local < o.local }
func (d LocalDate) IsAfter(o LocalDate) bool  { return d.local > o.local }

func (d LocalDate) Equal(o LocalDate) bool {
	return d.local == o.local && d.Chronology() == o.Chronology()
}

// String formats as ISO-8601, e.g. "2023-01-31".
func (d LocalDate) String() string {
	return fmt.Sprintf("%s-%02d-%02d", formatYear(d.Year()), d.MonthOfYear(), d.DayOfMonth())
}

func compareMillis(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ---------------------------------------------------------------------------
// LocalTime
// ---------------------------------------------------------------------------

// LocalTime is a time of day without a date or zone.
type LocalTime struct {
	millisOfDay int
	chrono      chrono.Chronology
}

// Midnight is 00:00 in ISO.
var Midnight = LocalTime{}

// LocalTimeOf validates the time in c.
func LocalTimeOf(hour, minute, second, millis int, c chrono.Chronology) (LocalTime, error) {
	c = utcOf(c)
	ms, err := c.SetValues(
		[]field.DateTimeFieldType{field.HourOfDay, field.MinuteOfHour, field.SecondOfMinute, field.MillisOfSecond},
		[]int{hour, minute, second, millis}, 0)
	if err != nil {
		return LocalTime{}, err
	}
	return LocalTime{millisOfDay: int(ms), chrono: c}, nil
}

func (t LocalTime) MillisOfDay() int              { return t.millisOfDay }
func (t LocalTime) Chronology() chrono.Chronology { return utcOf(t.chrono) }

func (t LocalTime) fields() *chrono.Fields { return t.Chronology().Fields() }
func (t LocalTime) ms() int64              { return int64(t.millisOfDay) }

func (t LocalTime) HourOfDay() int      { return t.fields().HourOfDay.Get(t.ms()) }
func (t LocalTime) MinuteOfHour() int   { return t.fields().MinuteOfHour.Get(t.ms()) }
func (t LocalTime) SecondOfMinute() int { return t.fields().SecondOfMinute.Get(t.ms()) }
func (t LocalTime) MillisOfSecond() int { return t.fields().MillisOfSecond.Get(t.ms()) }

// Get reads a time field; date fields fail with Unsupported.
func (t LocalTime) Get(ft field.DateTimeFieldType) (int, error) {
	f, err := localField(t.Chronology(), ft, isTimeField)
	if err != nil {
		return 0, err
	}
	return f.Get(t.ms()), nil
}

func (t LocalTime) With(ft field.DateTimeFieldType, value int) (LocalTime, error) {
	f, err := localField(t.Chronology(), ft, isTimeField)
	if err != nil {
		return LocalTime{}, err
	}
	ms, err := f.Set(t.ms(), value)
	if err != nil {
		return LocalTime{}, err
	}
	return t.wrap(ms), nil
}

// wrap keeps the time of day of ms, dropping whole days.
func (t LocalTime) wrap(ms int64) LocalTime {
	return LocalTime{millisOfDay: t.fields().MillisOfDay.Get(ms), chrono: t.chrono}
}

func (t LocalTime) add(unit field.DurationFieldType, n int) (LocalTime, error) {
	ms, err := addUnit(t.Chronology(), t.ms(), unit, int64(n))
	if err != nil {
		return LocalTime{}, err
	}
	return t.wrap(ms), nil
}

// PlusHours wraps past midnight, so 23:00 plus 2 hours is 01:00.
func (t LocalTime) PlusHours(n int) (LocalTime, error)   { return t.add(field.Hours, n) }
func (t LocalTime) PlusMinutes(n int) (LocalTime, error) { return t.add(field.Minutes, n) }
func (t LocalTime) PlusSeconds(n int) (LocalTime, error) { return t.add(field.Seconds, n) }
func (t LocalTime) PlusMillis(n int) (LocalTime, error)  { return t.add(field.Millis, n) }

// Plus adds the time units of p; date units are ignored.
func (t LocalTime) Plus(p chrono.ReadablePeriod) (LocalTime, error) {
	ms, err := addLocal(t.Chronology(), t.ms(), p, 1, isTimeUnit)
	if err != nil {
		return LocalTime{}, err
	}
	return t.wrap(ms), nil
}

func (t LocalTime) Compare(o LocalTime) int   { return compareMillis(t.ms(), o.ms()) }
func (t LocalTime) IsBefore(o LocalTime) bool { return t.millisOfDay < o.millisOfDay }
func (t LocalTime) IsAfter(o LocalTime) bool  { return t.millisOfDay > o.millisOfDay }

// String formats as ISO-8601, e.g. "10:30:00.000".
func (t LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.HourOfDay(), t.MinuteOfHour(), t.SecondOfMinute(), t.MillisOfSecond())
}

// ---------------------------------------------------------------------------
// LocalDateTime
// ---------------------------------------------------------------------------

// LocalDateTime is a date and time of day without a zone.
type LocalDateTime struct {
	local  int64
	chrono chrono.Chronology
}

func LocalDateTimeOf(year, month, day, hour, minute, second, millis int, c chrono.Chronology) (LocalDateTime, error) {
	c = utcOf(c)
	ms, err := c.DateTimeMillisHMS(year, month, day, hour, minute, second, millis)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{local: ms, chrono: c}, nil
}

func (d LocalDateTime) LocalMillis() int64            { return d.local }
func (d LocalDateTime) Chronology() chrono.Chronology { return utcOf(d.chrono) }

func (d LocalDateTime) fields() *chrono.Fields { return d.Chronology().Fields() }

func (d LocalDateTime) Year() int           { return d.fields().Year.Get(d.local) }
func (d LocalDateTime) MonthOfYear() int    { return d.fields().MonthOfYear.Get(d.local) }
func (d LocalDateTime) DayOfMonth() int     { return d.fields().DayOfMonth.Get(d.local) }
func (d LocalDateTime) DayOfWeek() int      { return d.fields().DayOfWeek.Get(d.local) }
func (d LocalDateTime) HourOfDay() int      { return d.fields().HourOfDay.Get(d.local) }
func (d LocalDateTime) MinuteOfHour() int   { return d.fields().MinuteOfHour.Get(d.local) }
func (d LocalDateTime) SecondOfMinute() int { return d.fields().SecondOfMinute.Get(d.local) }
func (d LocalDateTime) MillisOfSecond() int { return d.fields().MillisOfSecond.Get(d.local) }

func (d LocalDateTime) Get(t field.DateTimeFieldType) (int, error) {
	f, err := supportedField(d.Chronology(), t)
	if err != nil {
		return 0, err
	}
	return f.Get(d.local), nil
}

func (d LocalDateTime) With(t field.DateTimeFieldType, value int) (LocalDateTime, error) {
	f, err := supportedField(d.Chronology(), t)
	if err != nil {
		return LocalDateTime{}, err
	}
	ms, err := f.Set(d.local, value)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{local: ms, chrono: d.chrono}, nil
}

// Add adds amount of unit.
func (d LocalDateTime) Add(unit field.DurationFieldType, amount int64) (LocalDateTime, error) {
	ms, err := addUnit(d.Chronology(), d.local, unit, amount)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{local: ms, chrono: d.chrono}, nil
}

func (d LocalDateTime) Plus(p chrono.ReadablePeriod) (LocalDateTime, error) {
	ms, err := d.Chronology().Add(p, d.local, 1)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{local: ms, chrono: d.chrono}, nil
}

func (d LocalDateTime) LocalDate() LocalDate { return newLocalDate(d.local, d.chrono) }

func (d LocalDateTime) LocalTime() LocalTime {
	return LocalTime{millisOfDay: d.fields().MillisOfDay.Get(d.local), chrono: d.chrono}
}

// InZone resolves the local fields in zone. A time inside a transition gap
// fails with InvalidArgument; in an overlap the earlier instant wins.
func (d LocalDateTime) InZone(zone *chrono.Zone) (DateTime, error) {
	if zone == nil {
		return DateTime{}, chronoerr.Invalid("zone must not be nil")
	}
	c, err := d.Chronology().WithZone(zone)
	if err != nil {
		return DateTime{}, err
	}
	ms, err := zone.ConvertLocalToUTC(d.local, true)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{millis: ms, chrono: c}, nil
}

func (d LocalDateTime) Compare(o LocalDateTime) int   { return compareMillis(d.local, o.local) }
func (d LocalDateTime) IsBefore(o LocalDateTime) bool { return d.local < o.local }
func (d LocalDateTime) IsAfter(o LocalDateTime) bool  { return d.local > o.local }

// String formats as ISO-8601, e.g. "2023-01-31T10:30:00.000".
func (d LocalDateTime) String() string {
	return d.LocalDate().String() + "T" + d.LocalTime().String()
}
