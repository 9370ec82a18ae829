package chrono

import (
	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
)

// DefaultCutover is the instant the Gregorian calendar took effect:
// 1582-10-15T00:00Z, which followed Julian 1582-10-04.
const DefaultCutover int64 = -12219292800000

// cutover joins a Julian and a Gregorian chronology (both UTC) at an
// instant. gap is how far the calendars disagree at the cutover.
type cutover struct {
	julian    *assembled
	gregorian *assembled
	at        int64
	gap       int64
}

func newCutover(julian, gregorian *assembled, at int64) (*cutover, error) {
	c := &cutover{julian: julian, gregorian: gregorian, at: at}
	converted, err := c.julianToGregorian(at, false)
	if err != nil {
		return nil, err
	}
	c.gap = at - converted
	return c, nil
}

func convertByYear(instant int64, from, to *assembled) (int64, error) {
	f := &from.fields
	return to.DateTimeMillis(f.Year.Get(instant), f.MonthOfYear.Get(instant),
		f.DayOfMonth.Get(instant), f.MillisOfDay.Get(instant))
}

func convertByWeekyear(instant int64, from, to *assembled) (int64, error) {
	f, t := &from.fields, &to.fields
	out, err := t.Weekyear.Set(0, f.Weekyear.Get(instant))
	if err != nil {
		return 0, err
	}
	if out, err = t.WeekOfWeekyear.Set(out, f.WeekOfWeekyear.Get(instant)); err != nil {
		return 0, err
	}
	if out, err = t.DayOfWeek.Set(out, f.DayOfWeek.Get(instant)); err != nil {
		return 0, err
	}
	return t.MillisOfDay.Set(out, f.MillisOfDay.Get(instant))
}

func (c *cutover) julianToGregorian(instant int64, byWeekyear bool) (int64, error) {
	if byWeekyear {
		return convertByWeekyear(instant, c.julian, c.gregorian)
	}
	return convertByYear(instant, c.julian, c.gregorian)
}

func (c *cutover) gregorianToJulian(instant int64, byWeekyear bool) (int64, error) {
	if byWeekyear {
		return convertByWeekyear(instant, c.gregorian, c.julian)
	}
	return convertByYear(instant, c.gregorian, c.julian)
}

// A date is read as Gregorian first; dates before the cutover are Julian,
// and dates in the skipped days fail.
func (c *cutover) dateTimeMillis(year, month, day, millisOfDay int) (int64, error) {
	return c.resolve(month, day, year, func(a *assembled) (int64, error) {
		return a.DateTimeMillis(year, month, day, millisOfDay)
	})
}

func (c *cutover) dateTimeMillisHMS(year, month, day, hour, minute, second, millis int) (int64, error) {
	return c.resolve(month, day, year, func(a *assembled) (int64, error) {
		return a.DateTimeMillisHMS(year, month, day, hour, minute, second, millis)
	})
}

func (c *cutover) resolve(month, day, year int, build func(*assembled) (int64, error)) (int64, error) {
	instant, err := build(c.gregorian)
	if err != nil {
		// 29 February of a century year is only valid in the Julian calendar.
		if month != 2 || day != 29 || !chronoerr.Is(err, chronoerr.OutOfRange) {
			return 0, err
		}
		march1, merr := c.gregorian.DateTimeMillis(year, 3, 1, 0)
		if merr != nil || march1 >= c.at {
			return 0, err
		}
		instant = march1
	}
	if instant < c.at {
		if instant, err = build(c.julian); err != nil {
			return 0, err
		}
		if instant >= c.at {
			return 0, chronoerr.Invalid("date %04d-%02d-%02d falls in the Julian-Gregorian cutover gap", year, month, day)
		}
	}
	return instant, nil
}

// ---------------------------------------------------------------------------
// cutoverField
// ---------------------------------------------------------------------------

// cutoverField reads the Julian field before the cutover and the Gregorian
// field after it. Adds use the Gregorian rules throughout.
type cutoverField struct {
	field.Base
	julian     field.DateTimeField
	gregorian  field.DateTimeField
	cut        *cutover
	byWeekyear bool
	duration   field.DurationField
	rangeField field.DurationField
}

func newCutoverField(julian, gregorian field.DateTimeField, rangeField field.DurationField, cut *cutover, byWeekyear bool) *cutoverField {
	f := &cutoverField{}
	f.init(f, julian, gregorian, rangeField, cut, byWeekyear)
	return f
}

func (f *cutoverField) init(self field.DateTimeField, julian, gregorian field.DateTimeField, rangeField field.DurationField, cut *cutover, byWeekyear bool) {
	if rangeField == nil {
		rangeField = gregorian.RangeDurationField()
		if rangeField == nil {
			rangeField = julian.RangeDurationField()
		}
	}
	f.Base = field.NewBase(gregorian.Type(), self)
	f.julian = julian
	f.gregorian = gregorian
	f.cut = cut
	f.byWeekyear = byWeekyear
	f.duration = gregorian.DurationField()
	f.rangeField = rangeField
}

func (f *cutoverField) toGregorian(instant int64) (int64, error) {
	return f.cut.julianToGregorian(instant, f.byWeekyear)
}

func (f *cutoverField) toJulian(instant int64) (int64, error) {
	return f.cut.gregorianToJulian(instant, f.byWeekyear)
}

func (f *cutoverField) Get(instant int64) int {
	if instant >= f.cut.at {
		return f.gregorian.Get(instant)
	}
	return f.julian.Get(instant)
}

func (f *cutoverField) Add(instant int64, value int64) (int64, error) {
	return f.gregorian.Add(instant, value)
}

func (f *cutoverField) Difference(minuend, subtrahend int64) (int, error) {
	return f.gregorian.Difference(minuend, subtrahend)
}

func (f *cutoverField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	return f.gregorian.DifferenceInt64(minuend, subtrahend)
}

// Set applies the calendar in effect at instant; when the result lands on
// the other side of the cutover it is converted to that calendar, and the
// value must still read back.
func (f *cutoverField) Set(instant int64, value int) (int64, error) {
	var err error
	if instant >= f.cut.at {
		if instant, err = f.gregorian.Set(instant, value); err != nil {
			return 0, err
		}
		if instant < f.cut.at {
			if instant+f.cut.gap < f.cut.at {
				if instant, err = f.toJulian(instant); err != nil {
					return 0, err
				}
			}
			if f.Get(instant) != value {
				return 0, chronoerr.RangeMsg(f.Name(), int64(value), "value does not exist across the calendar cutover")
			}
		}
		return instant, nil
	}
	if instant, err = f.julian.Set(instant, value); err != nil {
		return 0, err
	}
	if instant >= f.cut.at {
		if instant-f.cut.gap >= f.cut.at {
			if instant, err = f.toGregorian(instant); err != nil {
				return 0, err
			}
		}
		if f.Get(instant) != value {
			return 0, chronoerr.RangeMsg(f.Name(), int64(value), "value does not exist across the calendar cutover")
		}
	}
	return instant, nil
}

func (f *cutoverField) IsLeap(instant int64) bool {
	if instant >= f.cut.at {
		return f.gregorian.IsLeap(instant)
	}
	return f.julian.IsLeap(instant)
}

func (f *cutoverField) LeapAmount(instant int64) int {
	if instant >= f.cut.at {
		return f.gregorian.LeapAmount(instant)
	}
	return f.julian.LeapAmount(instant)
}

func (f *cutoverField) LeapDurationField() field.DurationField  { return f.gregorian.LeapDurationField() }
func (f *cutoverField) DurationField() field.DurationField      { return f.duration }
func (f *cutoverField) RangeDurationField() field.DurationField { return f.rangeField }
func (f *cutoverField) MinimumValue() int                       { return f.julian.MinimumValue() }
func (f *cutoverField) MaximumValue() int                       { return f.gregorian.MaximumValue() }

// MinimumValueAt accounts for the days the cutover removed: in October
// 1582 the smallest Gregorian dayOfMonth is 15.
func (f *cutoverField) MinimumValueAt(instant int64) int {
	if instant < f.cut.at {
		return f.julian.MinimumValueAt(instant)
	}
	min := f.gregorian.MinimumValueAt(instant)
	if set, err := f.gregorian.Set(instant, min); err == nil && set < f.cut.at {
		min = f.gregorian.Get(f.cut.at)
	}
	return min
}

func (f *cutoverField) MaximumValueAt(instant int64) int {
	if instant >= f.cut.at {
		return f.gregorian.MaximumValueAt(instant)
	}
	max := f.julian.MaximumValueAt(instant)
	if set, err := f.julian.Set(instant, max); err == nil && set >= f.cut.at {
		if before, err := f.julian.Add(f.cut.at, -1); err == nil {
			max = f.julian.Get(before)
		}
	}
	return max
}

func (f *cutoverField) RoundFloor(instant int64) (int64, error) {
	var err error
	if instant >= f.cut.at {
		if instant, err = f.gregorian.RoundFloor(instant); err != nil {
			return 0, err
		}
		if instant < f.cut.at && instant+f.cut.gap < f.cut.at {
			return f.toJulian(instant)
		}
		return instant, nil
	}
	return f.julian.RoundFloor(instant)
}

func (f *cutoverField) RoundCeiling(instant int64) (int64, error) {
	var err error
	if instant >= f.cut.at {
		return f.gregorian.RoundCeiling(instant)
	}
	if instant, err = f.julian.RoundCeiling(instant); err != nil {
		return 0, err
	}
	if instant >= f.cut.at && instant-f.cut.gap >= f.cut.at {
		return f.toGregorian(instant)
	}
	return instant, nil
}

// ---------------------------------------------------------------------------
// impreciseCutoverField
// ---------------------------------------------------------------------------

// impreciseCutoverField also converts adds and differences that cross the
// cutover, so adding a year to a Julian date lands on the matching
// Gregorian date.
type impreciseCutoverField struct {
	cutoverField
}

// newImpreciseCutoverField links a new imprecise unit to the field unless
// duration is given.
func newImpreciseCutoverField(julian, gregorian field.DateTimeField, duration field.DurationField, cut *cutover, byWeekyear bool) *impreciseCutoverField {
	f := &impreciseCutoverField{}
	f.init(f, julian, gregorian, nil, cut, byWeekyear)
	if duration == nil {
		d := gregorian.DurationField()
		duration = field.NewLinkedDurationField(f, d.Type(), d.UnitMillis())
	}
	f.duration = duration
	return f
}

func (f *impreciseCutoverField) Add(instant int64, value int64) (int64, error) {
	var err error
	if instant >= f.cut.at {
		if instant, err = f.gregorian.Add(instant, value); err != nil {
			return 0, err
		}
		if instant < f.cut.at && instant+f.cut.gap < f.cut.at {
			// Gregorian has a year zero; the Julian calendar does not.
			g := &f.cut.gregorian.fields
			yearField := g.Year
			if f.byWeekyear {
				yearField = g.Weekyear
			}
			if yearField.Get(instant) <= 0 {
				if instant, err = yearField.Add(instant, -1); err != nil {
					return 0, err
				}
			}
			return f.toJulian(instant)
		}
		return instant, nil
	}
	if instant, err = f.julian.Add(instant, value); err != nil {
		return 0, err
	}
	if instant >= f.cut.at && instant-f.cut.gap >= f.cut.at {
		return f.toGregorian(instant)
	}
	return instant, nil
}

func (f *impreciseCutoverField) Difference(minuend, subtrahend int64) (int, error) {
	m, s, useGregorian, err := f.align(minuend, subtrahend)
	if err != nil {
		return 0, err
	}
	if useGregorian {
		return f.gregorian.Difference(m, s)
	}
	return f.julian.Difference(m, s)
}

func (f *impreciseCutoverField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	m, s, useGregorian, err := f.align(minuend, subtrahend)
	if err != nil {
		return 0, err
	}
	if useGregorian {
		return f.gregorian.DifferenceInt64(m, s)
	}
	return f.julian.DifferenceInt64(m, s)
}

// align moves minuend into the calendar of subtrahend.
func (f *impreciseCutoverField) align(minuend, subtrahend int64) (int64, int64, bool, error) {
	var err error
	if subtrahend >= f.cut.at {
		if minuend < f.cut.at {
			if minuend, err = f.toGregorian(minuend); err != nil {
				return 0, 0, false, err
			}
		}
		return minuend, subtrahend, true, nil
	}
	if minuend >= f.cut.at {
		if minuend, err = f.toJulian(minuend); err != nil {
			return 0, 0, false, err
		}
	}
	return minuend, subtrahend, false, nil
}

func (f *impreciseCutoverField) MinimumValueAt(instant int64) int {
	if instant >= f.cut.at {
		return f.gregorian.MinimumValueAt(instant)
	}
	return f.julian.MinimumValueAt(instant)
}

func (f *impreciseCutoverField) MaximumValueAt(instant int64) int {
	if instant >= f.cut.at {
		return f.gregorian.MaximumValueAt(instant)
	}
	return f.julian.MaximumValueAt(instant)
}

// ---------------------------------------------------------------------------
// Assembly
// ---------------------------------------------------------------------------

// assembleGJ builds the cutover table on top of the Gregorian one. The
// day of week and, for a midnight cutover, the time fields agree in both
// calendars and are used as they are.
func assembleGJ(cut *cutover) Fields {
	j, g := &cut.julian.fields, &cut.gregorian.fields
	f := *g

	if g.MillisOfDay.Get(cut.at) != 0 {
		f.MillisOfSecond = newCutoverField(j.MillisOfSecond, g.MillisOfSecond, nil, cut, false)
		f.MillisOfDay = newCutoverField(j.MillisOfDay, g.MillisOfDay, nil, cut, false)
		f.SecondOfMinute = newCutoverField(j.SecondOfMinute, g.SecondOfMinute, nil, cut, false)
		f.SecondOfDay = newCutoverField(j.SecondOfDay, g.SecondOfDay, nil, cut, false)
		f.MinuteOfHour = newCutoverField(j.MinuteOfHour, g.MinuteOfHour, nil, cut, false)
		f.MinuteOfDay = newCutoverField(j.MinuteOfDay, g.MinuteOfDay, nil, cut, false)
		f.HourOfDay = newCutoverField(j.HourOfDay, g.HourOfDay, nil, cut, false)
		f.HourOfHalfday = newCutoverField(j.HourOfHalfday, g.HourOfHalfday, nil, cut, false)
		f.ClockhourOfDay = newCutoverField(j.ClockhourOfDay, g.ClockhourOfDay, nil, cut, false)
		f.ClockhourOfHalfday = newCutoverField(j.ClockhourOfHalfday, g.ClockhourOfHalfday, nil, cut, false)
		f.HalfdayOfDay = newCutoverField(j.HalfdayOfDay, g.HalfdayOfDay, nil, cut, false)
	}

	f.Era = newCutoverField(j.Era, g.Era, nil, cut, false)

	year := newImpreciseCutoverField(j.Year, g.Year, nil, cut, false)
	f.Year = year
	f.Years = year.DurationField()
	f.YearOfEra = newImpreciseCutoverField(j.YearOfEra, g.YearOfEra, f.Years, cut, false)
	f.YearOfCentury = newImpreciseCutoverField(j.YearOfCentury, g.YearOfCentury, f.Years, cut, false)

	century := newImpreciseCutoverField(j.CenturyOfEra, g.CenturyOfEra, nil, cut, false)
	f.CenturyOfEra = century
	f.Centuries = century.DurationField()

	month := newImpreciseCutoverField(j.MonthOfYear, g.MonthOfYear, nil, cut, false)
	f.MonthOfYear = month
	f.Months = month.DurationField()

	weekyear := newImpreciseCutoverField(j.Weekyear, g.Weekyear, nil, cut, true)
	f.Weekyear = weekyear
	f.Weekyears = weekyear.DurationField()
	f.WeekyearOfCentury = newImpreciseCutoverField(j.WeekyearOfCentury, g.WeekyearOfCentury, f.Weekyears, cut, false)

	f.DayOfYear = newCutoverField(j.DayOfYear, g.DayOfYear, f.Years, cut, false)
	f.DayOfMonth = newCutoverField(j.DayOfMonth, g.DayOfMonth, f.Months, cut, false)
	f.WeekOfWeekyear = newCutoverField(j.WeekOfWeekyear, g.WeekOfWeekyear, f.Weekyears, cut, true)
	return f
}
