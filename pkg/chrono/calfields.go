package chrono

import (
	"math"

	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/safemath"
)

// Shared precise units. Under UTC every unit up to a week has a fixed size.
var (
	secondsField  = field.NewPreciseDurationField(field.Seconds, field.MillisPerSecond)
	minutesField  = field.NewPreciseDurationField(field.Minutes, field.MillisPerMinute)
	hoursField    = field.NewPreciseDurationField(field.Hours, field.MillisPerHour)
	halfdaysField = field.NewPreciseDurationField(field.Halfdays, field.MillisPerHalfday)
	daysField     = field.NewPreciseDurationField(field.Days, field.MillisPerDay)
	weeksField    = field.NewPreciseDurationField(field.Weeks, field.MillisPerWeek)
)

const averageMonthsPerYear = 12

// PartialBounder is implemented by fields whose maximum depends on other
// fields of a partial value, e.g. dayOfMonth given monthOfYear and year.
type PartialBounder interface {
	MaximumValueForPartial(types []field.DateTimeFieldType, values []int) int
}

func partialValue(types []field.DateTimeFieldType, values []int, t field.DateTimeFieldType) (int, bool) {
	for i, pt := range types {
		if pt == t {
			return values[i], true
		}
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// year
// ---------------------------------------------------------------------------

type yearField struct {
	field.ImpreciseUnit
	c *basic
}

func newYearField(c *basic) *yearField {
	f := &yearField{c: c}
	f.ImpreciseUnit = field.NewImpreciseUnit(field.Year, c.rules.averageMillisPerYear(), f)
	return f
}

func (f *yearField) Get(instant int64) int { return f.c.year(instant) }

func (f *yearField) Add(instant int64, years int64) (int64, error) {
	if years == 0 {
		return instant, nil
	}
	year, err := safemath.Add(int64(f.Get(instant)), years)
	if err != nil {
		return 0, err
	}
	if err := f.c.verifyYear(year); err != nil {
		return 0, err
	}
	return f.c.setYear(instant, int(year)), nil
}

func (f *yearField) AddWrapField(instant int64, years int) (int64, error) {
	if years == 0 {
		return instant, nil
	}
	year, err := field.WrappedValue(f.Get(instant), int64(years), f.c.minYear(), f.c.maxYear())
	if err != nil {
		return 0, err
	}
	return f.Set(instant, year)
}

func (f *yearField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	if minuend < subtrahend {
		return -f.c.yearDifference(subtrahend, minuend), nil
	}
	return f.c.yearDifference(minuend, subtrahend), nil
}

func (f *yearField) Set(instant int64, year int) (int64, error) {
	if err := f.c.verifyYear(int64(year)); err != nil {
		return 0, err
	}
	return f.c.setYear(instant, year), nil
}

func (f *yearField) IsLeap(instant int64) bool { return f.c.isLeapYear(f.Get(instant)) }

func (f *yearField) LeapAmount(instant int64) int {
	if f.IsLeap(instant) {
		return 1
	}
	return 0
}

func (f *yearField) LeapDurationField() field.DurationField  { return daysField }
func (f *yearField) RangeDurationField() field.DurationField { return nil }
func (f *yearField) MinimumValue() int                       { return f.c.minYear() }
func (f *yearField) MaximumValue() int                       { return f.c.maxYear() }

func (f *yearField) RoundFloor(instant int64) (int64, error) {
	return f.c.yearMillis(f.Get(instant)), nil
}

func (f *yearField) RoundCeiling(instant int64) (int64, error) {
	year := f.Get(instant)
	if instant != f.c.yearMillis(year) {
		return f.c.yearMillis(year + 1), nil
	}
	return instant, nil
}

// ---------------------------------------------------------------------------
// monthOfYear
// ---------------------------------------------------------------------------

type monthOfYearField struct {
	field.ImpreciseUnit
	c     *basic
	years field.DurationField
}

func newMonthOfYearField(c *basic, years field.DurationField) *monthOfYearField {
	f := &monthOfYearField{c: c, years: years}
	f.ImpreciseUnit = field.NewImpreciseUnit(field.MonthOfYear, c.rules.averageMillisPerYear()/averageMonthsPerYear, f)
	return f
}

func (f *monthOfYearField) Get(instant int64) int {
	return f.c.monthOfYear(instant, f.c.year(instant))
}

// Add carries into the year and clamps the day of month to the length of
// the resulting month: 31 January plus one month is 28 or 29 February.
func (f *monthOfYearField) Add(instant int64, months int64) (int64, error) {
	if months == 0 {
		return instant, nil
	}
	timePart := int64(f.c.millisOfDay(instant))
	year := f.c.year(instant)
	month := f.c.monthOfYear(instant, year)

	total, err := safemath.Add(int64(year)*12+int64(month-1), months)
	if err != nil {
		return 0, err
	}
	newYear := safemath.FloorDiv(total, 12)
	if err := f.c.verifyYear(newYear); err != nil {
		return 0, err
	}
	newMonth := int(safemath.FloorMod(total, 12)) + 1

	day := f.c.dayOfMonth(instant, year, month)
	if max := f.c.daysInYearMonth(int(newYear), newMonth); day > max {
		day = max
	}
	return f.c.yearMonthDayMillis(int(newYear), newMonth, day) + timePart, nil
}

func (f *monthOfYearField) AddWrapField(instant int64, months int) (int64, error) {
	month, err := field.WrappedValue(f.Get(instant), int64(months), 1, 12)
	if err != nil {
		return 0, err
	}
	return f.Set(instant, month)
}

// DifferenceInt64 counts whole months. When the later instant is on the
// last day of its month, an earlier day of month past that length counts
// as the month end too, so 31 January to 28 February is one month.
func (f *monthOfYearField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	if minuend < subtrahend {
		d, err := f.DifferenceInt64(subtrahend, minuend)
		return -d, err
	}
	c := f.c
	minuendYear := c.year(minuend)
	minuendMonth := c.monthOfYear(minuend, minuendYear)
	subtrahendYear := c.year(subtrahend)
	subtrahendMonth := c.monthOfYear(subtrahend, subtrahendYear)

	diff := (int64(minuendYear)-int64(subtrahendYear))*12 + int64(minuendMonth) - int64(subtrahendMonth)

	minuendDom := c.dayOfMonth(minuend, minuendYear, minuendMonth)
	if minuendDom == c.daysInYearMonth(minuendYear, minuendMonth) {
		subtrahendDom := c.dayOfMonth(subtrahend, subtrahendYear, subtrahendMonth)
		if subtrahendDom > minuendDom {
			subtrahend = c.yearMonthDayMillis(subtrahendYear, subtrahendMonth, minuendDom) +
				int64(c.millisOfDay(subtrahend))
		}
	}
	minuendRem := minuend - c.yearMonthMillis(minuendYear, minuendMonth)
	subtrahendRem := subtrahend - c.yearMonthMillis(subtrahendYear, subtrahendMonth)
	if minuendRem < subtrahendRem {
		diff--
	}
	return diff, nil
}

// Set clamps the day of month to the new month's length.
func (f *monthOfYearField) Set(instant int64, month int) (int64, error) {
	if err := field.VerifyValueBounds(f.Name(), month, 1, 12); err != nil {
		return 0, err
	}
	c := f.c
	year := c.year(instant)
	dom := c.dayOfMonth(instant, year, c.monthOfYear(instant, year))
	if max := c.daysInYearMonth(year, month); dom > max {
		dom = max
	}
	return c.yearMonthDayMillis(year, month, dom) + int64(c.millisOfDay(instant)), nil
}

func (f *monthOfYearField) IsLeap(instant int64) bool {
	year := f.c.year(instant)
	return f.c.isLeapYear(year) && f.c.monthOfYear(instant, year) == 2
}

func (f *monthOfYearField) LeapAmount(instant int64) int {
	if f.IsLeap(instant) {
		return 1
	}
	return 0
}

func (f *monthOfYearField) LeapDurationField() field.DurationField  { return daysField }
func (f *monthOfYearField) RangeDurationField() field.DurationField { return f.years }
func (f *monthOfYearField) MinimumValue() int                       { return 1 }
func (f *monthOfYearField) MaximumValue() int                       { return 12 }

func (f *monthOfYearField) RoundFloor(instant int64) (int64, error) {
	year := f.c.year(instant)
	return f.c.yearMonthMillis(year, f.c.monthOfYear(instant, year)), nil
}

// ---------------------------------------------------------------------------
// weekyear
// ---------------------------------------------------------------------------

type weekyearField struct {
	field.ImpreciseUnit
	c *basic
}

func newWeekyearField(c *basic) *weekyearField {
	f := &weekyearField{c: c}
	f.ImpreciseUnit = field.NewImpreciseUnit(field.Weekyear, c.rules.averageMillisPerYear(), f)
	return f
}

func (f *weekyearField) Get(instant int64) int { return f.c.weekyear(instant) }

func (f *weekyearField) Add(instant int64, years int64) (int64, error) {
	if years == 0 {
		return instant, nil
	}
	year, err := safemath.Add(int64(f.Get(instant)), years)
	if err != nil {
		return 0, err
	}
	if err := f.c.verifyYear(year); err != nil {
		return 0, err
	}
	return f.Set(instant, int(year))
}

func (f *weekyearField) AddWrapField(instant int64, years int) (int64, error) {
	return f.Add(instant, int64(years))
}

func (f *weekyearField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	if minuend < subtrahend {
		d, err := f.DifferenceInt64(subtrahend, minuend)
		return -d, err
	}
	minuendWeekyear := f.Get(minuend)
	subtrahendWeekyear := f.Get(subtrahend)
	minuendRem, err := f.Remainder(minuend)
	if err != nil {
		return 0, err
	}
	subtrahendRem, err := f.Remainder(subtrahend)
	if err != nil {
		return 0, err
	}
	if subtrahendRem >= week53 && f.c.weeksInYear(minuendWeekyear) <= 52 {
		subtrahendRem -= millisPerWeek
	}
	diff := int64(minuendWeekyear) - int64(subtrahendWeekyear)
	if minuendRem < subtrahendRem {
		diff--
	}
	return diff, nil
}

// Set keeps the week number and day of week, capping the week at the
// target weekyear's last week.
func (f *weekyearField) Set(instant int64, year int) (int64, error) {
	c := f.c
	if err := c.verifyYear(int64(year)); err != nil {
		return 0, chronoerr.Range(f.Name(), int64(year), int64(c.minYear()), int64(c.maxYear()))
	}
	thisWeekyear := f.Get(instant)
	if thisWeekyear == year {
		return instant, nil
	}
	thisDow := c.dayOfWeek(instant)
	maxOutWeeks := c.weeksInYear(thisWeekyear)
	if to := c.weeksInYear(year); to < maxOutWeeks {
		maxOutWeeks = to
	}
	setToWeek := c.weekOfWeekyear(instant, c.year(instant))
	if setToWeek > maxOutWeeks {
		setToWeek = maxOutWeeks
	}

	work := c.setYear(instant, year)
	switch wy := f.Get(work); {
	case wy < year:
		work += millisPerWeek
	case wy > year:
		work -= millisPerWeek
	}
	currentWeek := c.weekOfWeekyear(work, c.year(work))
	work += int64(setToWeek-currentWeek) * millisPerWeek
	work += int64(thisDow-c.dayOfWeek(work)) * millisPerDay
	return work, nil
}

func (f *weekyearField) IsLeap(instant int64) bool { return f.c.weeksInYear(f.Get(instant)) > 52 }

func (f *weekyearField) LeapAmount(instant int64) int {
	return f.c.weeksInYear(f.Get(instant)) - 52
}

func (f *weekyearField) LeapDurationField() field.DurationField  { return weeksField }
func (f *weekyearField) RangeDurationField() field.DurationField { return nil }
func (f *weekyearField) MinimumValue() int                       { return f.c.minYear() }
func (f *weekyearField) MaximumValue() int                       { return f.c.maxYear() }

func (f *weekyearField) RoundFloor(instant int64) (int64, error) {
	monday := f.c.weekFloor(instant)
	if wow := f.c.weekOfWeekyear(monday, f.c.year(monday)); wow > 1 {
		monday -= int64(wow-1) * millisPerWeek
	}
	return monday, nil
}

// ---------------------------------------------------------------------------
// Precise-unit calendar fields
// ---------------------------------------------------------------------------

type dayOfMonthField struct {
	field.PreciseUnit
	c      *basic
	months field.DurationField
}

func newDayOfMonthField(c *basic, months field.DurationField) *dayOfMonthField {
	f := &dayOfMonthField{c: c, months: months}
	f.PreciseUnit = field.NewPreciseUnit(field.DayOfMonth, daysField, f)
	return f
}

func (f *dayOfMonthField) Get(instant int64) int {
	year := f.c.year(instant)
	return f.c.dayOfMonth(instant, year, f.c.monthOfYear(instant, year))
}

func (f *dayOfMonthField) RangeDurationField() field.DurationField { return f.months }
func (f *dayOfMonthField) MinimumValue() int                       { return 1 }
func (f *dayOfMonthField) MaximumValue() int                       { return 31 }

func (f *dayOfMonthField) MaximumValueAt(instant int64) int {
	year := f.c.year(instant)
	return f.c.daysInYearMonth(year, f.c.monthOfYear(instant, year))
}

// MaximumValueForSet lets days 1..28 be set without consulting the month.
func (f *dayOfMonthField) MaximumValueForSet(instant int64, value int) int {
	if value > 28 || value < 1 {
		return f.MaximumValueAt(instant)
	}
	return 28
}

func (f *dayOfMonthField) MaximumValueForPartial(types []field.DateTimeFieldType, values []int) int {
	month, ok := partialValue(types, values, field.MonthOfYear)
	if !ok || month < 1 || month > 12 {
		return f.MaximumValue()
	}
	if year, ok := partialValue(types, values, field.Year); ok {
		return f.c.daysInYearMonth(year, month)
	}
	return maxDaysInMonth[month-1]
}

func (f *dayOfMonthField) IsLeap(instant int64) bool { return f.c.isLeapDay(instant) }

func (f *dayOfMonthField) LeapAmount(instant int64) int {
	if f.IsLeap(instant) {
		return 1
	}
	return 0
}

func (f *dayOfMonthField) LeapDurationField() field.DurationField { return daysField }

type dayOfYearField struct {
	field.PreciseUnit
	c     *basic
	years field.DurationField
}

func newDayOfYearField(c *basic, years field.DurationField) *dayOfYearField {
	f := &dayOfYearField{c: c, years: years}
	f.PreciseUnit = field.NewPreciseUnit(field.DayOfYear, daysField, f)
	return f
}

func (f *dayOfYearField) Get(instant int64) int {
	return f.c.dayOfYear(instant, f.c.year(instant))
}

func (f *dayOfYearField) RangeDurationField() field.DurationField { return f.years }
func (f *dayOfYearField) MinimumValue() int                       { return 1 }
func (f *dayOfYearField) MaximumValue() int                       { return 366 }

func (f *dayOfYearField) MaximumValueAt(instant int64) int {
	return f.c.daysInYear(f.c.year(instant))
}

func (f *dayOfYearField) MaximumValueForSet(instant int64, value int) int {
	if value > 365 || value < 1 {
		return f.MaximumValueAt(instant)
	}
	return 365
}

func (f *dayOfYearField) MaximumValueForPartial(types []field.DateTimeFieldType, values []int) int {
	if year, ok := partialValue(types, values, field.Year); ok {
		return f.c.daysInYear(year)
	}
	return f.MaximumValue()
}

func (f *dayOfYearField) IsLeap(instant int64) bool { return f.c.isLeapDay(instant) }

func (f *dayOfYearField) LeapAmount(instant int64) int {
	if f.IsLeap(instant) {
		return 1
	}
	return 0
}

func (f *dayOfYearField) LeapDurationField() field.DurationField { return daysField }

type dayOfWeekField struct {
	field.PreciseUnit
	c *basic
}

func newDayOfWeekField(c *basic) *dayOfWeekField {
	f := &dayOfWeekField{c: c}
	f.PreciseUnit = field.NewPreciseUnit(field.DayOfWeek, daysField, f)
	return f
}

func (f *dayOfWeekField) Get(instant int64) int                   { return f.c.dayOfWeek(instant) }
func (f *dayOfWeekField) RangeDurationField() field.DurationField { return weeksField }
func (f *dayOfWeekField) MinimumValue() int                       { return 1 }
func (f *dayOfWeekField) MaximumValue() int                       { return 7 }

type weekOfWeekyearField struct {
	field.PreciseUnit
	c         *basic
	weekyears field.DurationField
}

func newWeekOfWeekyearField(c *basic, weekyears field.DurationField) *weekOfWeekyearField {
	f := &weekOfWeekyearField{c: c, weekyears: weekyears}
	f.PreciseUnit = field.NewPreciseUnit(field.WeekOfWeekyear, weeksField, f)
	return f
}

func (f *weekOfWeekyearField) Get(instant int64) int {
	return f.c.weekOfWeekyear(instant, f.c.year(instant))
}

func (f *weekOfWeekyearField) RangeDurationField() field.DurationField { return f.weekyears }
func (f *weekOfWeekyearField) MinimumValue() int                       { return 1 }
func (f *weekOfWeekyearField) MaximumValue() int                       { return 53 }

func (f *weekOfWeekyearField) MaximumValueAt(instant int64) int {
	return f.c.weeksInYear(f.c.weekyear(instant))
}

func (f *weekOfWeekyearField) MaximumValueForSet(instant int64, value int) int {
	if value > 52 {
		return f.MaximumValueAt(instant)
	}
	return 52
}

func (f *weekOfWeekyearField) MaximumValueForPartial(types []field.DateTimeFieldType, values []int) int {
	if wy, ok := partialValue(types, values, field.Weekyear); ok {
		return f.c.weeksInYear(wy)
	}
	return f.MaximumValue()
}

// Weeks start on Monday; the epoch was a Thursday, so boundaries are
// computed three days ahead.
func (f *weekOfWeekyearField) RoundFloor(instant int64) (int64, error) {
	return f.c.weekFloor(instant), nil
}

func (f *weekOfWeekyearField) RoundCeiling(instant int64) (int64, error) {
	floor := f.c.weekFloor(instant)
	if floor == instant {
		return instant, nil
	}
	return safemath.Add(floor, millisPerWeek)
}

func (f *weekOfWeekyearField) Remainder(instant int64) (int64, error) {
	return instant - f.c.weekFloor(instant), nil
}

// ---------------------------------------------------------------------------
// Eras
// ---------------------------------------------------------------------------

// eraField is BCE (0) for proleptic years up to zero and CE (1) after.
type eraField struct {
	field.Base
	c *basic
}

func newEraField(c *basic) *eraField {
	f := &eraField{c: c}
	f.Base = field.NewBase(field.Era, f)
	return f
}

func (f *eraField) Get(instant int64) int {
	if f.c.year(instant) <= 0 {
		return BCE
	}
	return CE
}

// Set mirrors the year across the era boundary.
func (f *eraField) Set(instant int64, era int) (int64, error) {
	if err := field.VerifyValueBounds(f.Name(), era, BCE, CE); err != nil {
		return 0, err
	}
	if f.Get(instant) != era {
		year := f.c.year(instant)
		if err := f.c.verifyYear(-int64(year)); err != nil {
			return 0, err
		}
		return f.c.setYear(instant, -year), nil
	}
	return instant, nil
}

func (f *eraField) DurationField() field.DurationField      { return field.Unsupported(field.Eras) }
func (f *eraField) RangeDurationField() field.DurationField { return nil }
func (f *eraField) MinimumValue() int                       { return BCE }
func (f *eraField) MaximumValue() int                       { return CE }

func (f *eraField) RoundFloor(instant int64) (int64, error) {
	if f.Get(instant) == CE {
		return f.c.setYear(0, 1), nil
	}
	return math.MinInt64, nil
}

func (f *eraField) RoundCeiling(instant int64) (int64, error) {
	if f.Get(instant) == BCE {
		return f.c.setYear(0, 1), nil
	}
	return math.MaxInt64, nil
}

func (f *eraField) RoundHalfFloor(instant int64) (int64, error)   { return f.RoundFloor(instant) }
func (f *eraField) RoundHalfCeiling(instant int64) (int64, error) { return f.RoundFloor(instant) }
func (f *eraField) RoundHalfEven(instant int64) (int64, error)    { return f.RoundFloor(instant) }

func (f *eraField) Remainder(instant int64) (int64, error) {
	floor, _ := f.RoundFloor(instant)
	return safemath.Sub(instant, floor)
}

// singleEraField is the era of a calendar with only one era.
type singleEraField struct {
	field.Base
}

func newSingleEraField() *singleEraField {
	f := &singleEraField{}
	f.Base = field.NewBase(field.Era, f)
	return f
}

func (f *singleEraField) Get(int64) int { return CE }

func (f *singleEraField) Set(instant int64, era int) (int64, error) {
	if err := field.VerifyValueBounds(f.Name(), era, CE, CE); err != nil {
		return 0, err
	}
	return instant, nil
}

func (f *singleEraField) DurationField() field.DurationField      { return field.Unsupported(field.Eras) }
func (f *singleEraField) RangeDurationField() field.DurationField { return nil }
func (f *singleEraField) MinimumValue() int                       { return CE }
func (f *singleEraField) MaximumValue() int                       { return CE }

func (f *singleEraField) RoundFloor(int64) (int64, error)   { return math.MinInt64, nil }
func (f *singleEraField) RoundCeiling(int64) (int64, error) { return math.MaxInt64, nil }

func (f *singleEraField) RoundHalfFloor(instant int64) (int64, error)   { return f.RoundFloor(instant) }
func (f *singleEraField) RoundHalfCeiling(instant int64) (int64, error) { return f.RoundFloor(instant) }
func (f *singleEraField) RoundHalfEven(instant int64) (int64, error)    { return f.RoundFloor(instant) }

func (f *singleEraField) Remainder(instant int64) (int64, error) {
	return safemath.Sub(instant, math.MinInt64)
}

// yearOfEraField counts years within the era: proleptic year 0 is 1 BC.
type yearOfEraField struct {
	field.Decorated
	c *basic
}

func newYearOfEraField(c *basic, year field.DateTimeField) *yearOfEraField {
	f := &yearOfEraField{c: c}
	f.Decorated = field.NewDecorated(year, field.YearOfEra, f)
	return f
}

func (f *yearOfEraField) Get(instant int64) int {
	year := f.Wrapped().Get(instant)
	if year <= 0 {
		year = 1 - year
	}
	return year
}

func (f *yearOfEraField) Add(instant int64, years int64) (int64, error) {
	return f.Wrapped().Add(instant, years)
}

func (f *yearOfEraField) AddWrapField(instant int64, years int) (int64, error) {
	return f.Wrapped().AddWrapField(instant, years)
}

func (f *yearOfEraField) Difference(minuend, subtrahend int64) (int, error) {
	return f.Wrapped().Difference(minuend, subtrahend)
}

func (f *yearOfEraField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	return f.Wrapped().DifferenceInt64(minuend, subtrahend)
}

func (f *yearOfEraField) Set(instant int64, year int) (int64, error) {
	if err := field.VerifyValueBounds(f.Name(), year, 1, f.MaximumValue()); err != nil {
		return 0, err
	}
	if f.c.year(instant) <= 0 {
		year = 1 - year
	}
	return f.Wrapped().Set(instant, year)
}

func (f *yearOfEraField) RangeDurationField() field.DurationField { return field.Unsupported(field.Eras) }
func (f *yearOfEraField) MinimumValue() int                       { return 1 }
func (f *yearOfEraField) MaximumValue() int                       { return f.Wrapped().MaximumValue() }

func (f *yearOfEraField) RoundCeiling(instant int64) (int64, error) {
	return f.Wrapped().RoundCeiling(instant)
}

func (f *yearOfEraField) Remainder(instant int64) (int64, error) {
	return f.Wrapped().Remainder(instant)
}

// isoYearOfEraField reads the magnitude of the proleptic year, so year 0
// reads 0. It only serves as the basis of the zero-based century fields.
type isoYearOfEraField struct {
	field.Decorated
}

func newISOYearOfEraField(year field.DateTimeField) *isoYearOfEraField {
	f := &isoYearOfEraField{}
	f.Decorated = field.NewDecorated(year, field.YearOfEra, f)
	return f
}

func (f *isoYearOfEraField) Get(instant int64) int {
	year := f.Wrapped().Get(instant)
	if year < 0 {
		return -year
	}
	return year
}

func (f *isoYearOfEraField) Add(instant int64, years int64) (int64, error) {
	return f.Wrapped().Add(instant, years)
}

func (f *isoYearOfEraField) AddWrapField(instant int64, years int) (int64, error) {
	year, err := field.WrappedValue(f.Get(instant), int64(years), 0, f.MaximumValue())
	if err != nil {
		return 0, err
	}
	return f.Set(instant, year)
}

func (f *isoYearOfEraField) Difference(minuend, subtrahend int64) (int, error) {
	return f.Wrapped().Difference(minuend, subtrahend)
}

func (f *isoYearOfEraField) DifferenceInt64(minuend, subtrahend int64) (int64, error) {
	return f.Wrapped().DifferenceInt64(minuend, subtrahend)
}

func (f *isoYearOfEraField) Set(instant int64, year int) (int64, error) {
	if err := field.VerifyValueBounds(f.Name(), year, 0, f.MaximumValue()); err != nil {
		return 0, err
	}
	if f.Wrapped().Get(instant) < 0 {
		year = -year
	}
	return f.Wrapped().Set(instant, year)
}

func (f *isoYearOfEraField) RangeDurationField() field.DurationField { return field.Unsupported(field.Eras) }
func (f *isoYearOfEraField) MinimumValue() int                       { return 0 }
func (f *isoYearOfEraField) MaximumValue() int                       { return f.Wrapped().MaximumValue() }

func (f *isoYearOfEraField) RoundCeiling(instant int64) (int64, error) {
	return f.Wrapped().RoundCeiling(instant)
}

func (f *isoYearOfEraField) Remainder(instant int64) (int64, error) {
	return f.Wrapped().Remainder(instant)
}
