package chrono

import (
	"sync/atomic"

	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/safemath"
)

const (
	millisPerDay  = field.MillisPerDay
	millisPerWeek = field.MillisPerWeek

	// Offset of 1 March within a leap year, used to balance year
	// differences across February 29.
	feb29 = (31 + 29 - 1) * millisPerDay
	// Offset of week 53 within a weekyear.
	week53 = (53 - 1) * millisPerWeek
)

// Era values of the Gregorian and Julian calendars.
const (
	BCE = 0
	CE  = 1
)

var (
	minDaysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	maxDaysInMonth = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

	// Millis from the start of the year to the start of each month.
	minMillisBeforeMonth, maxMillisBeforeMonth = cumulativeMonthMillis()
)

func cumulativeMonthMillis() (lo, hi [12]int64) {
	for m := 1; m < 12; m++ {
		lo[m] = lo[m-1] + int64(minDaysInMonth[m-1])*millisPerDay
		hi[m] = hi[m-1] + int64(maxDaysInMonth[m-1])*millisPerDay
	}
	return lo, hi
}

// calendarRules is the leap-year strategy of a solar calendar with the
// Julian month table. Everything else about the calendar is derived.
type calendarRules interface {
	isLeapYear(year int) bool
	// firstDayOfYear returns the instant millis of 1 January of the
	// proleptic year.
	firstDayOfYear(year int) int64
	minYear() int
	maxYear() int
	averageMillisPerYear() int64
	approxMillisAtEpochDividedByTwo() int64
	// adjustYearForSet maps a user-facing year to the proleptic year.
	adjustYearForSet(year int) (int, error)
}

// ----- Gregorian -----

const daysFrom0000To1970 = 719527

type gregorianRules struct{}

func (gregorianRules) isLeapYear(year int) bool {
	return year&3 == 0 && (year%100 != 0 || year%400 == 0)
}

func (r gregorianRules) firstDayOfYear(year int) int64 {
	leapYears := year / 100
	if year < 0 {
		// Add 3 before shifting right since /4 and >>2 behave
		// differently on negative numbers.
		leapYears = ((year + 3) >> 2) - leapYears + ((leapYears + 3) >> 2) - 1
	} else {
		leapYears = (year >> 2) - leapYears + (leapYears >> 2)
		if r.isLeapYear(year) {
			leapYears--
		}
	}
	return (int64(year)*365 + int64(leapYears-daysFrom0000To1970)) * millisPerDay
}

func (gregorianRules) minYear() int                { return -292275054 }
func (gregorianRules) maxYear() int                { return 292278993 }
func (gregorianRules) averageMillisPerYear() int64 { return 31556952000 }

func (gregorianRules) approxMillisAtEpochDividedByTwo() int64 {
	return 1970 * 31556952000 / 2
}

func (gregorianRules) adjustYearForSet(year int) (int, error) { return year, nil }

// ----- Julian -----

type julianRules struct{}

func (julianRules) isLeapYear(year int) bool { return year&3 == 0 }

func (r julianRules) firstDayOfYear(year int) int64 {
	relativeYear := year - 1968
	var leapYears int
	if relativeYear <= 0 {
		leapYears = (relativeYear + 3) >> 2
	} else {
		leapYears = relativeYear >> 2
		if !r.isLeapYear(year) {
			leapYears++
		}
	}
	millis := (int64(relativeYear)*365 + int64(leapYears)) * millisPerDay
	// Julian 1968-01-01 is 366 + 352 days before the epoch.
	return millis - (366+352)*millisPerDay
}

func (julianRules) minYear() int                { return -292269054 }
func (julianRules) maxYear() int                { return 292272992 }
func (julianRules) averageMillisPerYear() int64 { return 31557600000 }

func (julianRules) approxMillisAtEpochDividedByTwo() int64 {
	return (1969*31557600000 + 352*millisPerDay) / 2
}

// The Julian calendar has no year zero: 1 BC is followed by AD 1.
func (julianRules) adjustYearForSet(year int) (int, error) {
	if year <= 0 {
		if year == 0 {
			return 0, chronoerr.RangeMsg("year", 0, "the Julian calendar has no year zero")
		}
		year++
	}
	return year, nil
}

// ----- Calendar math -----

const yearCacheSize = 1 << 10

type yearInfo struct {
	year  int
	first int64
}

// basic holds the calendar arithmetic shared by every field of a
// Gregorian-style chronology. All methods work on UTC millis.
type basic struct {
	rules   calendarRules
	minDays int

	yearCache [yearCacheSize]atomic.Pointer[yearInfo]
}

func newBasic(rules calendarRules, minDays int) *basic {
	if minDays < 1 || minDays > 7 {
		panic("chrono: minimum days in first week must be in [1,7]")
	}
	return &basic{rules: rules, minDays: minDays}
}

func (c *basic) minYear() int { return c.rules.minYear() }
func (c *basic) maxYear() int { return c.rules.maxYear() }

func (c *basic) isLeapYear(year int) bool { return c.rules.isLeapYear(year) }

func (c *basic) verifyYear(year int64) error {
	if year < int64(c.minYear()) || year > int64(c.maxYear()) {
		return chronoerr.Range("year", year, int64(c.minYear()), int64(c.maxYear()))
	}
	return nil
}

// yearMillis returns the instant of 1 January of year, memoized per year.
func (c *basic) yearMillis(year int) int64 {
	slot := &c.yearCache[year&(yearCacheSize-1)]
	if info := slot.Load(); info != nil && info.year == year {
		return info.first
	}
	first := c.rules.firstDayOfYear(year)
	slot.Store(&yearInfo{year: year, first: first})
	return first
}

// year estimates from the average year length and then corrects by at
// most one year.
func (c *basic) year(instant int64) int {
	unit := c.rules.averageMillisPerYear() / 2
	i2 := (instant >> 1) + c.rules.approxMillisAtEpochDividedByTwo()
	if i2 < 0 {
		i2 = i2 - unit + 1
	}
	year := int(i2 / unit)
	start := c.yearMillis(year)
	diff := instant - start
	if diff < 0 {
		year--
	} else if diff >= 365*millisPerDay {
		length := int64(365) * millisPerDay
		if c.isLeapYear(year) {
			length += millisPerDay
		}
		if start+length <= instant {
			year++
		}
	}
	return year
}

func (c *basic) daysInYear(year int) int {
	if c.isLeapYear(year) {
		return 366
	}
	return 365
}

func (c *basic) daysInYearMonth(year, month int) int {
	if c.isLeapYear(year) {
		return maxDaysInMonth[month-1]
	}
	return minDaysInMonth[month-1]
}

func (c *basic) millisBeforeMonth(year, month int) int64 {
	if c.isLeapYear(year) {
		return maxMillisBeforeMonth[month-1]
	}
	return minMillisBeforeMonth[month-1]
}

func (c *basic) yearMonthMillis(year, month int) int64 {
	return c.yearMillis(year) + c.millisBeforeMonth(year, month)
}

func (c *basic) yearMonthDayMillis(year, month, day int) int64 {
	return c.yearMonthMillis(year, month) + int64(day-1)*millisPerDay
}

func (c *basic) dayOfYear(instant int64, year int) int {
	return int((instant-c.yearMillis(year))/millisPerDay) + 1
}

func (c *basic) monthOfYear(instant int64, year int) int {
	offset := instant - c.yearMillis(year)
	table := &minMillisBeforeMonth
	if c.isLeapYear(year) {
		table = &maxMillisBeforeMonth
	}
	for m := 1; m < 12; m++ {
		if offset < table[m] {
			return m
		}
	}
	return 12
}

func (c *basic) dayOfMonth(instant int64, year, month int) int {
	return int((instant-c.yearMonthMillis(year, month))/millisPerDay) + 1
}

func (c *basic) millisOfDay(instant int64) int {
	return int(safemath.FloorMod(instant, millisPerDay))
}

// dayOfWeek returns 1 (Monday) through 7 (Sunday). The epoch was a Thursday.
func (c *basic) dayOfWeek(instant int64) int {
	days := safemath.FloorDiv(instant, millisPerDay)
	return int(safemath.FloorMod(days+3, 7)) + 1
}

func (c *basic) isLeapDay(instant int64) bool {
	year := c.year(instant)
	month := c.monthOfYear(instant, year)
	return month == 2 && c.dayOfMonth(instant, year, month) == 29
}

// setYear moves instant to year, keeping the day of year and time of day.
// Days after 28 February shift by one when exactly one of the two years
// is a leap year, so 1 March stays 1 March.
func (c *basic) setYear(instant int64, year int) int64 {
	thisYear := c.year(instant)
	dayOfYear := c.dayOfYear(instant, thisYear)
	millisOfDay := c.millisOfDay(instant)
	if dayOfYear > 31+28 {
		if c.isLeapYear(thisYear) {
			if !c.isLeapYear(year) {
				dayOfYear--
			}
		} else if c.isLeapYear(year) {
			dayOfYear++
		}
	}
	return c.yearMonthDayMillis(year, 1, dayOfYear) + int64(millisOfDay)
}

// yearDifference counts whole years from subtrahend to minuend, which must
// not be earlier.
func (c *basic) yearDifference(minuend, subtrahend int64) int64 {
	minuendYear := c.year(minuend)
	subtrahendYear := c.year(subtrahend)
	minuendRem := minuend - c.yearMillis(minuendYear)
	subtrahendRem := subtrahend - c.yearMillis(subtrahendYear)

	if subtrahendRem >= feb29 {
		if c.isLeapYear(subtrahendYear) {
			if !c.isLeapYear(minuendYear) {
				subtrahendRem -= millisPerDay
			}
		} else if minuendRem >= feb29 && c.isLeapYear(minuendYear) {
			minuendRem -= millisPerDay
		}
	}
	diff := int64(minuendYear) - int64(subtrahendYear)
	if minuendRem < subtrahendRem {
		diff--
	}
	return diff
}

// ----- Weeks -----

// firstWeekOfYearMillis returns the Monday that starts week 1 of year.
// Week 1 is the first week with at least minDays days in the year.
func (c *basic) firstWeekOfYearMillis(year int) int64 {
	jan1 := c.yearMillis(year)
	dow := c.dayOfWeek(jan1)
	if dow > 8-c.minDays {
		return jan1 + int64(8-dow)*millisPerDay
	}
	return jan1 - int64(dow-1)*millisPerDay
}

func (c *basic) weeksInYear(year int) int {
	first := c.firstWeekOfYearMillis(year)
	next := c.firstWeekOfYearMillis(year + 1)
	return int((next - first) / millisPerWeek)
}

func (c *basic) weekOfWeekyear(instant int64, year int) int {
	first := c.firstWeekOfYearMillis(year)
	if instant < first {
		return c.weeksInYear(year - 1)
	}
	if instant >= c.firstWeekOfYearMillis(year+1) {
		return 1
	}
	return int((instant-first)/millisPerWeek) + 1
}

func (c *basic) weekyear(instant int64) int {
	year := c.year(instant)
	week := c.weekOfWeekyear(instant, year)
	switch {
	case week == 1:
		return c.year(instant + millisPerWeek)
	case week > 51:
		return c.year(instant - 2*millisPerWeek)
	default:
		return year
	}
}

// weekFloor returns the Monday midnight at or before instant.
func (c *basic) weekFloor(instant int64) int64 {
	const threeDays = 3 * millisPerDay
	return safemath.FloorDiv(instant+threeDays, millisPerWeek)*millisPerWeek - threeDays
}

// ----- Assembly -----

// dateMidnightMillis validates year, month and day in that order and
// returns the instant of that day's midnight.
func (c *basic) dateMidnightMillis(year, month, day int) (int64, error) {
	year, err := c.rules.adjustYearForSet(year)
	if err != nil {
		return 0, err
	}
	if err := c.verifyYear(int64(year)); err != nil {
		return 0, err
	}
	if err := field.VerifyValueBounds("monthOfYear", month, 1, 12); err != nil {
		return 0, err
	}
	if err := field.VerifyValueBounds("dayOfMonth", day, 1, c.daysInYearMonth(year, month)); err != nil {
		return 0, err
	}
	return c.yearMonthDayMillis(year, month, day), nil
}

func (c *basic) dateTimeMillis(year, month, day, millisOfDay int) (int64, error) {
	midnight, err := c.dateMidnightMillis(year, month, day)
	if err != nil {
		return 0, err
	}
	if err := field.VerifyValueBounds("millisOfDay", millisOfDay, 0, int(millisPerDay)-1); err != nil {
		return 0, err
	}
	return safemath.Add(midnight, int64(millisOfDay))
}

func (c *basic) dateTimeMillisHMS(year, month, day, hour, minute, second, millis int) (int64, error) {
	midnight, err := c.dateMidnightMillis(year, month, day)
	if err != nil {
		return 0, err
	}
	if err := field.VerifyValueBounds("hourOfDay", hour, 0, 23); err != nil {
		return 0, err
	}
	if err := field.VerifyValueBounds("minuteOfHour", minute, 0, 59); err != nil {
		return 0, err
	}
	if err := field.VerifyValueBounds("secondOfMinute", second, 0, 59); err != nil {
		return 0, err
	}
	if err := field.VerifyValueBounds("millisOfSecond", millis, 0, 999); err != nil {
		return 0, err
	}
	ofDay := int64(hour)*field.MillisPerHour + int64(minute)*field.MillisPerMinute +
		int64(second)*field.MillisPerSecond + int64(millis)
	return safemath.Add(midnight, ofDay)
}
