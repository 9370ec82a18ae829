package chrono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
)

const (
	day  = field.MillisPerDay
	hour = field.MillisPerHour
)

func mustChrono(t *testing.T, cal Calendar, zone *Zone) Chronology {
	t.Helper()
	c, err := New(cal, zone)
	require.NoError(t, err)
	return c
}

func mustZone(t *testing.T, id string) *Zone {
	t.Helper()
	z, err := LoadZone(id)
	require.NoError(t, err)
	return z
}

func date(t *testing.T, c Chronology, y, m, d int) int64 {
	t.Helper()
	millis, err := c.DateTimeMillis(y, m, d, 0)
	require.NoError(t, err, "%s %04d-%02d-%02d", c, y, m, d)
	return millis
}

func dateTime(t *testing.T, c Chronology, y, mo, d, h, mi, s, ms int) int64 {
	t.Helper()
	millis, err := c.DateTimeMillisHMS(y, mo, d, h, mi, s, ms)
	require.NoError(t, err)
	return millis
}

type testPeriod struct {
	types  []field.DurationFieldType
	values []int
}

func (p testPeriod) Size() int                               { return len(p.types) }
func (p testPeriod) FieldType(i int) field.DurationFieldType { return p.types[i] }
func (p testPeriod) Value(i int) int                         { return p.values[i] }

var allUnits = []field.DurationFieldType{
	field.Years, field.Months, field.Weeks, field.Days,
	field.Hours, field.Minutes, field.Seconds, field.Millis,
}

// ----- Calendar arithmetic -----

func TestMonthEndClamp(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	f := iso.Fields()

	jan31 := date(t, iso, 2023, 1, 31)
	require.Equal(t, int64(1675123200000), jan31)

	feb, err := f.MonthOfYear.Add(jan31, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1677542400000), feb)
	assert.Equal(t, 28, f.DayOfMonth.Get(feb))
	assert.Equal(t, 2, f.MonthOfYear.Get(feb))

	leap, err := f.Months.Add(date(t, iso, 2024, 1, 31), 1)
	require.NoError(t, err)
	assert.Equal(t, 29, f.DayOfMonth.Get(leap))

	dec, err := f.MonthOfYear.Add(jan31, -2)
	require.NoError(t, err)
	assert.Equal(t, date(t, iso, 2022, 11, 30), dec)
}

func TestLeapDay(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	julian := mustChrono(t, Julian, UTC)

	cases := []struct {
		c     Chronology
		year  int
		valid bool
	}{
		{iso, 2024, true},
		{iso, 2023, false},
		{iso, 2000, true},
		{iso, 1900, false},
		{julian, 1900, true},
		{julian, 1901, false},
	}
	for _, tc := range cases {
		_, err := tc.c.DateTimeMillis(tc.year, 2, 29, 0)
		if tc.valid {
			assert.NoError(t, err, "%s %d", tc.c, tc.year)
		} else {
			assert.True(t, chronoerr.Is(err, chronoerr.OutOfRange), "%s %d: %v", tc.c, tc.year, err)
		}
	}

	_, err := iso.Fields().DayOfMonth.Set(date(t, iso, 2023, 2, 1), 29)
	assert.True(t, chronoerr.Is(err, chronoerr.OutOfRange))

	assert.True(t, iso.Fields().Year.IsLeap(date(t, iso, 2024, 6, 1)))
	assert.True(t, iso.Fields().DayOfMonth.IsLeap(date(t, iso, 2024, 2, 29)))
	assert.False(t, iso.Fields().DayOfMonth.IsLeap(date(t, iso, 2024, 2, 28)))
}

func TestWrapVersusCarry(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	f := iso.Fields()
	jan31 := date(t, iso, 2023, 1, 31)

	wrapped, err := f.DayOfMonth.AddWrapField(jan31, 1)
	require.NoError(t, err)
	assert.Equal(t, date(t, iso, 2023, 1, 1), wrapped)

	carried, err := f.Days.Add(jan31, 1)
	require.NoError(t, err)
	assert.Equal(t, date(t, iso, 2023, 2, 1), carried)

	hour23 := dateTime(t, iso, 2023, 1, 31, 23, 0, 0, 0)
	back, err := f.HourOfDay.AddWrapField(hour23, 2)
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, iso, 2023, 1, 31, 1, 0, 0, 0), back)
}

func TestDayRoundHalfEven(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	dom := iso.Fields().DayOfMonth

	cases := []struct {
		name string
		at   int64
		want int64
	}{
		{"odd floor, odd ceiling", dateTime(t, iso, 2023, 1, 31, 12, 0, 0, 0), date(t, iso, 2023, 2, 1)},
		{"even floor", dateTime(t, iso, 2023, 1, 30, 12, 0, 0, 0), date(t, iso, 2023, 1, 30)},
		{"odd floor, even ceiling", dateTime(t, iso, 2023, 1, 29, 12, 0, 0, 0), date(t, iso, 2023, 1, 30)},
		{"even floor, odd ceiling", dateTime(t, iso, 2023, 4, 30, 12, 0, 0, 0), date(t, iso, 2023, 4, 30)},
		{"not a tie", dateTime(t, iso, 2023, 1, 31, 12, 0, 0, 1), date(t, iso, 2023, 2, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dom.RoundHalfEven(tc.at)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	chronos := []Chronology{
		mustChrono(t, ISO, UTC),
		mustChrono(t, Gregorian, UTC),
		mustChrono(t, Julian, UTC),
		mustChrono(t, GJ, UTC),
		mustChrono(t, Buddhist, UTC),
		mustChrono(t, ISO, ny),
	}
	instants := []int64{
		1686836730123,   // 2023-06-15T13:45:30.123Z
		-1,              // 1969-12-31T23:59:59.999Z
		951782400000,    // 2000-02-29
		-11676096000000, // 1600-01-01
	}
	for _, c := range chronos {
		for _, ft := range field.DateTimeFieldTypes() {
			f := c.Field(ft)
			if !f.IsSupported() {
				continue
			}
			for _, m := range instants {
				got, err := f.Set(m, f.Get(m))
				require.NoError(t, err, "%s %s at %d", c, ft, m)
				assert.Equal(t, m, got, "%s %s at %d", c, ft, m)
			}
		}
	}
}

func TestAdditiveInverse(t *testing.T) {
	for _, cal := range Calendars() {
		c := mustChrono(t, cal, UTC)
		p := testPeriod{types: allUnits, values: []int{1, 2, 3, 4, 5, 6, 7, 8}}
		start := dateTime(t, c, 2023, 3, 15, 10, 0, 0, 0)

		forward, err := c.Add(p, start, 1)
		require.NoError(t, err)
		back, err := c.Add(p, forward, -1)
		require.NoError(t, err)
		assert.Equal(t, start, back, "%s", c)
	}
}

func TestPeriodBetweenReplays(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	start := dateTime(t, iso, 2020, 2, 29, 12, 0, 0, 0)
	end := dateTime(t, iso, 2023, 7, 4, 1, 2, 3, 4)

	shape := testPeriod{types: allUnits}
	values, err := iso.PeriodBetween(shape, start, end)
	require.NoError(t, err)
	assert.Equal(t, 3, values[0], "years")

	replay, err := iso.Add(testPeriod{types: allUnits, values: values}, start, 1)
	require.NoError(t, err)
	assert.Equal(t, end, replay)

	same, err := iso.PeriodBetween(shape, start, start)
	require.NoError(t, err)
	assert.Equal(t, make([]int, len(allUnits)), same)
}

func TestPeriodOfUsesPreciseUnitsOnly(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	shape := testPeriod{types: []field.DurationFieldType{field.Months, field.Hours, field.Minutes}}

	values, err := iso.PeriodOf(shape, 25*hour+30*field.MillisPerMinute)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 25, 30}, values)
}

func TestAddDuration(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	got, err := iso.AddDuration(1000, 250, -4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	_, err = iso.AddDuration(1, 1<<62, 4)
	assert.True(t, chronoerr.Is(err, chronoerr.Overflow))
}

func TestAddScalesEachValueWithOverflowCheck(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	millis := testPeriod{types: []field.DurationFieldType{field.Millis}, values: []int{4}}

	got, err := iso.Add(millis, 1000, -250)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	// 4 * 2^62 wraps to zero in 64 bits.
	got, err = iso.Add(millis, 1000, 1<<62)
	assert.True(t, chronoerr.Is(err, chronoerr.Overflow), "got %d, %v", got, err)
}

func TestMonthAndYearDifference(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	months := iso.Fields().Months

	cases := []struct {
		name                string
		minuend, subtrahend int64
		want                int
	}{
		{"two months", date(t, iso, 2023, 3, 31), date(t, iso, 2023, 1, 31), 2},
		{"last day of february", date(t, iso, 2023, 2, 28), date(t, iso, 2023, 1, 31), 1},
		{"one day short", date(t, iso, 2023, 2, 27), date(t, iso, 2023, 1, 31), 0},
		{"negative", date(t, iso, 2023, 1, 31), date(t, iso, 2023, 3, 31), -2},
		{"across years", date(t, iso, 2024, 1, 15), date(t, iso, 2022, 12, 15), 13},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := months.Difference(tc.minuend, tc.subtrahend)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	years, err := iso.Fields().Years.Difference(date(t, iso, 2024, 2, 29), date(t, iso, 2020, 2, 29))
	require.NoError(t, err)
	assert.Equal(t, 4, years)
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func gregorianLeap(y int) bool { return y%4 == 0 && (y%100 != 0 || y%400 == 0) }

// julianLeap takes a displayed year; 1 BC is the Julian year zero.
func julianLeap(y int) bool {
	if y < 0 {
		y++
	}
	return y%4 == 0
}

func gjLeap(y int) bool {
	if y > 1582 {
		return gregorianLeap(y)
	}
	return julianLeap(y)
}

// buddhistLeap maps the Buddhist year, which counts through zero, onto
// the GJ year, which skips it.
func buddhistLeap(y int) bool {
	gj := y - buddhistOffset
	if gj <= 0 {
		gj--
	}
	return gjLeap(gj)
}

// TestMonthDifferenceBoundaries checks every start day 28-31 of January
// against ends late in months of 28, 29, 30 and 31 days, in every calendar,
// including spans across year zero and inside negative years. A month
// count n is reached when start plus n months, clamped to the end of the
// month, is not after end.
func TestMonthDifferenceBoundaries(t *testing.T) {
	calendars := []struct {
		cal       Calendar
		leap      func(int) bool
		skipsZero bool
		spans     [][2]int
	}{
		{ISO, gregorianLeap, false, [][2]int{{2023, 2023}, {2023, 2024}, {1899, 1900}, {1999, 2000}, {-2, 2}, {-5, -1}}},
		{Gregorian, gregorianLeap, false, [][2]int{{2024, 2024}, {2023, 2024}, {1899, 1900}, {-2, 2}, {-5, -1}}},
		{Julian, julianLeap, true, [][2]int{{2023, 2024}, {1899, 1900}, {1499, 1500}, {-2, 2}, {-5, -1}}},
		{GJ, gjLeap, true, [][2]int{{2023, 2024}, {1899, 1900}, {1499, 1500}, {-2, 2}, {-5, -1}}},
		{Buddhist, buddhistLeap, false, [][2]int{{2566, 2567}, {2442, 2443}, {2042, 2043}, {541, 545}, {-5, -1}}},
	}
	for _, c := range calendars {
		t.Run(string(c.cal), func(t *testing.T) {
			chron := mustChrono(t, c.cal, UTC)
			months := chron.Fields().Months
			monthLen := func(y, m int) int {
				n := daysInMonth[m-1]
				if m == 2 && c.leap(y) {
					n++
				}
				return n
			}
			continuous := func(y int) int {
				if c.skipsZero && y < 0 {
					return y + 1
				}
				return y
			}
			for _, span := range c.spans {
				y1, y2 := span[0], span[1]
				for d1 := 28; d1 <= 31; d1++ {
					start := date(t, chron, y1, 1, d1)
					for m2 := 1; m2 <= 4; m2++ {
						last := monthLen(y2, m2)
						for d2 := 27; d2 <= last; d2++ {
							whole := (continuous(y2)-continuous(y1))*12 + m2 - 1
							if whole == 0 && d2 < d1 {
								continue
							}
							want := whole
							if min(d1, last) > d2 {
								want--
							}
							end := date(t, chron, y2, m2, d2)
							got, err := months.Difference(end, start)
							require.NoError(t, err)
							assert.Equal(t, want, got, "%d-01-%02d to %d-%02d-%02d", y1, d1, y2, m2, d2)

							back, err := months.Difference(start, end)
							require.NoError(t, err)
							assert.Equal(t, -want, back, "%d-%02d-%02d back to %d-01-%02d", y2, m2, d2, y1, d1)
						}
					}
				}
			}
		})
	}
}

func TestYearDifferenceAcrossYearZero(t *testing.T) {
	cases := []struct {
		cal        Calendar
		start, end [3]int
		want       int
	}{
		{ISO, [3]int{-2, 1, 31}, [3]int{2, 1, 31}, 4},
		{ISO, [3]int{-2, 1, 31}, [3]int{2, 1, 30}, 3},
		{ISO, [3]int{-5, 1, 15}, [3]int{-1, 1, 15}, 4},
		{ISO, [3]int{-5, 1, 15}, [3]int{-1, 1, 14}, 3},
		{Julian, [3]int{-2, 1, 31}, [3]int{2, 1, 31}, 3},
		{Julian, [3]int{-2, 1, 31}, [3]int{2, 1, 30}, 2},
		{Julian, [3]int{-5, 1, 15}, [3]int{-1, 1, 15}, 4},
		{GJ, [3]int{-2, 1, 31}, [3]int{2, 1, 31}, 3},
		{GJ, [3]int{-5, 1, 15}, [3]int{-1, 1, 14}, 3},
		{Buddhist, [3]int{541, 1, 31}, [3]int{545, 1, 31}, 4},
		{Buddhist, [3]int{-5, 1, 15}, [3]int{-1, 1, 14}, 3},
	}
	for _, tc := range cases {
		c := mustChrono(t, tc.cal, UTC)
		start := date(t, c, tc.start[0], tc.start[1], tc.start[2])
		end := date(t, c, tc.end[0], tc.end[1], tc.end[2])
		years := c.Fields().Years

		got, err := years.Difference(end, start)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %v to %v", tc.cal, tc.start, tc.end)

		back, err := years.Difference(start, end)
		require.NoError(t, err)
		assert.Equal(t, -tc.want, back, "%s %v back to %v", tc.cal, tc.end, tc.start)
	}
}

// ----- Week and century fields -----

func TestWeekFields(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	f := iso.Fields()

	assert.Equal(t, 4, f.DayOfWeek.Get(0), "1970-01-01 is a Thursday")

	newYear := date(t, iso, 2021, 1, 1)
	assert.Equal(t, 2020, f.Weekyear.Get(newYear))
	assert.Equal(t, 53, f.WeekOfWeekyear.Get(newYear))
	assert.Equal(t, 5, f.DayOfWeek.Get(newYear))

	monday := date(t, iso, 2021, 1, 4)
	assert.Equal(t, 2021, f.Weekyear.Get(monday))
	assert.Equal(t, 1, f.WeekOfWeekyear.Get(monday))
	assert.Equal(t, 1, f.DayOfWeek.Get(monday))

	// 2021 has only 52 weeks, so week 53 is capped.
	next, err := f.Weekyear.Add(newYear, 1)
	require.NoError(t, err)
	assert.Equal(t, date(t, iso, 2021, 12, 31), next)

	floor, err := f.WeekOfWeekyear.RoundFloor(newYear)
	require.NoError(t, err)
	assert.Equal(t, date(t, iso, 2020, 12, 28), floor)
}

func TestCenturyFields(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	greg := mustChrono(t, Gregorian, UTC)

	cases := []struct {
		c                  Chronology
		year               int
		century, ofCentury int
	}{
		{iso, 2000, 20, 0},
		{iso, 2023, 20, 23},
		{greg, 2000, 20, 100},
		{greg, 2001, 21, 1},
		{greg, 2023, 21, 23},
	}
	for _, tc := range cases {
		m := date(t, tc.c, tc.year, 6, 15)
		assert.Equal(t, tc.century, tc.c.Fields().CenturyOfEra.Get(m), "%s %d century", tc.c, tc.year)
		assert.Equal(t, tc.ofCentury, tc.c.Fields().YearOfCentury.Get(m), "%s %d yearOfCentury", tc.c, tc.year)
	}

	assert.Equal(t, 23, iso.Fields().WeekyearOfCentury.Get(date(t, iso, 2023, 6, 15)))

	set, err := greg.Fields().CenturyOfEra.Set(date(t, greg, 2024, 6, 15), 20)
	require.NoError(t, err)
	assert.Equal(t, 1924, greg.Fields().Year.Get(set))
}

// ----- Calendar systems -----

func TestJulianHasNoYearZero(t *testing.T) {
	julian := mustChrono(t, Julian, UTC)
	f := julian.Fields()

	_, err := julian.DateTimeMillis(0, 1, 1, 0)
	assert.True(t, chronoerr.Is(err, chronoerr.OutOfRange), "%v", err)

	bc := date(t, julian, -1, 1, 1)
	assert.Equal(t, -1, f.Year.Get(bc))
	assert.Equal(t, 1, f.YearOfEra.Get(bc))
	assert.Equal(t, BCE, f.Era.Get(bc))

	_, err = f.Year.Set(bc, 0)
	assert.True(t, chronoerr.Is(err, chronoerr.OutOfRange))

	ad, err := f.Year.Add(bc, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Year.Get(ad))

	greg := mustChrono(t, Gregorian, UTC)
	assert.Equal(t, date(t, greg, 1582, 10, 15), date(t, julian, 1582, 10, 5))
	assert.Equal(t, DefaultCutover, date(t, greg, 1582, 10, 15))
}

func TestGJCutover(t *testing.T) {
	gj := mustChrono(t, GJ, UTC)
	greg := mustChrono(t, Gregorian, UTC)
	f := gj.Fields()

	assert.Equal(t, DefaultCutover, date(t, gj, 1582, 10, 15))
	oct4 := date(t, gj, 1582, 10, 4)
	assert.Equal(t, DefaultCutover-day, oct4)

	_, err := gj.DateTimeMillis(1582, 10, 10, 0)
	assert.True(t, chronoerr.Is(err, chronoerr.InvalidArgument), "%v", err)

	next, err := f.Days.Add(oct4, 1)
	require.NoError(t, err)
	assert.Equal(t, DefaultCutover, next)
	assert.Equal(t, 4, f.DayOfMonth.Get(DefaultCutover-1))
	assert.Equal(t, 15, f.DayOfMonth.Get(DefaultCutover))
	assert.Equal(t, 15, f.DayOfMonth.MinimumValueAt(DefaultCutover+2*day))

	// 1500 is a Julian leap year.
	leap := date(t, gj, 1500, 2, 29)
	assert.Equal(t, 29, f.DayOfMonth.Get(leap))

	month, err := f.MonthOfYear.Add(date(t, gj, 1582, 9, 20), 1)
	require.NoError(t, err)
	assert.Equal(t, date(t, greg, 1582, 10, 20), month)

	_, err = gj.DateTimeMillis(0, 1, 1, 0)
	assert.True(t, chronoerr.Is(err, chronoerr.OutOfRange), "%v", err)
}

func TestBuddhistYears(t *testing.T) {
	bud := mustChrono(t, Buddhist, UTC)
	iso := mustChrono(t, ISO, UTC)
	f := bud.Fields()

	june := date(t, iso, 2023, 6, 1)
	assert.Equal(t, 2566, f.Year.Get(june))
	assert.Equal(t, 2566, f.YearOfEra.Get(june))
	assert.Equal(t, CE, f.Era.Get(june))
	assert.Equal(t, june, date(t, bud, 2566, 6, 1))

	_, err := f.Era.Set(june, BCE)
	assert.True(t, chronoerr.Is(err, chronoerr.OutOfRange))
	assert.False(t, f.Eras.IsSupported())
}

// ----- Zones -----

func TestFixedZones(t *testing.T) {
	z := mustZone(t, "+05:30")
	assert.Equal(t, "+05:30", z.ID())
	assert.Equal(t, int(5*hour+30*field.MillisPerMinute), z.Offset(0))
	assert.True(t, z.IsFixed())
	assert.Same(t, z, mustZone(t, "+05:30"))

	utc, err := FixedZone(0)
	require.NoError(t, err)
	assert.Same(t, UTC, utc)
	assert.Same(t, UTC, mustZone(t, "Z"))

	_, err = FixedZone(int(day))
	assert.True(t, chronoerr.Is(err, chronoerr.OutOfRange))
	for _, bad := range []string{"", "+5", "+25:00", "-01:60", "Nowhere/Special"} {
		_, err := LoadZone(bad)
		assert.True(t, chronoerr.Is(err, chronoerr.InvalidArgument), "%q: %v", bad, err)
	}
}

func TestZonedGapAndOverlap(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	iso := mustChrono(t, ISO, ny)
	utc := mustChrono(t, ISO, UTC)

	_, err := iso.DateTimeMillisHMS(2023, 3, 12, 2, 30, 0, 0)
	assert.True(t, chronoerr.Is(err, chronoerr.InvalidArgument), "%v", err)

	summer := dateTime(t, iso, 2023, 7, 1, 12, 0, 0, 0)
	assert.Equal(t, dateTime(t, utc, 2023, 7, 1, 16, 0, 0, 0), summer)
	assert.Equal(t, 12, iso.Fields().HourOfDay.Get(summer))

	// 01:30 on 5 November happens twice; the earlier instant wins.
	overlap := dateTime(t, iso, 2023, 11, 5, 1, 30, 0, 0)
	assert.Equal(t, dateTime(t, utc, 2023, 11, 5, 5, 30, 0, 0), overlap)

	oneAM := dateTime(t, iso, 2023, 3, 12, 1, 0, 0, 0)
	_, err = iso.Fields().HourOfDay.Set(oneAM, 2)
	assert.True(t, chronoerr.Is(err, chronoerr.OutOfRange), "%v", err)
}

func TestZonedDaysKeepLocalTime(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	iso := mustChrono(t, ISO, ny)
	f := iso.Fields()
	before := dateTime(t, iso, 2023, 3, 11, 12, 0, 0, 0)

	nextDay, err := f.Days.Add(before, 1)
	require.NoError(t, err)
	assert.Equal(t, 23*hour, nextDay-before)
	assert.Equal(t, 12, f.HourOfDay.Get(nextDay))
	assert.False(t, f.Days.IsPrecise())

	hours, err := f.Hours.Add(before, 24)
	require.NoError(t, err)
	assert.Equal(t, 24*hour, hours-before)
	assert.True(t, f.Hours.IsPrecise())

	days, err := f.Days.Difference(nextDay, before)
	require.NoError(t, err)
	assert.Equal(t, 1, days)
}

// ----- Cache and identity -----

func TestChronologyCache(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	iso := mustChrono(t, ISO, UTC)

	assert.Same(t, iso, mustChrono(t, ISO, UTC))
	assert.Same(t, iso, ISOUTC())

	zoned, err := iso.WithZone(ny)
	require.NoError(t, err)
	assert.Same(t, zoned, mustChrono(t, ISO, ny))
	assert.Same(t, iso, zoned.WithUTC())
	assert.Equal(t, "ISO[America/New_York]", zoned.ID())

	_, err = New(ISO, nil)
	assert.True(t, chronoerr.Is(err, chronoerr.InvalidArgument))
	_, err = NewWithMinDays(ISO, UTC, 1)
	assert.True(t, chronoerr.Is(err, chronoerr.InvalidArgument))
	_, err = New(Calendar("Mayan"), UTC)
	assert.True(t, chronoerr.Is(err, chronoerr.InvalidArgument))
}

func TestForID(t *testing.T) {
	zones := []*Zone{UTC, mustZone(t, "Europe/Paris"), mustZone(t, "+02:00")}
	for _, cal := range Calendars() {
		for _, z := range zones {
			c := mustChrono(t, cal, z)
			got, err := ForID(c.ID())
			require.NoError(t, err, c.ID())
			assert.Same(t, c, got)
		}
	}

	g1, err := NewWithMinDays(Gregorian, UTC, 1)
	require.NoError(t, err)
	assert.Equal(t, "Gregorian,1[UTC]", g1.ID())
	got, err := ForID("Gregorian,1[UTC]")
	require.NoError(t, err)
	assert.Same(t, g1, got)

	for _, bad := range []string{"ISO", "ISO[", "ISO,x[UTC]", "Mayan[UTC]"} {
		_, err := ForID(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidate(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	ymd := []field.DateTimeFieldType{field.Year, field.MonthOfYear, field.DayOfMonth}

	assert.NoError(t, iso.Validate(ymd, []int{2024, 2, 29}))
	assert.True(t, chronoerr.Is(iso.Validate(ymd, []int{2023, 2, 29}), chronoerr.OutOfRange))
	assert.True(t, chronoerr.Is(iso.Validate(ymd, []int{2023, 13, 1}), chronoerr.OutOfRange))
	assert.True(t, chronoerr.Is(iso.Validate(ymd[:1], []int{1, 2}), chronoerr.InvalidArgument))

	md := []field.DateTimeFieldType{field.MonthOfYear, field.DayOfMonth}
	assert.NoError(t, iso.Validate(md, []int{2, 29}))
	assert.True(t, chronoerr.Is(iso.Validate(md, []int{4, 31}), chronoerr.OutOfRange))
}

func TestAssemblyValidatesLargestFirst(t *testing.T) {
	iso := mustChrono(t, ISO, UTC)
	_, err := iso.DateTimeMillisHMS(2023, 13, 32, 25, 0, 0, 0)
	var ce *chronoerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "monthOfYear", ce.Field)

	bud := mustChrono(t, Buddhist, UTC)
	_, err = bud.DateTimeMillisHMS(2566, 2, 30, 0, 0, 0, 0)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "dayOfMonth", ce.Field)
}
