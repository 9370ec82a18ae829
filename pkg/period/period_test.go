package period

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/daviddao/chronology/pkg/chrono"
	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
)

func instant(t *testing.T, y, mo, d, h, mi int) int64 {
	t.Helper()
	ms, err := chrono.ISOUTC().DateTimeMillisHMS(y, mo, d, h, mi, 0, 0)
	if err != nil {
		t.Fatalf("DateTimeMillisHMS(%d-%d-%d): %v", y, mo, d, err)
	}
	return ms
}

// ----- Types -----

func TestTypeIndexes(t *testing.T) {
	if got := Time().IndexOf(field.Hours); got != 0 {
		t.Fatalf("Time IndexOf(hours): got %d, want 0", got)
	}
	if got := Standard().IndexOf(field.Millis); got != 7 {
		t.Fatalf("Standard IndexOf(millis): got %d, want 7", got)
	}
	if Time().IsSupported(field.Days) {
		t.Fatal("Time should not support days")
	}
	if got := YearDay().IndexOf(field.Halfdays); got != -1 {
		t.Fatalf("IndexOf(halfdays): got %d, want -1", got)
	}
}

func TestTypeWithout(t *testing.T) {
	if got := Standard().Without(field.Weeks); got != YearMonthDayTime() {
		t.Fatalf("Standard without weeks: got %s, want %s", got, YearMonthDayTime())
	}
	if got := YearDay().Without(field.Years); got != DaysType() {
		t.Fatalf("YearDay without years: got %s, want %s", got, DaysType())
	}
	noMillis := DayTime().Without(field.Millis)
	if noMillis.Name() != "DayTimeNoMillis" {
		t.Fatalf("name: got %q, want %q", noMillis.Name(), "DayTimeNoMillis")
	}
	if DayTime().Without(field.Millis) != noMillis {
		t.Fatal("derived types should be interned")
	}
	if got := Time().Without(field.Years); got != Time() {
		t.Fatalf("removing an absent unit: got %s, want %s", got, Time())
	}
}

func TestForFields(t *testing.T) {
	got, err := ForFields(field.Days, field.Years)
	if err != nil {
		t.Fatalf("ForFields: %v", err)
	}
	if got != YearDay() {
		t.Fatalf("ForFields(days, years): got %s, want %s", got, YearDay())
	}
	if _, err := ForFields(field.Centuries); !chronoerr.Is(err, chronoerr.InvalidArgument) {
		t.Fatalf("ForFields(centuries): got %v, want invalid argument", err)
	}
	byName, ok := TypeByName("YearWeekDay")
	if !ok || byName != YearWeekDay() {
		t.Fatalf("TypeByName: got %v %v", byName, ok)
	}
}

// ----- Construction -----

func TestOfRejectsUnsupportedUnits(t *testing.T) {
	_, err := Of(Time(), Fields{Years: 1, Months: 2, Days: 5})
	if !chronoerr.Is(err, chronoerr.Unsupported) {
		t.Fatalf("Of(Time, 1Y2M5D): got %v, want unsupported", err)
	}

	p, err := Of(Time(), Fields{Hours: 3, Millis: 4})
	if err != nil {
		t.Fatalf("Of(Time, 3H): %v", err)
	}
	if diff := cmp.Diff([]int{3, 0, 0, 4}, p.Values()); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}
	if p.Days() != 0 {
		t.Fatalf("Days on Time type: got %d, want 0", p.Days())
	}
}

func TestStringISO(t *testing.T) {
	cases := []struct {
		p    *Period
		want string
	}{
		{New(Fields{Years: 1, Months: 2, Days: 3, Hours: 4, Minutes: 5, Seconds: 6, Millis: 7}), "P1Y2M3DT4H5M6.007S"},
		{Zero, "PT0S"},
		{Weeks(2), "P2W"},
		{New(Fields{Seconds: -1, Millis: -500}), "PT-1.500S"},
		{Millis(-500), "PT-0.500S"},
		{Minutes(90), "PT90M"},
	}
	for _, tc := range cases {
		if got := tc.p.String(); got != tc.want {
			t.Fatalf("String: got %q, want %q", got, tc.want)
		}
	}
}

// ----- Precision -----

func TestPrecision(t *testing.T) {
	if Months(1).IsPrecise() {
		t.Fatal("one month should be imprecise")
	}
	if _, err := Months(1).DurationMillis(); !chronoerr.Is(err, chronoerr.IllegalState) {
		t.Fatalf("DurationMillis(P1M): got %v, want illegal state", err)
	}

	p := New(Fields{Hours: 25})
	if !p.IsPrecise() {
		t.Fatal("25 hours should be precise")
	}
	ms, err := p.DurationMillis()
	if err != nil {
		t.Fatalf("DurationMillis: %v", err)
	}
	if ms != 90_000_000 {
		t.Fatalf("DurationMillis: got %d, want %d", ms, 90_000_000)
	}

	// A zero month is ignored.
	q := New(Fields{Weeks: 1, Days: 1})
	if ms, _ := q.DurationMillis(); ms != 8*field.MillisPerDay {
		t.Fatalf("P1W1D: got %d, want %d", ms, 8*field.MillisPerDay)
	}
}

func TestPrecisionRace(t *testing.T) {
	p := New(Fields{Days: 2, Hours: 3})
	var wg sync.WaitGroup
	results := make([]int64, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.DurationMillis()
		}(i)
	}
	wg.Wait()
	want := 2*field.MillisPerDay + 3*field.MillisPerHour
	for i, got := range results {
		if got != want {
			t.Fatalf("result %d: got %d, want %d", i, got, want)
		}
	}
}

// ----- Arithmetic -----

func TestBetweenReplays(t *testing.T) {
	c := chrono.ISOUTC()
	start := instant(t, 2023, 1, 1, 0, 0)
	end := instant(t, 2024, 3, 15, 10, 30)

	p, err := Between(start, end, nil, nil)
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	want := Fields{Years: 1, Months: 2, Weeks: 2, Hours: 10, Minutes: 30}
	if diff := cmp.Diff(want, p.Fields()); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
	got, err := c.Add(p, start, 1)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got != end {
		t.Fatalf("replay: got %d, want %d", got, end)
	}

	odd := instant(t, 2023, 1, 31, 0, 0)
	for _, typ := range []*Type{Standard(), YearDay(), DayTime(), Time(), YearWeekDayTime()} {
		p, err := Between(odd, end, typ, c)
		if err != nil {
			t.Fatalf("%s: Between: %v", typ, err)
		}
		got, err := c.Add(p, odd, 1)
		if err != nil {
			t.Fatalf("%s: Add: %v", typ, err)
		}
		if got != end {
			t.Fatalf("%s: replay %s: got %d, want %d", typ, p, got, end)
		}
	}
}

func TestFromDuration(t *testing.T) {
	const ms = 90_061_001 // 1d 1h 1m 1s 1ms

	p, err := FromDuration(ms, nil, nil)
	if err != nil {
		t.Fatalf("FromDuration: %v", err)
	}
	want := Fields{Days: 1, Hours: 1, Minutes: 1, Seconds: 1, Millis: 1}
	if diff := cmp.Diff(want, p.Fields()); diff != "" {
		t.Fatalf("standard (-want +got):\n%s", diff)
	}

	p, err = FromDuration(ms, Time(), nil)
	if err != nil {
		t.Fatalf("FromDuration(Time): %v", err)
	}
	want = Fields{Hours: 25, Minutes: 1, Seconds: 1, Millis: 1}
	if diff := cmp.Diff(want, p.Fields()); diff != "" {
		t.Fatalf("time (-want +got):\n%s", diff)
	}
}

func TestPlusMinus(t *testing.T) {
	p, err := Days(1).WithType(Standard())
	if err != nil {
		t.Fatalf("WithType: %v", err)
	}
	if p, err = p.Plus(Hours(2)); err != nil {
		t.Fatalf("Plus: %v", err)
	}
	if diff := cmp.Diff(Fields{Days: 1, Hours: 2}, p.Fields()); diff != "" {
		t.Fatalf("plus (-want +got):\n%s", diff)
	}
	if p, err = p.Minus(New(Fields{Days: 3})); err != nil {
		t.Fatalf("Minus: %v", err)
	}
	if diff := cmp.Diff(Fields{Days: -2, Hours: 2}, p.Fields()); diff != "" {
		t.Fatalf("minus (-want +got):\n%s", diff)
	}

	if _, err := Hours(1).Plus(Days(1)); !chronoerr.Is(err, chronoerr.Unsupported) {
		t.Fatalf("hours plus days: got %v, want unsupported", err)
	}
	// A zero value in a missing unit is fine.
	if _, err := Hours(1).Plus(New(Fields{Hours: 1})); err != nil {
		t.Fatalf("hours plus standard hours: %v", err)
	}
	if _, err := Days(math.MaxInt32).Plus(Days(1)); !chronoerr.Is(err, chronoerr.Overflow) {
		t.Fatalf("overflowing plus: got %v, want overflow", err)
	}
}

func TestMultipliedAndNegated(t *testing.T) {
	p, err := New(Fields{Months: 2, Hours: -3}).Multiplied(3)
	if err != nil {
		t.Fatalf("Multiplied: %v", err)
	}
	if diff := cmp.Diff(Fields{Months: 6, Hours: -9}, p.Fields()); diff != "" {
		t.Fatalf("multiplied (-want +got):\n%s", diff)
	}
	n, err := p.Negated()
	if err != nil {
		t.Fatalf("Negated: %v", err)
	}
	if diff := cmp.Diff(Fields{Months: -6, Hours: 9}, n.Fields()); diff != "" {
		t.Fatalf("negated (-want +got):\n%s", diff)
	}
	if _, err := Days(math.MaxInt32).Multiplied(2); !chronoerr.Is(err, chronoerr.Overflow) {
		t.Fatalf("overflowing multiply: got %v, want overflow", err)
	}
	if p, err := Years(1 << 30).Multiplied(1 << 34); !chronoerr.Is(err, chronoerr.Overflow) {
		t.Fatalf("multiply wrapping to zero: got %v, %v, want overflow", p, err)
	}
}

func TestValuesOutsideInt32Range(t *testing.T) {
	if p, err := Of(Time(), Fields{Hours: 1 << 40}); !chronoerr.Is(err, chronoerr.Overflow) {
		t.Fatalf("Of(Time, 2^40 hours): got %v, %v, want overflow", p, err)
	}
	if p, err := Days(1).WithDays(math.MaxInt32 + 1); !chronoerr.Is(err, chronoerr.Overflow) {
		t.Fatalf("WithDays(max32+1): got %v, %v, want overflow", p, err)
	}

	m := NewMutable(nil)
	if err := m.SetValues(Fields{Minutes: math.MinInt32 - 1}); !chronoerr.Is(err, chronoerr.Overflow) {
		t.Fatalf("SetValues(min32-1 minutes): got %v, want overflow", err)
	}
	if err := m.Set(field.Seconds, 1<<33); !chronoerr.Is(err, chronoerr.Overflow) {
		t.Fatalf("Set(2^33 seconds): got %v, want overflow", err)
	}
	if !m.IsZero() {
		t.Fatalf("rejected values were stored: %s", m)
	}

	for name, build := range map[string]func(){
		"New":   func() { New(Fields{Days: 1 << 32}) },
		"Hours": func() { Hours(1 << 32) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("want panic")
				}
			}()
			build()
		})
	}
}

func TestWithLeavesOriginal(t *testing.T) {
	p := New(Fields{Years: 1})
	q, err := p.WithDays(4)
	if err != nil {
		t.Fatalf("WithDays: %v", err)
	}
	if p.Days() != 0 || q.Days() != 4 || q.Years() != 1 {
		t.Fatalf("With: original %s, copy %s", p, q)
	}
	if _, err := Hours(1).WithDays(1); !chronoerr.Is(err, chronoerr.Unsupported) {
		t.Fatalf("WithDays on hours: got %v, want unsupported", err)
	}
}

func TestNormalized(t *testing.T) {
	p, err := New(Fields{Hours: 25, Minutes: 61}).Normalized()
	if err != nil {
		t.Fatalf("Normalized: %v", err)
	}
	if diff := cmp.Diff(Fields{Days: 1, Hours: 2, Minutes: 1}, p.Fields()); diff != "" {
		t.Fatalf("normalized (-want +got):\n%s", diff)
	}
	if _, err := Years(1).Normalized(); !chronoerr.Is(err, chronoerr.IllegalState) {
		t.Fatalf("Normalized(P1Y): got %v, want illegal state", err)
	}
}

func TestChronologyAddsPeriod(t *testing.T) {
	c := chrono.ISOUTC()
	jan31 := instant(t, 2023, 1, 31, 0, 0)
	got, err := c.Add(Months(1), jan31, 1)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if want := instant(t, 2023, 2, 28, 0, 0); got != want {
		t.Fatalf("Jan 31 + P1M: got %d, want %d", got, want)
	}
	span, err := Months(1).DurationFrom(jan31, c)
	if err != nil {
		t.Fatalf("DurationFrom: %v", err)
	}
	if span != 28*field.MillisPerDay {
		t.Fatalf("DurationFrom: got %d, want %d", span, 28*field.MillisPerDay)
	}
}

// ----- MutablePeriod -----

func TestMutableResetsPrecision(t *testing.T) {
	m := NewMutable(nil)
	if err := m.Set(field.Hours, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if ms, err := m.DurationMillis(); err != nil || ms != field.MillisPerHour {
		t.Fatalf("DurationMillis: got %d, %v", ms, err)
	}
	if err := m.Add(field.Months, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if m.IsPrecise() {
		t.Fatal("precision should be recomputed after Add")
	}
	m.Clear()
	if !m.IsPrecise() || !m.IsZero() {
		t.Fatalf("after Clear: precise %v, zero %v", m.IsPrecise(), m.IsZero())
	}
}

func TestMutableSetters(t *testing.T) {
	m := NewMutable(DayTime())
	if err := m.SetValues(Fields{Days: 2, Seconds: 5}); err != nil {
		t.Fatalf("SetValues: %v", err)
	}
	if err := m.AddValues(Fields{Days: 1, Millis: 7}); err != nil {
		t.Fatalf("AddValues: %v", err)
	}
	if diff := cmp.Diff([]int{3, 0, 0, 5, 7}, m.Values()); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}

	before := m.Values()
	if err := m.SetValues(Fields{Months: 1}); !chronoerr.Is(err, chronoerr.Unsupported) {
		t.Fatalf("SetValues(P1M) on DayTime: got %v, want unsupported", err)
	}
	if err := m.AddValues(Fields{Years: 1}); !chronoerr.Is(err, chronoerr.Unsupported) {
		t.Fatalf("AddValues(P1Y) on DayTime: got %v, want unsupported", err)
	}
	if diff := cmp.Diff(before, m.Values()); diff != "" {
		t.Fatalf("failed mutation changed values (-want +got):\n%s", diff)
	}

	if err := m.SetDuration(field.MillisPerDay+field.MillisPerMinute, nil); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	if diff := cmp.Diff(Fields{Days: 1, Minutes: 1}, m.Fields()); diff != "" {
		t.Fatalf("SetDuration (-want +got):\n%s", diff)
	}

	start := instant(t, 2024, 2, 28, 6, 0)
	end := instant(t, 2024, 3, 1, 8, 0)
	if err := m.SetBetween(start, end, nil); err != nil {
		t.Fatalf("SetBetween: %v", err)
	}
	if diff := cmp.Diff(Fields{Days: 2, Hours: 2}, m.Fields()); diff != "" {
		t.Fatalf("SetBetween (-want +got):\n%s", diff)
	}
}

func TestMutableNormalize(t *testing.T) {
	m := NewMutable(nil)
	if err := m.SetValues(Fields{Hours: 49}); err != nil {
		t.Fatalf("SetValues: %v", err)
	}
	if err := m.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if diff := cmp.Diff(Fields{Days: 2, Hours: 1}, m.Fields()); diff != "" {
		t.Fatalf("normalized (-want +got):\n%s", diff)
	}

	if err := m.Add(field.Months, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := m.Normalize(); !chronoerr.Is(err, chronoerr.IllegalState) {
		t.Fatalf("Normalize with a month: got %v, want illegal state", err)
	}
	if diff := cmp.Diff(Fields{Months: 1, Days: 2, Hours: 1}, m.Fields()); diff != "" {
		t.Fatalf("failed Normalize changed values (-want +got):\n%s", diff)
	}
}

func TestMutableCopiesAreIndependent(t *testing.T) {
	p := Days(3)
	m := p.Mutable()
	if err := m.Add(field.Days, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.Days() != 3 {
		t.Fatalf("original changed: got %d, want 3", p.Days())
	}
	if got := m.Period(); !got.Equal(Days(4)) {
		t.Fatalf("Period: got %s, want P4D", got)
	}
}
