package field

import (
	"errors"
	"math"
	"testing"

	"github.com/daviddao/chronology/pkg/chronoerr"
)

var (
	testSeconds = NewPreciseDurationField(Seconds, MillisPerSecond)
	testMinutes = NewPreciseDurationField(Minutes, MillisPerMinute)
	testHours   = NewPreciseDurationField(Hours, MillisPerHour)
	testDays    = NewPreciseDurationField(Days, MillisPerDay)
)

func minuteOfHour() *PreciseDateTimeField {
	return NewPreciseDateTimeField(MinuteOfHour, testMinutes, testHours)
}

// ----- Duration fields -----

func TestPreciseDurationAddAndDifference(t *testing.T) {
	got, err := testHours.Add(0, 25)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got != 90_000_000 {
		t.Fatalf("Add(0, 25 hours): got %d, want 90000000", got)
	}
	d, err := testHours.Difference(got, 0)
	if err != nil || d != 25 {
		t.Fatalf("Difference: got %d (%v), want 25", d, err)
	}
	back, err := testHours.Subtract(got, 25)
	if err != nil || back != 0 {
		t.Fatalf("Subtract: got %d (%v), want 0", back, err)
	}
}

func TestPreciseDurationValueTruncates(t *testing.T) {
	v, err := testHours.Value(-1)
	if err != nil || v != 0 {
		t.Fatalf("Value(-1): got %d (%v), want 0", v, err)
	}
	v, _ = testHours.Value(2*MillisPerHour + 1)
	if v != 2 {
		t.Fatalf("Value(2h+1ms): got %d, want 2", v)
	}
}

func TestPreciseDurationOverflow(t *testing.T) {
	if _, err := testHours.Add(math.MaxInt64-10, 1); !chronoerr.Is(err, chronoerr.Overflow) {
		t.Fatalf("Add near max: got %v, want overflow", err)
	}
	if _, err := MillisField.DifferenceInt64(math.MaxInt64, math.MinInt64); !chronoerr.Is(err, chronoerr.Overflow) {
		t.Fatalf("DifferenceInt64 across range: got %v, want overflow", err)
	}
	if _, err := MillisField.Difference(1<<40, 0); !chronoerr.Is(err, chronoerr.Overflow) {
		t.Fatalf("Difference beyond int32: got %v, want overflow", err)
	}
}

func TestScaledDurationField(t *testing.T) {
	day := NewScaledDurationField(testHours, Days, 24)
	if day.UnitMillis() != MillisPerDay {
		t.Fatalf("UnitMillis: got %d, want %d", day.UnitMillis(), MillisPerDay)
	}
	got, err := day.Add(0, 1)
	if err != nil || got != MillisPerDay {
		t.Fatalf("Add(0, 1): got %d (%v), want %d", got, err, MillisPerDay)
	}
	v, _ := day.Value(2*MillisPerDay + 5)
	if v != 2 {
		t.Fatalf("Value: got %d, want 2", v)
	}
	if day.Scalar() != 24 {
		t.Fatalf("Scalar: got %d, want 24", day.Scalar())
	}
}

func TestUnsupportedDurationField(t *testing.T) {
	eras := Unsupported(Eras)
	if eras != Unsupported(Eras) {
		t.Fatal("Unsupported should return a shared instance per type")
	}
	if eras.IsSupported() {
		t.Fatal("IsSupported: got true, want false")
	}
	got, err := eras.Add(5, 0)
	if err != nil || got != 5 {
		t.Fatalf("Add zero: got %d (%v), want 5", got, err)
	}
	if _, err := eras.Add(5, 1); !chronoerr.Is(err, chronoerr.Unsupported) {
		t.Fatalf("Add one: got %v, want unsupported", err)
	}
	if d, _ := eras.Difference(100, 0); d != 0 {
		t.Fatalf("Difference: got %d, want 0", d)
	}
}

// ----- Precise date-time fields -----

func TestPreciseFieldGet(t *testing.T) {
	f := minuteOfHour()
	tests := []struct {
		instant int64
		want    int
	}{
		{0, 0},
		{59_999, 0},
		{60_000, 1},
		{-1, 59},
		{-60_000, 59},
		{-60_001, 58},
		{MillisPerHour + 3*MillisPerMinute, 3},
	}
	for _, tt := range tests {
		if got := f.Get(tt.instant); got != tt.want {
			t.Errorf("Get(%d): got %d, want %d", tt.instant, got, tt.want)
		}
	}
}

func TestPreciseFieldSet(t *testing.T) {
	f := minuteOfHour()
	got, err := f.Set(90_000, 5)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got != 330_000 {
		t.Fatalf("Set(1m30s, 5): got %d, want 330000", got)
	}
	_, err = f.Set(0, 60)
	if !chronoerr.Is(err, chronoerr.OutOfRange) {
		t.Fatalf("Set(60): got %v, want out of range", err)
	}
	var ce *chronoerr.Error
	if !errors.As(err, &ce) || ce.Field != "minuteOfHour" || ce.Upper != 59 {
		t.Fatalf("Set(60) error detail: got %+v", ce)
	}
}

func TestPreciseFieldSetOverflow(t *testing.T) {
	f := minuteOfHour()
	// math.MaxInt64 falls in minute 12 of its hour.
	if got, err := f.Set(math.MaxInt64, 59); !chronoerr.Is(err, chronoerr.Overflow) {
		t.Fatalf("Set(max, 59): got %d, %v, want overflow", got, err)
	}
	if got, err := f.AddWrapField(math.MaxInt64, 47); !chronoerr.Is(err, chronoerr.Overflow) {
		t.Fatalf("AddWrapField(max, 47): got %d, %v, want overflow", got, err)
	}
	down, err := f.Set(math.MaxInt64, 0)
	if err != nil {
		t.Fatalf("Set(max, 0): %v", err)
	}
	if f.Get(down) != 0 || down != math.MaxInt64-12*MillisPerMinute {
		t.Fatalf("Set(max, 0): got %d", down)
	}
}

func TestPreciseFieldAddWrapField(t *testing.T) {
	f := minuteOfHour()
	got, err := f.AddWrapField(59*MillisPerMinute, 2)
	if err != nil {
		t.Fatalf("AddWrapField: %v", err)
	}
	if got != MillisPerMinute {
		t.Fatalf("AddWrapField(59m, 2): got %d, want %d", got, MillisPerMinute)
	}
	// Add carries into the hour instead.
	carried, _ := f.Add(59*MillisPerMinute, 2)
	if carried != 61*MillisPerMinute {
		t.Fatalf("Add(59m, 2): got %d, want %d", carried, 61*MillisPerMinute)
	}
}

func TestPreciseFieldRounding(t *testing.T) {
	f := minuteOfHour()
	tests := []struct {
		name    string
		round   func(int64) (int64, error)
		instant int64
		want    int64
	}{
		{"floor", f.RoundFloor, 90_000, 60_000},
		{"floor negative", f.RoundFloor, -1, -60_000},
		{"floor exact", f.RoundFloor, 120_000, 120_000},
		{"ceiling", f.RoundCeiling, 90_000, 120_000},
		{"ceiling exact", f.RoundCeiling, 60_000, 60_000},
		{"half floor tie", f.RoundHalfFloor, 90_000, 60_000},
		{"half ceiling tie", f.RoundHalfCeiling, 90_000, 120_000},
		{"half even to 2", f.RoundHalfEven, 90_000, 120_000},
		{"half even stays 2", f.RoundHalfEven, 150_000, 120_000},
		{"half floor near ceiling", f.RoundHalfFloor, 100_000, 120_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.round(tt.instant)
			if err != nil {
				t.Fatalf("round: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPreciseFieldRemainder(t *testing.T) {
	f := minuteOfHour()
	if r, _ := f.Remainder(90_000); r != 30_000 {
		t.Fatalf("Remainder(90000): got %d, want 30000", r)
	}
	if r, _ := f.Remainder(-1); r != 59_999 {
		t.Fatalf("Remainder(-1): got %d, want 59999", r)
	}
}

func TestWrappedValue(t *testing.T) {
	tests := []struct {
		current  int
		delta    int64
		min, max int
		want     int
	}{
		{59, 2, 0, 59, 1},
		{0, -1, 0, 59, 59},
		{12, 1, 1, 12, 1},
		{1, -13, 1, 12, 12},
		{5, 120, 0, 59, 5},
	}
	for _, tt := range tests {
		got, err := WrappedValue(tt.current, tt.delta, tt.min, tt.max)
		if err != nil {
			t.Fatalf("WrappedValue(%d, %d): %v", tt.current, tt.delta, err)
		}
		if got != tt.want {
			t.Errorf("WrappedValue(%d, %d, %d, %d): got %d, want %d",
				tt.current, tt.delta, tt.min, tt.max, got, tt.want)
		}
	}
	if _, err := WrappedValue(0, 1, 5, 5); !chronoerr.Is(err, chronoerr.InvalidArgument) {
		t.Fatalf("degenerate range: got %v, want invalid argument", err)
	}
}

// ----- Decorators -----

func TestOffsetField(t *testing.T) {
	f := NewOffsetDateTimeField(minuteOfHour(), MinuteOfHour, 1)
	if f.MinimumValue() != 1 || f.MaximumValue() != 60 {
		t.Fatalf("bounds: got [%d,%d], want [1,60]", f.MinimumValue(), f.MaximumValue())
	}
	if got := f.Get(0); got != 1 {
		t.Fatalf("Get(0): got %d, want 1", got)
	}
	got, err := f.Set(0, 60)
	if err != nil || got != 59*MillisPerMinute {
		t.Fatalf("Set(60): got %d (%v), want %d", got, err, 59*MillisPerMinute)
	}
	if _, err := f.Set(0, 0); !chronoerr.Is(err, chronoerr.OutOfRange) {
		t.Fatalf("Set(0): got %v, want out of range", err)
	}
	added, err := f.Add(0, 5)
	if err != nil || f.Get(added) != 6 {
		t.Fatalf("Add(5): got value %d (%v), want 6", f.Get(added), err)
	}
}

func TestZeroIsMaxField(t *testing.T) {
	hourOfDay := NewPreciseDateTimeField(HourOfDay, testHours, testDays)
	f := NewZeroIsMaxDateTimeField(hourOfDay, ClockhourOfDay)
	if f.Type() != ClockhourOfDay {
		t.Fatalf("Type: got %v, want clockhourOfDay", f.Type())
	}
	if got := f.Get(0); got != 24 {
		t.Fatalf("Get(midnight): got %d, want 24", got)
	}
	if got := f.Get(MillisPerHour); got != 1 {
		t.Fatalf("Get(1am): got %d, want 1", got)
	}
	set, err := f.Set(5*MillisPerHour, 24)
	if err != nil || set != 0 {
		t.Fatalf("Set(24): got %d (%v), want 0", set, err)
	}
	if _, err := f.Set(0, 0); !chronoerr.Is(err, chronoerr.OutOfRange) {
		t.Fatalf("Set(0): got %v, want out of range", err)
	}
	if f.MinimumValue() != 1 || f.MaximumValue() != 24 {
		t.Fatalf("bounds: got [%d,%d], want [1,24]", f.MinimumValue(), f.MaximumValue())
	}
}

func TestDividedAndRemainderFields(t *testing.T) {
	secondOfMinute := NewPreciseDateTimeField(SecondOfMinute, testSeconds, testMinutes)
	tens := NewDividedDateTimeField(secondOfMinute, nil, SecondOfMinute, 10)
	ones := NewRemainderDateTimeField(tens, nil, SecondOfMinute)

	if tens.MinimumValue() != 0 || tens.MaximumValue() != 5 {
		t.Fatalf("divided bounds: got [%d,%d], want [0,5]", tens.MinimumValue(), tens.MaximumValue())
	}
	if got := tens.Get(37_000); got != 3 {
		t.Fatalf("divided Get(37s): got %d, want 3", got)
	}
	if got := ones.Get(37_000); got != 7 {
		t.Fatalf("remainder Get(37s): got %d, want 7", got)
	}

	set, err := tens.Set(37_000, 1)
	if err != nil || set != 17_000 {
		t.Fatalf("divided Set(1): got %d (%v), want 17000", set, err)
	}
	set, err = ones.Set(37_000, 2)
	if err != nil || set != 32_000 {
		t.Fatalf("remainder Set(2): got %d (%v), want 32000", set, err)
	}
	wrapped, err := ones.AddWrapField(37_000, 5)
	if err != nil || wrapped != 32_000 {
		t.Fatalf("remainder AddWrapField(5): got %d (%v), want 32000", wrapped, err)
	}

	added, err := tens.Add(0, 2)
	if err != nil || added != 20_000 {
		t.Fatalf("divided Add(2): got %d (%v), want 20000", added, err)
	}
	if tens.DurationField().UnitMillis() != 10_000 {
		t.Fatalf("divided unit: got %d, want 10000", tens.DurationField().UnitMillis())
	}
	floor, err := tens.RoundFloor(37_500)
	if err != nil || floor != 30_000 {
		t.Fatalf("divided RoundFloor: got %d (%v), want 30000", floor, err)
	}
}

func TestFloorQuotientAndRemainder(t *testing.T) {
	tests := []struct{ v, q, r int }{
		{25, 2, 5},
		{0, 0, 0},
		{-1, -1, 9},
		{-10, -1, 0},
		{-11, -2, 9},
	}
	for _, tt := range tests {
		if q := floorQuotient(tt.v, 10); q != tt.q {
			t.Errorf("floorQuotient(%d): got %d, want %d", tt.v, q, tt.q)
		}
		if r := floorRemainder(tt.v, 10); r != tt.r {
			t.Errorf("floorRemainder(%d): got %d, want %d", tt.v, r, tt.r)
		}
	}
}

func TestSkipAndSkipUndo(t *testing.T) {
	// Values -30..29 with zero at the half-hour.
	centered := NewOffsetDateTimeField(minuteOfHour(), MinuteOfHour, -30)
	skip := NewSkipDateTimeField(centered, 0)
	halfHour := 30 * MillisPerMinute

	if got := skip.Get(halfHour); got != -1 {
		t.Fatalf("skip Get(30m): got %d, want -1", got)
	}
	if got := skip.Get(halfHour + MillisPerMinute); got != 1 {
		t.Fatalf("skip Get(31m): got %d, want 1", got)
	}
	if skip.MinimumValue() != -31 {
		t.Fatalf("skip min: got %d, want -31", skip.MinimumValue())
	}
	set, err := skip.Set(0, -1)
	if err != nil || set != halfHour {
		t.Fatalf("skip Set(-1): got %d (%v), want %d", set, err, halfHour)
	}
	if _, err := skip.Set(0, 0); !chronoerr.Is(err, chronoerr.OutOfRange) {
		t.Fatalf("skip Set(0): got %v, want out of range", err)
	}

	undo := NewSkipUndoDateTimeField(skip, 0)
	if got := undo.Get(halfHour); got != 0 {
		t.Fatalf("undo Get(30m): got %d, want 0", got)
	}
	if undo.MinimumValue() != -30 {
		t.Fatalf("undo min: got %d, want -30", undo.MinimumValue())
	}
	set, err = undo.Set(0, 0)
	if err != nil || set != halfHour {
		t.Fatalf("undo Set(0): got %d (%v), want %d", set, err, halfHour)
	}
}

func TestDelegatedField(t *testing.T) {
	f := NewDelegatedDateTimeField(minuteOfHour(), testDays, MinuteOfDay)
	if f.Type() != MinuteOfDay || f.Name() != "minuteOfDay" {
		t.Fatalf("Type: got %v", f.Type())
	}
	if f.RangeDurationField() != DurationField(testDays) {
		t.Fatal("RangeDurationField: want the override")
	}
	if got := f.Get(3 * MillisPerMinute); got != 3 {
		t.Fatalf("Get: got %d, want 3", got)
	}
}

func TestUnsupportedDateTimeField(t *testing.T) {
	f := NewUnsupportedDateTimeField(Era, nil)
	if f.IsSupported() {
		t.Fatal("IsSupported: got true, want false")
	}
	if got := f.Get(12345); got != 0 {
		t.Fatalf("Get: got %d, want 0", got)
	}
	if _, err := f.Set(0, 1); !chronoerr.Is(err, chronoerr.Unsupported) {
		t.Fatalf("Set: got %v, want unsupported", err)
	}
	if got, err := f.Add(7, 0); err != nil || got != 7 {
		t.Fatalf("Add zero: got %d (%v), want 7", got, err)
	}
	if _, err := f.RoundFloor(0); !chronoerr.Is(err, chronoerr.Unsupported) {
		t.Fatalf("RoundFloor: got %v, want unsupported", err)
	}
}

func TestTypeNames(t *testing.T) {
	for _, dt := range DateTimeFieldTypes() {
		got, ok := DateTimeFieldTypeByName(dt.Name())
		if !ok || got != dt {
			t.Errorf("DateTimeFieldTypeByName(%q): got %v, %v", dt.Name(), got, ok)
		}
	}
	if _, ok := DurationFieldTypeByName("fortnights"); ok {
		t.Fatal("unknown duration name resolved")
	}
	if r, ok := Year.RangeDurationType(); ok {
		t.Fatalf("year range: got %v, want none", r)
	}
	if r, _ := DayOfMonth.RangeDurationType(); r != Months {
		t.Fatalf("dayOfMonth range: got %v, want months", r)
	}
}
