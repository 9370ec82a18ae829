// Package temporal holds the value types built on the chronology core:
// exact durations, zoned date-times, local dates and times, and
// intervals. The types hold millis and a chronology; every field read or
// write goes through the chronology's fields.
//
// DateTime, LocalDate, LocalTime, LocalDateTime, Duration and Interval are
// immutable. MutableDateTime and MutableInterval are not safe for
// concurrent use.
package temporal

import (
	"fmt"
	"time"

	"github.com/daviddao/chronology/pkg/chrono"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/period"
	"github.com/daviddao/chronology/pkg/safemath"
)

// Duration is an exact length of time in millis.
type Duration struct {
	millis int64
}

// ZeroDuration has no length.
var ZeroDuration = Duration{}

func DurationOf(millis int64) Duration { return Duration{millis: millis} }

func scaled(n, unit int64) (Duration, error) {
	ms, err := safemath.Mul(n, unit)
	if err != nil {
		return Duration{}, err
	}
	return Duration{millis: ms}, nil
}

// StandardDays treats a day as 24 hours.
func StandardDays(n int64) (Duration, error)    { return scaled(n, field.MillisPerDay) }
func StandardHours(n int64) (Duration, error)   { return scaled(n, field.MillisPerHour) }
func StandardMinutes(n int64) (Duration, error) { return scaled(n, field.MillisPerMinute) }
func StandardSeconds(n int64) (Duration, error) { return scaled(n, field.MillisPerSecond) }

// FromStd converts a time.Duration, truncating to millis.
func FromStd(d time.Duration) Duration { return Duration{millis: d.Milliseconds()} }

func (d Duration) Millis() int64                 { return d.millis }
func (d Duration) StandardDays() int64           { return d.millis / field.MillisPerDay }
func (d Duration) StandardHours() int64          { return d.millis / field.MillisPerHour }
func (d Duration) StandardMinutes() int64        { return d.millis / field.MillisPerMinute }
func (d Duration) StandardSeconds() int64        { return d.millis / field.MillisPerSecond }
func (d Duration) Std() time.Duration            { return time.Duration(d.millis) * time.Millisecond }
func (d Duration) IsZero() bool                  { return d.millis == 0 }
func (d Duration) IsLongerThan(o Duration) bool  { return d.millis > o.millis }
func (d Duration) IsShorterThan(o Duration) bool { return d.millis < o.millis }

// Compare returns -1, 0 or +1.
func (d Duration) Compare(o Duration) int {
	switch {
	case d.millis < o.millis:
		return -1
	case d.millis > o.millis:
		return 1
	}
	return 0
}

func (d Duration) Plus(o Duration) (Duration, error) {
	ms, err := safemath.Add(d.millis, o.millis)
	return Duration{millis: ms}, err
}

func (d Duration) Minus(o Duration) (Duration, error) {
	ms, err := safemath.Sub(d.millis, o.millis)
	return Duration{millis: ms}, err
}

func (d Duration) Multiplied(scalar int64) (Duration, error) {
	ms, err := safemath.Mul(d.millis, scalar)
	return Duration{millis: ms}, err
}

func (d Duration) Negated() (Duration, error) {
	ms, err := safemath.Neg(d.millis)
	return Duration{millis: ms}, err
}

// Period splits the duration into typ's precise units in c. Nil arguments
// mean a standard period in ISO UTC, where weeks and days are precise.
func (d Duration) Period(typ *period.Type, c chrono.Chronology) (*period.Period, error) {
	return period.FromDuration(d.millis, typ, c)
}

// String formats as ISO-8601 seconds, e.g. "PT72.345S".
func (d Duration) String() string {
	ms := d.millis
	sign := ""
	if ms < 0 {
		sign = "-"
		// -MinInt64 overflows; the magnitude is taken unsigned.
		u := uint64(-(ms + 1)) + 1
		return fmt.Sprintf("PT%s%d%s", sign, u/1000, fracMillis(int64(u%1000)))
	}
	return fmt.Sprintf("PT%d%s", ms/1000, fracMillis(ms%1000))
}

func fracMillis(ms int64) string {
	if ms == 0 {
		return "S"
	}
	return fmt.Sprintf(".%03dS", ms)
}
