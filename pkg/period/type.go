// Package period implements periods: ordered sets of duration unit values
// ("1 year, 2 months and 5 days") whose length in milliseconds depends on
// where they are applied.
//
// A Type picks which of the eight standard units a period may hold. Period
// is immutable and safe to share; MutablePeriod is not safe for concurrent
// use. Both satisfy chrono.ReadablePeriod, so a chronology can add either.
package period

import (
	"sort"
	"strings"
	"sync"

	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
)

// slot positions in the standard order.
const (
	yearSlot = iota
	monthSlot
	weekSlot
	daySlot
	hourSlot
	minuteSlot
	secondSlot
	millisSlot
	slotCount
)

var slotTypes = [slotCount]field.DurationFieldType{
	field.Years, field.Months, field.Weeks, field.Days,
	field.Hours, field.Minutes, field.Seconds, field.Millis,
}

func slotOf(t field.DurationFieldType) int {
	for i, s := range slotTypes {
		if s == t {
			return i
		}
	}
	return -1
}

// Type is an ordered subset of years, months, weeks, days, hours, minutes,
// seconds and millis. Types are interned: two types with the same units are
// the same pointer.
type Type struct {
	name  string
	types []field.DurationFieldType
	index [slotCount]int
	mask  uint8
}

func newType(name string, mask uint8) *Type {
	t := &Type{name: name, mask: mask}
	for s := 0; s < slotCount; s++ {
		t.index[s] = -1
		if mask&(1<<s) != 0 {
			t.index[s] = len(t.types)
			t.types = append(t.types, slotTypes[s])
		}
	}
	return t
}

const (
	maskDate = 1<<yearSlot | 1<<monthSlot | 1<<weekSlot | 1<<daySlot
	maskTime = 1<<hourSlot | 1<<minuteSlot | 1<<secondSlot | 1<<millisSlot
)

var registry = struct {
	sync.Mutex
	byMask map[uint8]*Type
}{byMask: make(map[uint8]*Type)}

func register(name string, mask uint8) *Type {
	t := newType(name, mask)
	registry.byMask[mask] = t
	return t
}

var (
	standard         = register("Standard", maskDate|maskTime)
	yearMonthDayTime = register("YearMonthDayTime", maskDate&^(1<<weekSlot)|maskTime)
	yearMonthDay     = register("YearMonthDay", 1<<yearSlot|1<<monthSlot|1<<daySlot)
	yearWeekDayTime  = register("YearWeekDayTime", 1<<yearSlot|1<<weekSlot|1<<daySlot|maskTime)
	yearWeekDay      = register("YearWeekDay", 1<<yearSlot|1<<weekSlot|1<<daySlot)
	yearDayTime      = register("YearDayTime", 1<<yearSlot|1<<daySlot|maskTime)
	yearDay          = register("YearDay", 1<<yearSlot|1<<daySlot)
	dayTime          = register("DayTime", 1<<daySlot|maskTime)
	timeOnly         = register("Time", maskTime)
	yearsOnly        = register("Years", 1<<yearSlot)
	monthsOnly       = register("Months", 1<<monthSlot)
	weeksOnly        = register("Weeks", 1<<weekSlot)
	daysOnly         = register("Days", 1<<daySlot)
	hoursOnly        = register("Hours", 1<<hourSlot)
	minutesOnly      = register("Minutes", 1<<minuteSlot)
	secondsOnly      = register("Seconds", 1<<secondSlot)
	millisOnly       = register("Millis", 1<<millisSlot)
)

// Standard holds all eight units.
func Standard() *Type { return standard }

func YearMonthDayTime() *Type { return yearMonthDayTime }
func YearMonthDay() *Type     { return yearMonthDay }
func YearWeekDayTime() *Type  { return yearWeekDayTime }
func YearWeekDay() *Type      { return yearWeekDay }
func YearDayTime() *Type      { return yearDayTime }
func YearDay() *Type          { return yearDay }
func DayTime() *Type          { return dayTime }

// Time holds hours, minutes, seconds and millis.
func Time() *Type { return timeOnly }

func YearsType() *Type   { return yearsOnly }
func MonthsType() *Type  { return monthsOnly }
func WeeksType() *Type   { return weeksOnly }
func DaysType() *Type    { return daysOnly }
func HoursType() *Type   { return hoursOnly }
func MinutesType() *Type { return minutesOnly }
func SecondsType() *Type { return secondsOnly }
func MillisType() *Type  { return millisOnly }

// ForFields returns the type holding exactly the given units, in standard
// order regardless of the order given.
func ForFields(types ...field.DurationFieldType) (*Type, error) {
	if len(types) == 0 {
		return nil, chronoerr.Invalid("period type must have at least one field")
	}
	var mask uint8
	for _, t := range types {
		s := slotOf(t)
		if s < 0 {
			return nil, chronoerr.Invalid("period type cannot hold %s", t.Name())
		}
		mask |= 1 << s
	}
	return forMask(mask, ""), nil
}

func forMask(mask uint8, name string) *Type {
	registry.Lock()
	defer registry.Unlock()
	if t, ok := registry.byMask[mask]; ok {
		return t
	}
	if name == "" {
		var names []string
		for s := 0; s < slotCount; s++ {
			if mask&(1<<s) != 0 {
				names = append(names, slotTypes[s].Name())
			}
		}
		name = "Fields[" + strings.Join(names, ",") + "]"
	}
	t := newType(name, mask)
	registry.byMask[mask] = t
	return t
}

func (t *Type) Name() string   { return t.name }
func (t *Type) String() string { return "PeriodType[" + t.name + "]" }
func (t *Type) Size() int      { return len(t.types) }

func (t *Type) FieldType(i int) field.DurationFieldType { return t.types[i] }

// FieldTypes returns a copy of the units, largest first.
func (t *Type) FieldTypes() []field.DurationFieldType {
	return append([]field.DurationFieldType(nil), t.types...)
}

// IndexOf returns the position of unit in the type, or -1.
func (t *Type) IndexOf(unit field.DurationFieldType) int {
	s := slotOf(unit)
	if s < 0 {
		return -1
	}
	return t.index[s]
}

func (t *Type) IsSupported(unit field.DurationFieldType) bool { return t.IndexOf(unit) >= 0 }

// Without returns the type minus unit. A type that lacks unit is returned
// as is.
func (t *Type) Without(unit field.DurationFieldType) *Type {
	s := slotOf(unit)
	if s < 0 || t.index[s] < 0 {
		return t
	}
	name := t.name + "No" + strings.ToUpper(unit.Name()[:1]) + unit.Name()[1:]
	return forMask(t.mask&^(1<<s), name)
}

// Types returns every interned type, sorted by name.
func Types() []*Type {
	registry.Lock()
	defer registry.Unlock()
	out := make([]*Type, 0, len(registry.byMask))
	for _, t := range registry.byMask {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// TypeByName resolves a name returned by Type.Name among the interned types.
func TypeByName(name string) (*Type, bool) {
	for _, t := range Types() {
		if t.name == name {
			return t, true
		}
	}
	return nil, false
}
