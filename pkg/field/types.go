// Package field implements the unit-of-measure and calendar-field
// abstractions that every chronology is assembled from.
//
// A DurationField measures a unit ("month", "hour") between two timeline
// positions. A DateTimeField reads and writes one calendar value ("dayOfMonth")
// at a timeline position. Timeline positions are plain int64 millisecond
// counts; the fields never hold a position themselves, so every field value
// is immutable and safe to share across goroutines.
//
// Concrete variants are small and composable: an offset field skews another
// field, a divided field derives centuries from years, a zero-is-max field
// turns hourOfDay into clockhourOfDay, and so on. Calendar rules are supplied
// by the chrono package.
package field

// DurationFieldType identifies a unit of duration independently of any
// chronology. The zero value means "no unit".
type DurationFieldType int

const (
	Eras DurationFieldType = iota + 1
	Centuries
	Weekyears
	Years
	Months
	Weeks
	Days
	Halfdays
	Hours
	Minutes
	Seconds
	Millis
)

var durationNames = [...]string{
	Eras:      "eras",
	Centuries: "centuries",
	Weekyears: "weekyears",
	Years:     "years",
	Months:    "months",
	Weeks:     "weeks",
	Days:      "days",
	Halfdays:  "halfdays",
	Hours:     "hours",
	Minutes:   "minutes",
	Seconds:   "seconds",
	Millis:    "millis",
}

// Name returns the stable symbolic name, e.g. "months".
func (t DurationFieldType) Name() string {
	if t <= 0 || int(t) >= len(durationNames) {
		return "none"
	}
	return durationNames[t]
}

func (t DurationFieldType) String() string { return t.Name() }

// IsValid reports whether t names a unit.
func (t DurationFieldType) IsValid() bool { return t >= Eras && t <= Millis }

// DurationFieldTypes returns every unit, largest first.
func DurationFieldTypes() []DurationFieldType {
	return []DurationFieldType{Eras, Centuries, Weekyears, Years, Months, Weeks,
		Days, Halfdays, Hours, Minutes, Seconds, Millis}
}

// DurationFieldTypeByName resolves a symbolic name such as "hours".
func DurationFieldTypeByName(name string) (DurationFieldType, bool) {
	for _, t := range DurationFieldTypes() {
		if t.Name() == name {
			return t, true
		}
	}
	return 0, false
}

// DateTimeFieldType identifies a calendar field independently of any
// chronology. Formatters and parsers resolve fields through these tokens.
type DateTimeFieldType int

const (
	Era DateTimeFieldType = iota + 1
	YearOfEra
	CenturyOfEra
	YearOfCentury
	Year
	DayOfYear
	MonthOfYear
	DayOfMonth
	WeekyearOfCentury
	Weekyear
	WeekOfWeekyear
	DayOfWeek
	HalfdayOfDay
	HourOfHalfday
	ClockhourOfHalfday
	ClockhourOfDay
	HourOfDay
	MinuteOfDay
	MinuteOfHour
	SecondOfDay
	SecondOfMinute
	MillisOfDay
	MillisOfSecond
)

type dateTimeTypeInfo struct {
	name    string
	unit    DurationFieldType
	rangeOf DurationFieldType
}

var dateTimeTypes = [...]dateTimeTypeInfo{
	Era:                {"era", Eras, 0},
	YearOfEra:          {"yearOfEra", Years, Eras},
	CenturyOfEra:       {"centuryOfEra", Centuries, Eras},
	YearOfCentury:      {"yearOfCentury", Years, Centuries},
	Year:               {"year", Years, 0},
	DayOfYear:          {"dayOfYear", Days, Years},
	MonthOfYear:        {"monthOfYear", Months, Years},
	DayOfMonth:         {"dayOfMonth", Days, Months},
	WeekyearOfCentury:  {"weekyearOfCentury", Weekyears, Centuries},
	Weekyear:           {"weekyear", Weekyears, 0},
	WeekOfWeekyear:     {"weekOfWeekyear", Weeks, Weekyears},
	DayOfWeek:          {"dayOfWeek", Days, Weeks},
	HalfdayOfDay:       {"halfdayOfDay", Halfdays, Days},
	HourOfHalfday:      {"hourOfHalfday", Hours, Halfdays},
	ClockhourOfHalfday: {"clockhourOfHalfday", Hours, Halfdays},
	ClockhourOfDay:     {"clockhourOfDay", Hours, Days},
	HourOfDay:          {"hourOfDay", Hours, Days},
	MinuteOfDay:        {"minuteOfDay", Minutes, Days},
	MinuteOfHour:       {"minuteOfHour", Minutes, Hours},
	SecondOfDay:        {"secondOfDay", Seconds, Days},
	SecondOfMinute:     {"secondOfMinute", Seconds, Minutes},
	MillisOfDay:        {"millisOfDay", Millis, Days},
	MillisOfSecond:     {"millisOfSecond", Millis, Seconds},
}

func (t DateTimeFieldType) info() dateTimeTypeInfo {
	if t <= 0 || int(t) >= len(dateTimeTypes) {
		return dateTimeTypeInfo{name: "none"}
	}
	return dateTimeTypes[t]
}

// Name returns the stable symbolic name, e.g. "dayOfMonth".
func (t DateTimeFieldType) Name() string { return t.info().name }

func (t DateTimeFieldType) String() string { return t.Name() }

// IsValid reports whether t names a field.
func (t DateTimeFieldType) IsValid() bool { return t >= Era && t <= MillisOfSecond }

// DurationType is the unit the field counts in (days for dayOfMonth).
func (t DateTimeFieldType) DurationType() DurationFieldType { return t.info().unit }

// RangeDurationType is the unit the field cycles within (months for
// dayOfMonth). The second result is false for unbounded fields such as year.
func (t DateTimeFieldType) RangeDurationType() (DurationFieldType, bool) {
	r := t.info().rangeOf
	return r, r != 0
}

// DateTimeFieldTypes returns every field token in declaration order.
func DateTimeFieldTypes() []DateTimeFieldType {
	out := make([]DateTimeFieldType, 0, int(MillisOfSecond))
	for t := Era; t <= MillisOfSecond; t++ {
		out = append(out, t)
	}
	return out
}

// DateTimeFieldTypeByName resolves a symbolic name such as "monthOfYear".
func DateTimeFieldTypeByName(name string) (DateTimeFieldType, bool) {
	for _, t := range DateTimeFieldTypes() {
		if t.Name() == name {
			return t, true
		}
	}
	return 0, false
}
