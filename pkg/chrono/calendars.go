package chrono

import (
	"strconv"
	"strings"
	"sync"

	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
)

// defaultMinDays is the number of days of a new year that must fall in
// its first week (ISO-8601 rule).
const defaultMinDays = 4

// buddhistOffset is the Buddhist era year of 1 BC, so 1 AD is 544.
const buddhistOffset = 543

type cacheKey struct {
	cal     Calendar
	zone    string
	minDays int
}

var cache = struct {
	sync.Mutex
	byKey map[cacheKey]*assembled
}{byKey: make(map[cacheKey]*assembled)}

// New returns the shared chronology for cal in zone.
func New(cal Calendar, zone *Zone) (Chronology, error) {
	return NewWithMinDays(cal, zone, defaultMinDays)
}

// NewWithMinDays is New with a custom week rule: minDays of a new year
// must fall in its first week. ISO only accepts 4.
func NewWithMinDays(cal Calendar, zone *Zone, minDays int) (Chronology, error) {
	if zone == nil {
		return nil, chronoerr.Invalid("zone must not be nil")
	}
	if minDays < 1 || minDays > 7 {
		return nil, chronoerr.Invalid("minimum days in first week must be in [1,7], got %d", minDays)
	}
	switch cal {
	case ISO:
		if minDays != defaultMinDays {
			return nil, chronoerr.Invalid("ISO chronology requires %d minimum days in first week", defaultMinDays)
		}
	case Gregorian, Julian, GJ, Buddhist:
	default:
		return nil, chronoerr.Invalid("unknown calendar %q", string(cal))
	}

	cache.Lock()
	defer cache.Unlock()
	a, err := lookupLocked(cal, zone, minDays)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ISOUTC returns the ISO chronology in UTC, the default for every value
// type.
func ISOUTC() Chronology {
	c, err := New(ISO, UTC)
	if err != nil {
		panic(err)
	}
	return c
}

// MustNew is New for callers with constant arguments.
func MustNew(cal Calendar, zone *Zone) Chronology {
	c, err := New(cal, zone)
	if err != nil {
		panic(err)
	}
	return c
}

// ForID resolves an ID produced by Chronology.ID, such as "GJ[UTC]" or
// "Gregorian,1[Europe/Paris]".
func ForID(id string) (Chronology, error) {
	open := strings.IndexByte(id, '[')
	if open < 0 || !strings.HasSuffix(id, "]") {
		return nil, chronoerr.Invalid("malformed chronology id %q", id)
	}
	head, zoneID := id[:open], id[open+1:len(id)-1]
	minDays := defaultMinDays
	if comma := strings.IndexByte(head, ','); comma >= 0 {
		n, err := strconv.Atoi(head[comma+1:])
		if err != nil {
			return nil, chronoerr.Invalid("malformed chronology id %q", id)
		}
		head, minDays = head[:comma], n
	}
	zone, err := LoadZone(zoneID)
	if err != nil {
		return nil, err
	}
	return NewWithMinDays(Calendar(head), zone, minDays)
}

func lookupLocked(cal Calendar, zone *Zone, minDays int) (*assembled, error) {
	key := cacheKey{cal: cal, zone: zone.ID(), minDays: minDays}
	if a, ok := cache.byKey[key]; ok {
		return a, nil
	}

	var a *assembled
	if zone != UTC {
		utc, err := lookupLocked(cal, UTC, minDays)
		if err != nil {
			return nil, err
		}
		a = newZoned(utc, zone)
	} else {
		var err error
		if a, err = assembleUTC(cal, minDays); err != nil {
			return nil, err
		}
	}
	cache.byKey[key] = a
	return a, nil
}

func assembleUTC(cal Calendar, minDays int) (*assembled, error) {
	a := &assembled{cal: cal, zone: UTC, minDays: minDays}
	switch cal {
	case Gregorian:
		c := newBasic(gregorianRules{}, minDays)
		a.fields, a.direct = assembleBasic(c), c

	case ISO:
		c := newBasic(gregorianRules{}, minDays)
		a.fields, a.direct = assembleBasic(c), c
		zeroBasedCenturies(&a.fields)

	case Julian:
		c := newBasic(julianRules{}, minDays)
		a.fields, a.direct = assembleBasic(c), c
		a.fields.Year = field.NewSkipDateTimeField(a.fields.Year, 0)
		a.fields.Weekyear = field.NewSkipDateTimeField(a.fields.Weekyear, 0)

	case GJ:
		julian, err := lookupLocked(Julian, UTC, minDays)
		if err != nil {
			return nil, err
		}
		gregorian, err := lookupLocked(Gregorian, UTC, minDays)
		if err != nil {
			return nil, err
		}
		cut, err := newCutover(julian, gregorian, DefaultCutover)
		if err != nil {
			return nil, err
		}
		a.fields, a.direct = assembleGJ(cut), cut

	case Buddhist:
		gj, err := lookupLocked(GJ, UTC, minDays)
		if err != nil {
			return nil, err
		}
		a.fields = assembleBuddhist(gj.fields)
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// Field tables
// ---------------------------------------------------------------------------

func assembleBasic(c *basic) Fields {
	var f Fields
	f.timeFields()

	year := newYearField(c)
	f.Year = year
	f.Years = year.DurationField()
	month := newMonthOfYearField(c, f.Years)
	f.MonthOfYear = month
	f.Months = month.DurationField()
	weekyear := newWeekyearField(c)
	f.Weekyear = weekyear
	f.Weekyears = weekyear.DurationField()

	f.DayOfMonth = newDayOfMonthField(c, f.Months)
	f.DayOfYear = newDayOfYearField(c, f.Years)
	f.DayOfWeek = newDayOfWeekField(c)
	f.WeekOfWeekyear = newWeekOfWeekyearField(c, f.Weekyears)

	f.Era = newEraField(c)
	f.Eras = field.Unsupported(field.Eras)
	f.YearOfEra = newYearOfEraField(c, f.Year)
	oneBasedCenturies(&f)
	return f
}

// oneBasedCenturies derives centuryOfEra, yearOfCentury and
// weekyearOfCentury so that 2000 is year 100 of century 20.
func oneBasedCenturies(f *Fields) {
	century := field.NewDividedDateTimeField(
		field.NewOffsetDateTimeField(f.YearOfEra, field.YearOfEra, 99), f.Eras, field.CenturyOfEra, 100)
	f.CenturyOfEra = century
	f.Centuries = century.DurationField()
	f.YearOfCentury = field.NewOffsetDateTimeField(
		field.NewRemainderDateTimeField(century, nil, field.YearOfCentury), field.YearOfCentury, 1)
	f.WeekyearOfCentury = field.NewOffsetDateTimeField(
		field.NewRemainderOf(f.Weekyear, f.Centuries, field.WeekyearOfCentury, 100), field.WeekyearOfCentury, 1)
}

// zeroBasedCenturies replaces the century fields so that 2000 is year 0
// of century 20.
func zeroBasedCenturies(f *Fields) {
	century := field.NewDividedDateTimeField(newISOYearOfEraField(f.Year), nil, field.CenturyOfEra, 100)
	f.CenturyOfEra = century
	f.Centuries = century.DurationField()
	f.YearOfCentury = field.NewRemainderDateTimeField(century, nil, field.YearOfCentury)
	f.WeekyearOfCentury = field.NewRemainderOf(f.Weekyear, f.Centuries, field.WeekyearOfCentury, 100)
}

// assembleBuddhist shifts the GJ years by 543 with a single era. The GJ
// calendar has no year zero; the Buddhist one counts through it, so 1 BC
// is 543 BE.
func assembleBuddhist(gj Fields) Fields {
	f := gj
	f.Eras = field.Unsupported(field.Eras)
	f.Year = field.NewOffsetDateTimeField(field.NewSkipUndoDateTimeField(gj.Year, 0), field.Year, buddhistOffset)
	f.YearOfEra = field.NewDelegatedDateTimeField(f.Year, f.Eras, field.YearOfEra)
	f.Weekyear = field.NewOffsetDateTimeField(field.NewSkipUndoDateTimeField(gj.Weekyear, 0), field.Weekyear, buddhistOffset)
	oneBasedCenturies(&f)
	f.Era = newSingleEraField()
	return f
}
