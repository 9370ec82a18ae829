package period

import (
	"github.com/daviddao/chronology/pkg/chrono"
	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/safemath"
)

// Period is an immutable period. Methods that change a value return a new
// Period. Use *Period; the zero value is not usable.
type Period struct {
	base
}

// Zero is the empty standard period.
var Zero = New(Fields{})

func newPeriod(typ *Type, values []int) *Period {
	p := &Period{}
	p.init(typ, values)
	return p
}

// New returns a standard period with the given values. It panics if a
// value is outside the 32-bit range; use Of to get an error instead.
func New(f Fields) *Period {
	values, err := valuesFor(standard, f)
	if err != nil {
		panic(err)
	}
	return newPeriod(standard, values)
}

// Of returns a period of typ with the given values. A nonzero value for a
// unit typ lacks fails with Unsupported.
func Of(typ *Type, f Fields) (*Period, error) {
	if typ == nil {
		typ = standard
	}
	values, err := valuesFor(typ, f)
	if err != nil {
		return nil, err
	}
	return newPeriod(typ, values), nil
}

// From copies any readable period onto typ.
func From(typ *Type, p chrono.ReadablePeriod) (*Period, error) {
	if typ == nil {
		typ = standard
	}
	values, err := valuesFrom(typ, p)
	if err != nil {
		return nil, err
	}
	return newPeriod(typ, values), nil
}

// single panics if v is outside the 32-bit range.
func single(typ *Type, v int) *Period {
	n, err := safemath.ToInt32(v)
	if err != nil {
		panic(err)
	}
	return newPeriod(typ, []int{n})
}

func Years(n int) *Period   { return single(yearsOnly, n) }
func Months(n int) *Period  { return single(monthsOnly, n) }
func Weeks(n int) *Period   { return single(weeksOnly, n) }
func Days(n int) *Period    { return single(daysOnly, n) }
func Hours(n int) *Period   { return single(hoursOnly, n) }
func Minutes(n int) *Period { return single(minutesOnly, n) }
func Seconds(n int) *Period { return single(secondsOnly, n) }
func Millis(n int) *Period  { return single(millisOnly, n) }

// Between splits the span from start to end into typ's units in c. Adding
// the result to start in c gives end exactly. Nil typ means Standard and
// nil c means ISO in UTC.
func Between(start, end int64, typ *Type, c chrono.Chronology) (*Period, error) {
	if typ == nil {
		typ = standard
	}
	if c == nil {
		c = chrono.ISOUTC()
	}
	values, err := c.PeriodBetween(typ, start, end)
	if err != nil {
		return nil, err
	}
	return newPeriod(typ, values), nil
}

// FromDuration splits a millisecond duration into typ's precise units in
// c; imprecise units stay zero.
func FromDuration(duration int64, typ *Type, c chrono.Chronology) (*Period, error) {
	if typ == nil {
		typ = standard
	}
	if c == nil {
		c = chrono.ISOUTC()
	}
	values, err := c.PeriodOf(typ, duration)
	if err != nil {
		return nil, err
	}
	return newPeriod(typ, values), nil
}

// With returns a copy with unit set to v.
func (p *Period) With(unit field.DurationFieldType, v int) (*Period, error) {
	i := p.typ.IndexOf(unit)
	if i < 0 {
		if v == 0 {
			return p, nil
		}
		return nil, chronoerr.UnsupportedOp("period type %s does not support %s", p.typ.Name(), unit.Name())
	}
	n, err := safemath.ToInt32(v)
	if err != nil {
		return nil, err
	}
	values := p.Values()
	values[i] = n
	return newPeriod(p.typ, values), nil
}

func (p *Period) WithYears(n int) (*Period, error)   { return p.With(field.Years, n) }
func (p *Period) WithMonths(n int) (*Period, error)  { return p.With(field.Months, n) }
func (p *Period) WithWeeks(n int) (*Period, error)   { return p.With(field.Weeks, n) }
func (p *Period) WithDays(n int) (*Period, error)    { return p.With(field.Days, n) }
func (p *Period) WithHours(n int) (*Period, error)   { return p.With(field.Hours, n) }
func (p *Period) WithMinutes(n int) (*Period, error) { return p.With(field.Minutes, n) }
func (p *Period) WithSeconds(n int) (*Period, error) { return p.With(field.Seconds, n) }
func (p *Period) WithMillis(n int) (*Period, error)  { return p.With(field.Millis, n) }

// WithType copies the values onto typ. Values for units typ lacks must be
// zero.
func (p *Period) WithType(typ *Type) (*Period, error) {
	if typ == nil {
		typ = standard
	}
	if typ == p.typ {
		return p, nil
	}
	return From(typ, p)
}

// Plus adds other unit by unit. Every nonzero unit of other must be
// supported by p's type.
func (p *Period) Plus(other chrono.ReadablePeriod) (*Period, error) {
	values := p.Values()
	if err := addInto(p.typ, values, other); err != nil {
		return nil, err
	}
	return newPeriod(p.typ, values), nil
}

// Minus subtracts other unit by unit.
func (p *Period) Minus(other chrono.ReadablePeriod) (*Period, error) {
	if other == nil {
		return p, nil
	}
	neg, err := negate(other)
	if err != nil {
		return nil, err
	}
	return p.Plus(neg)
}

// Multiplied scales every unit by scalar.
func (p *Period) Multiplied(scalar int) (*Period, error) {
	if scalar == 1 {
		return p, nil
	}
	values := p.Values()
	for i, v := range values {
		m, err := safemath.Mul32(v, scalar)
		if err != nil {
			return nil, err
		}
		values[i] = m
	}
	return newPeriod(p.typ, values), nil
}

// Negated flips the sign of every unit.
func (p *Period) Negated() (*Period, error) { return p.Multiplied(-1) }

// Normalized rebuilds the period from its fixed length, so 25 hours
// becomes 1 day and 1 hour. Imprecise periods fail with IllegalState.
func (p *Period) Normalized() (*Period, error) {
	ms, err := p.DurationMillis()
	if err != nil {
		return nil, err
	}
	return FromDuration(ms, p.typ, chrono.ISOUTC())
}

// Equal reports whether both periods have the same type and values.
func (p *Period) Equal(other *Period) bool {
	if p == other {
		return true
	}
	if other == nil || p.typ != other.typ {
		return false
	}
	for i, v := range p.values {
		if other.values[i] != v {
			return false
		}
	}
	return true
}

// Mutable returns an independent mutable copy.
func (p *Period) Mutable() *MutablePeriod {
	m := &MutablePeriod{}
	m.init(p.typ, p.Values())
	return m
}

type negated struct{ chrono.ReadablePeriod }

func (n negated) Value(i int) int { return -n.ReadablePeriod.Value(i) }

func negate(p chrono.ReadablePeriod) (chrono.ReadablePeriod, error) {
	for i, n := 0, p.Size(); i < n; i++ {
		if _, err := safemath.ToInt32(-int64(p.Value(i))); err != nil {
			return nil, err
		}
	}
	return negated{p}, nil
}
