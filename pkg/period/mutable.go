package period

import (
	"github.com/daviddao/chronology/pkg/chrono"
	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/safemath"
)

// MutablePeriod is a period whose values change in place. It is not safe
// for concurrent use. A failed mutation leaves the values unchanged.
type MutablePeriod struct {
	base
}

// NewMutable returns a zero period of typ; nil means Standard.
func NewMutable(typ *Type) *MutablePeriod {
	if typ == nil {
		typ = standard
	}
	m := &MutablePeriod{}
	m.init(typ, make([]int, typ.Size()))
	return m
}

// SetValues replaces every value.
func (m *MutablePeriod) SetValues(f Fields) error {
	values, err := valuesFor(m.typ, f)
	if err != nil {
		return err
	}
	m.replace(values)
	return nil
}

// SetPeriod replaces every value with those of p.
func (m *MutablePeriod) SetPeriod(p chrono.ReadablePeriod) error {
	values, err := valuesFrom(m.typ, p)
	if err != nil {
		return err
	}
	m.replace(values)
	return nil
}

// SetBetween replaces the values with the span from start to end in c.
func (m *MutablePeriod) SetBetween(start, end int64, c chrono.Chronology) error {
	if c == nil {
		c = chrono.ISOUTC()
	}
	values, err := c.PeriodBetween(m.typ, start, end)
	if err != nil {
		return err
	}
	m.replace(values)
	return nil
}

// SetDuration replaces the values with duration split into the precise
// units of c.
func (m *MutablePeriod) SetDuration(duration int64, c chrono.Chronology) error {
	if c == nil {
		c = chrono.ISOUTC()
	}
	values, err := c.PeriodOf(m.typ, duration)
	if err != nil {
		return err
	}
	m.replace(values)
	return nil
}

// Set replaces one unit. A nonzero value for a unit the type lacks fails
// with Unsupported.
func (m *MutablePeriod) Set(unit field.DurationFieldType, v int) error {
	i := m.typ.IndexOf(unit)
	if i < 0 {
		if v == 0 {
			return nil
		}
		return chronoerr.UnsupportedOp("period type %s does not support %s", m.typ.Name(), unit.Name())
	}
	n, err := safemath.ToInt32(v)
	if err != nil {
		return err
	}
	values := m.Values()
	values[i] = n
	m.replace(values)
	return nil
}

// Add adds v to one unit.
func (m *MutablePeriod) Add(unit field.DurationFieldType, v int) error {
	if v == 0 {
		return nil
	}
	i := m.typ.IndexOf(unit)
	if i < 0 {
		return chronoerr.UnsupportedOp("period type %s does not support %s", m.typ.Name(), unit.Name())
	}
	sum, err := safemath.Add32(m.values[i], v)
	if err != nil {
		return err
	}
	values := m.Values()
	values[i] = sum
	m.replace(values)
	return nil
}

// AddValues adds each of f's values to the matching unit.
func (m *MutablePeriod) AddValues(f Fields) error {
	other, err := valuesFor(standard, f)
	if err != nil {
		return err
	}
	return m.AddPeriod(newPeriod(standard, other))
}

// AddPeriod adds p unit by unit.
func (m *MutablePeriod) AddPeriod(p chrono.ReadablePeriod) error {
	values := m.Values()
	if err := addInto(m.typ, values, p); err != nil {
		return err
	}
	m.replace(values)
	return nil
}

// Normalize rebuilds the values from the fixed length. Imprecise periods
// fail with IllegalState and keep their values.
func (m *MutablePeriod) Normalize() error {
	ms, err := m.DurationMillis()
	if err != nil {
		return err
	}
	return m.SetDuration(ms, chrono.ISOUTC())
}

// Clear sets every value to zero.
func (m *MutablePeriod) Clear() {
	m.replace(make([]int, m.typ.Size()))
}

// Period returns an immutable copy.
func (m *MutablePeriod) Period() *Period {
	return newPeriod(m.typ, m.Values())
}
