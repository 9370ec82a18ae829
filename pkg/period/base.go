package period

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/daviddao/chronology/pkg/chrono"
	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/safemath"
)

// Fields names a value for each of the eight standard units. It is the
// argument form of the constructors and setters; units the period's type
// lacks must be zero.
type Fields struct {
	Years   int
	Months  int
	Weeks   int
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Millis  int
}

func (f Fields) slots() [slotCount]int {
	return [slotCount]int{f.Years, f.Months, f.Weeks, f.Days, f.Hours, f.Minutes, f.Seconds, f.Millis}
}

func fieldsOf(s [slotCount]int) Fields {
	return Fields{s[0], s[1], s[2], s[3], s[4], s[5], s[6], s[7]}
}

// Precision classifies whether a period has a fixed length in millis.
type Precision int

const (
	// Unknown means the classification has not been computed yet.
	Unknown Precision = iota
	// NotCalculable means a nonzero unit has no fixed length.
	NotCalculable
	// Calculated means every nonzero unit is precise.
	Calculated
)

func (p Precision) String() string {
	switch p {
	case NotCalculable:
		return "not-calculable"
	case Calculated:
		return "calculated"
	}
	return "unknown"
}

// precision is the lazily computed classification. A nil pointer is
// Unknown; once stored a record is never modified.
type precision struct {
	state  Precision
	millis int64
	err    error
}

// base holds the values shared by Period and MutablePeriod: one value per
// unit of typ, plus the cached precision.
type base struct {
	typ    *Type
	values []int
	cache  atomic.Pointer[precision]
}

func (b *base) init(typ *Type, values []int) {
	b.typ = typ
	b.values = values
}

// replace swaps in a complete set of values at once and forgets the
// precision of the old ones.
func (b *base) replace(values []int) {
	b.values = values
	b.cache.Store(nil)
}

// valuesFor spreads f over typ, rejecting nonzero units typ lacks.
func valuesFor(typ *Type, f Fields) ([]int, error) {
	values := make([]int, typ.Size())
	for s, v := range f.slots() {
		if v == 0 {
			continue
		}
		i := typ.index[s]
		if i < 0 {
			return nil, chronoerr.UnsupportedOp("period type %s does not support %s", typ.Name(), slotTypes[s].Name())
		}
		n, err := safemath.ToInt32(v)
		if err != nil {
			return nil, err
		}
		values[i] = n
	}
	return values, nil
}

// valuesFrom copies a readable period onto typ, rejecting nonzero units
// typ lacks.
func valuesFrom(typ *Type, p chrono.ReadablePeriod) ([]int, error) {
	values := make([]int, typ.Size())
	if err := addInto(typ, values, p); err != nil {
		return nil, err
	}
	return values, nil
}

// addInto adds each unit of p into values, checking for overflow.
func addInto(typ *Type, values []int, p chrono.ReadablePeriod) error {
	if p == nil {
		return nil
	}
	for i, n := 0, p.Size(); i < n; i++ {
		v := p.Value(i)
		if v == 0 {
			continue
		}
		t := p.FieldType(i)
		idx := typ.IndexOf(t)
		if idx < 0 {
			return chronoerr.UnsupportedOp("period type %s does not support %s", typ.Name(), t.Name())
		}
		sum, err := safemath.Add32(values[idx], v)
		if err != nil {
			return err
		}
		values[idx] = sum
	}
	return nil
}

func (b *base) Type() *Type { return b.typ }
func (b *base) Size() int   { return len(b.values) }

func (b *base) FieldType(i int) field.DurationFieldType { return b.typ.FieldType(i) }

// Value returns the value at position i of the type.
func (b *base) Value(i int) int { return b.values[i] }

// Get returns the value of unit, zero when the type lacks it.
func (b *base) Get(unit field.DurationFieldType) int {
	i := b.typ.IndexOf(unit)
	if i < 0 {
		return 0
	}
	return b.values[i]
}

func (b *base) Years() int   { return b.Get(field.Years) }
func (b *base) Months() int  { return b.Get(field.Months) }
func (b *base) Weeks() int   { return b.Get(field.Weeks) }
func (b *base) Days() int    { return b.Get(field.Days) }
func (b *base) Hours() int   { return b.Get(field.Hours) }
func (b *base) Minutes() int { return b.Get(field.Minutes) }
func (b *base) Seconds() int { return b.Get(field.Seconds) }
func (b *base) Millis() int  { return b.Get(field.Millis) }

// Fields returns the values by unit name.
func (b *base) Fields() Fields {
	var s [slotCount]int
	for i, v := range b.values {
		s[slotOf(b.typ.FieldType(i))] = v
	}
	return fieldsOf(s)
}

// Values returns a copy of the values in type order.
func (b *base) Values() []int { return append([]int(nil), b.values...) }

// IsZero reports whether every value is zero.
func (b *base) IsZero() bool {
	for _, v := range b.values {
		if v != 0 {
			return false
		}
	}
	return true
}

// Precision returns the classification, computing it on first use.
func (b *base) Precision() Precision { return b.precision().state }

// IsPrecise reports whether every nonzero unit has a fixed length.
func (b *base) IsPrecise() bool { return b.precision().state == Calculated }

// DurationMillis returns the fixed length of a precise period. Weeks and
// days count as 7 and 1 standard days.
func (b *base) DurationMillis() (int64, error) {
	p := b.precision()
	if p.state != Calculated {
		return 0, chronoerr.Illegal("period %s has no fixed duration", b.String())
	}
	return p.millis, p.err
}

func (b *base) precision() *precision {
	if p := b.cache.Load(); p != nil {
		return p
	}
	p := b.classify()
	b.cache.Store(p)
	return p
}

// classify sums the nonzero units using ISO UTC, where every unit from
// weeks down is precise.
func (b *base) classify() *precision {
	utc := chrono.ISOUTC()
	p := &precision{state: Calculated}
	for i, v := range b.values {
		if v == 0 {
			continue
		}
		unit := utc.DurationField(b.typ.FieldType(i))
		if !unit.IsPrecise() {
			return &precision{state: NotCalculable}
		}
		if p.err != nil {
			continue
		}
		ms, err := unit.Millis(int64(v))
		if err == nil {
			ms, err = safemath.Add(p.millis, ms)
		}
		p.millis, p.err = ms, err
	}
	if p.err != nil {
		p.millis = 0
	}
	return p
}

// DurationFrom returns the millis the period spans when added at start in
// c, which is exact for imprecise units too.
func (b *base) DurationFrom(start int64, c chrono.Chronology) (int64, error) {
	if c == nil {
		c = chrono.ISOUTC()
	}
	end, err := c.Add(b, start, 1)
	if err != nil {
		return 0, err
	}
	return safemath.Sub(end, start)
}

// String formats the period as ISO-8601, e.g. "P1Y2M3DT4H5M6.007S".
// Seconds and millis share the S designator; the zero period is "PT0S".
func (b *base) String() string {
	f := b.Fields()
	var sb strings.Builder
	sb.WriteByte('P')
	unit := func(v int, designator byte) {
		if v != 0 {
			sb.WriteString(strconv.Itoa(v))
			sb.WriteByte(designator)
		}
	}
	unit(f.Years, 'Y')
	unit(f.Months, 'M')
	unit(f.Weeks, 'W')
	unit(f.Days, 'D')
	if f.Hours != 0 || f.Minutes != 0 || f.Seconds != 0 || f.Millis != 0 {
		sb.WriteByte('T')
		unit(f.Hours, 'H')
		unit(f.Minutes, 'M')
		if f.Seconds != 0 || f.Millis != 0 {
			sb.WriteString(formatSeconds(f.Seconds, f.Millis))
			sb.WriteByte('S')
		}
	}
	if sb.Len() == 1 {
		return "PT0S"
	}
	return sb.String()
}

func formatSeconds(seconds, millis int) string {
	if millis == 0 {
		return strconv.Itoa(seconds)
	}
	total := int64(seconds)*1000 + int64(millis)
	sign := ""
	if total < 0 {
		sign, total = "-", -total
	}
	return fmt.Sprintf("%s%d.%03d", sign, total/1000, total%1000)
}
