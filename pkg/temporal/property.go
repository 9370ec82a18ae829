package temporal

import "github.com/daviddao/chronology/pkg/field"

// Property is one field of a DateTime. It holds the date-time by value;
// every method returns a new DateTime and leaves the original alone.
type Property struct {
	dt    DateTime
	field field.DateTimeField
}

func (p Property) Field() field.DateTimeField { return p.field }
func (p Property) Name() string               { return p.field.Name() }
func (p Property) Get() int                   { return p.field.Get(p.dt.millis) }
func (p Property) Minimum() int               { return p.field.MinimumValueAt(p.dt.millis) }
func (p Property) Maximum() int               { return p.field.MaximumValueAt(p.dt.millis) }
func (p Property) IsLeap() bool               { return p.field.IsLeap(p.dt.millis) }
func (p Property) LeapAmount() int            { return p.field.LeapAmount(p.dt.millis) }

// Remainder is the millis past the floor of the field.
func (p Property) Remainder() (int64, error) { return p.field.Remainder(p.dt.millis) }

func (p Property) apply(op func(int64) (int64, error)) (DateTime, error) {
	ms, err := op(p.dt.millis)
	if err != nil {
		return DateTime{}, err
	}
	return p.dt.with(ms), nil
}

func (p Property) Set(value int) (DateTime, error) {
	return p.apply(func(m int64) (int64, error) { return p.field.Set(m, value) })
}

// Add carries into larger fields.
func (p Property) Add(amount int64) (DateTime, error) {
	return p.apply(func(m int64) (int64, error) { return p.field.Add(m, amount) })
}

// AddWrap wraps within the field's range without touching larger fields.
func (p Property) AddWrap(amount int) (DateTime, error) {
	return p.apply(func(m int64) (int64, error) { return p.field.AddWrapField(m, amount) })
}

func (p Property) WithMaximum() (DateTime, error) { return p.Set(p.Maximum()) }
func (p Property) WithMinimum() (DateTime, error) { return p.Set(p.Minimum()) }

func (p Property) RoundFloor() (DateTime, error)       { return p.apply(p.field.RoundFloor) }
func (p Property) RoundCeiling() (DateTime, error)     { return p.apply(p.field.RoundCeiling) }
func (p Property) RoundHalfFloor() (DateTime, error)   { return p.apply(p.field.RoundHalfFloor) }
func (p Property) RoundHalfCeiling() (DateTime, error) { return p.apply(p.field.RoundHalfCeiling) }
func (p Property) RoundHalfEven() (DateTime, error)    { return p.apply(p.field.RoundHalfEven) }

// Difference counts whole units of the field from o to p's date-time.
func (p Property) Difference(o DateTime) (int64, error) {
	return p.field.DifferenceInt64(p.dt.millis, o.millis)
}
