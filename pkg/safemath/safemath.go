// Package safemath provides overflow-checked integer arithmetic.
//
// Every function returns a chronoerr Overflow error instead of silently
// wrapping. Field values are 32-bit quantities carried in a Go int, so the
// 32-bit helpers check against the int32 range rather than the platform int.
package safemath

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/daviddao/chronology/pkg/chronoerr"
)

// Add returns a + b.
func Add(a, b int64) (int64, error) {
	sum := a + b
	// If there is a sign change, but the two values have the same sign...
	if (a^sum) < 0 && (a^b) >= 0 {
		return 0, chronoerr.Overflowed("the calculation caused an overflow: %d + %d", a, b)
	}
	return sum, nil
}

// Sub returns a - b.
func Sub(a, b int64) (int64, error) {
	diff := a - b
	// If there is a sign change, but the two values have different signs...
	if (a^diff) < 0 && (a^b) < 0 {
		return 0, chronoerr.Overflowed("the calculation caused an overflow: %d - %d", a, b)
	}
	return diff, nil
}

// Mul returns a * b.
func Mul(a, b int64) (int64, error) {
	switch b {
	case -1:
		if a == math.MinInt64 {
			return 0, chronoerr.Overflowed("multiplication overflows a long: %d * %d", a, b)
		}
		return -a, nil
	case 0:
		return 0, nil
	case 1:
		return a, nil
	}
	total := a * b
	if total/b != a || (a == math.MinInt64 && b == -1) {
		return 0, chronoerr.Overflowed("multiplication overflows a long: %d * %d", a, b)
	}
	return total, nil
}

// Neg returns -a.
func Neg(a int64) (int64, error) {
	if a == math.MinInt64 {
		return 0, chronoerr.Overflowed("integer overflow negating %d", a)
	}
	return -a, nil
}

// ToInt32 narrows v to the 32-bit field-value range.
func ToInt32[T constraints.Integer](v T) (int, error) {
	if int64(v) < math.MinInt32 || int64(v) > math.MaxInt32 {
		return 0, chronoerr.Overflowed("value cannot fit in an int: %d", int64(v))
	}
	return int(v), nil
}

// Add32 returns a + b checked against the 32-bit range.
func Add32(a, b int) (int, error) {
	sum, err := Add(int64(a), int64(b))
	if err != nil {
		return 0, err
	}
	return ToInt32(sum)
}

// Mul32 returns a * b checked against the 32-bit range.
func Mul32(a, b int) (int, error) {
	product, err := Mul(int64(a), int64(b))
	if err != nil {
		return 0, err
	}
	return ToInt32(product)
}

// FloorDiv returns the quotient rounded towards negative infinity.
func FloorDiv[T constraints.Signed](a, b T) T {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod returns the remainder matching FloorDiv; it has the sign of b.
func FloorMod[T constraints.Signed](a, b T) T {
	return a - FloorDiv(a, b)*b
}
