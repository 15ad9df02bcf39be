package frame

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IncomparableError is returned by Compare when no ordering exists between
// the two operands.
type IncomparableError struct {
	X, Y Value
}

func (e *IncomparableError) Error() string {
	return fmt.Sprintf("incomparable values %s and %s", StringOf(e.X), StringOf(e.Y))
}

// Comparable reports whether values of v's kind admit an ordering at all.
//
// Structured kinds, localized text and typed data are never comparable.
func Comparable(v Value) bool {
	switch v.(type) {
	case Nil, Bit, Integral, Floating, Integer, Decimal, String, IRI,
		Instant, Date, TimeOfDay, DateTime, Duration, Period:
		return v != nil
	}
	return false
}

// ComparablePair reports whether x and y can be ordered against each other.
func ComparablePair(x, y Value) bool {
	_, ok := tryCompare(x, y)
	return ok
}

// Compare orders x against y, returning a negative, zero or positive result.
//
// It fails with an *IncomparableError when the operand kinds admit no
// ordering; callers that can tolerate partial orders should use
// ComparablePair first.
func Compare(x, y Value) (int, error) {
	if c, ok := tryCompare(x, y); ok {
		return c, nil
	}
	return 0, &IncomparableError{X: x, Y: y}
}

// tryCompare dispatches on the concrete kind of x, then attempts to promote
// y into the same ordering domain.
func tryCompare(x, y Value) (int, bool) {
	switch x := x.(type) {
	case Nil:
		if _, ok := y.(Nil); ok {
			return 0, true
		}
	case Bit:
		if y, ok := y.(Bit); ok {
			return boolCompare(bool(x), bool(y)), true
		}
	case Integral, Floating, Integer, Decimal:
		return numericCompare(x, y)
	case String:
		if y, ok := y.(String); ok {
			return strings.Compare(string(x), string(y)), true
		}
	case IRI:
		if y, ok := y.(IRI); ok {
			return strings.Compare(string(x), string(y)), true
		}
	case Instant:
		if y, ok := y.(Instant); ok {
			return timeCompare(time.Time(x), time.Time(y)), true
		}
	case Date:
		if y, ok := y.(Date); ok {
			return dateCompare(x, y), true
		}
	case TimeOfDay:
		if y, ok := y.(TimeOfDay); ok {
			return clockCompare(x, y), true
		}
	case DateTime:
		if y, ok := y.(DateTime); ok {
			if c := dateCompare(x.Date, y.Date); c != 0 {
				return c, true
			}
			return clockCompare(x.Time, y.Time), true
		}
	case Duration, Period:
		return amountCompare(x, y)
	}
	return 0, false
}

func boolCompare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	}
	return 1
}

func timeCompare(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func dateCompare(a, b Date) int {
	switch {
	case a.Year != b.Year:
		return intCompare(a.Year, b.Year)
	case a.Month != b.Month:
		return intCompare(int(a.Month), int(b.Month))
	}
	return intCompare(a.Day, b.Day)
}

func clockCompare(a, b TimeOfDay) int {
	switch {
	case a.Hour != b.Hour:
		return intCompare(a.Hour, b.Hour)
	case a.Min != b.Min:
		return intCompare(a.Min, b.Min)
	case a.Sec != b.Sec:
		return intCompare(a.Sec, b.Sec)
	}
	return intCompare(a.Nsec, b.Nsec)
}

func intCompare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// numericCompare promotes both operands to the widest common representation.
// Mixed-kind comparisons go through exact decimal conversion, never through
// a lossy cast.
func numericCompare(x, y Value) (int, bool) {
	if a, ok := x.(Integral); ok {
		if b, ok := y.(Integral); ok {
			return intCompare64(int64(a), int64(b)), true
		}
	}
	if a, ok := x.(Floating); ok {
		if b, ok := y.(Floating); ok {
			if !finite(float64(a)) || !finite(float64(b)) {
				return 0, false
			}
			return floatCompare(float64(a), float64(b)), true
		}
	}
	a, ok := toDecimal(x)
	if !ok {
		return 0, false
	}
	b, ok := toDecimal(y)
	if !ok {
		return 0, false
	}
	return a.Cmp(b), true
}

func intCompare64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func floatCompare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func toDecimal(v Value) (decimal.Decimal, bool) {
	switch v := v.(type) {
	case Integral:
		return decimal.NewFromInt(int64(v)), true
	case Floating:
		if !finite(float64(v)) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(float64(v)), true
	case Integer:
		if v.Int == nil {
			return decimal.Decimal{}, true
		}
		return decimal.NewFromBigInt(v.Int, 0), true
	case Decimal:
		return decimal.Decimal(v), true
	}
	return decimal.Decimal{}, false
}

// amountEpoch anchors calendar-based amounts for comparison against exact ones.
var amountEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// amountCompare orders temporal amounts by anchoring both at a fixed epoch
// date and comparing the resulting instants.
func amountCompare(x, y Value) (int, bool) {
	a, ok := anchor(x)
	if !ok {
		return 0, false
	}
	b, ok := anchor(y)
	if !ok {
		return 0, false
	}
	return timeCompare(a, b), true
}

func anchor(v Value) (time.Time, bool) {
	switch v := v.(type) {
	case Duration:
		return amountEpoch.Add(time.Duration(v)), true
	case Period:
		return amountEpoch.AddDate(v.Years, v.Months, v.Days), true
	}
	return time.Time{}, false
}
