// Package codec converts typed field values into their wire representation.
//
// Every converter maps an empty input to the empty value of its output type,
// and re-encoding an already encoded value yields the same result.
package codec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for dates
const DateLayout = "2006-01-02"

// Decimal renders an optional decimal as a fixed-point string rounded
// half-up to places. Unset values render as "".
func Decimal(v decimal.NullDecimal, places int32) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.StringFixed(places)
}

// FormatDate renders the calendar date of t. The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date or an RFC 3339 date-time truncated to
// its calendar date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Date encodes a date or date-time value. Accepted inputs are time.Time,
// *time.Time and strings already in date or RFC 3339 form; anything else
// yields an *InvalidTypeError.
func Date(v interface{}) (string, error) {
	switch d := v.(type) {
	case nil:
		return "", nil
	case time.Time:
		return FormatDate(d), nil
	case *time.Time:
		if d == nil {
			return "", nil
		}
		return FormatDate(*d), nil
	case string:
		if d == "" {
			return "", nil
		}
		t, err := ParseDate(d)
		if err != nil {
			return "", NewInvalidTypeError("date", v)
		}
		return FormatDate(t), nil
	default:
		return "", NewInvalidTypeError("date", v)
	}
}

// String coerces a value to text. Empty values become "".
func String(v interface{}) string {
	if Empty(v) {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return fmt.Sprint(v)
	}
}

// Bool passes booleans through unchanged.
func Bool(v bool) bool {
	return v
}

// Int passes integers through unchanged.
func Int(v int) int {
	return v
}

// Value encodes an untyped extension value: dates become YYYY-MM-DD,
// decimals become 4-place fixed-point strings, everything else passes through.
func Value(v interface{}) (interface{}, error) {
	switch d := v.(type) {
	case time.Time, *time.Time:
		return Date(d)
	case decimal.Decimal:
		return d.StringFixed(4), nil
	case decimal.NullDecimal:
		return Decimal(d, 4), nil
	default:
		return v, nil
	}
}

// Empty reports whether a scalar value counts as "no value" on the wire:
// nil, "", false and numeric zero.
func Empty(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case int:
		return x == 0
	case int32:
		return x == 0
	case int64:
		return x == 0
	case float64:
		return x == 0
	case float32:
		return x == 0
	case decimal.NullDecimal:
		return !x.Valid
	case *time.Time:
		return x == nil || x.IsZero()
	case time.Time:
		return x.IsZero()
	default:
		return false
	}
}
