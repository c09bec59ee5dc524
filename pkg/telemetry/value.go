// Package telemetry defines the in-memory table model the reconciliation
// pipeline operates on: null-tolerant scalar values, rows keyed by column
// name, and tables with an explicit ordered column schema.
//
// Values are an explicit tagged type with result-style accessors. Field-level
// coercion failures resolve to the null value or a false ok flag; nothing in
// this package panics on malformed telemetry.
package telemetry

import (
	"strconv"
	"strings"

	"github.com/agentstation/utc"
)

// Kind identifies the underlying type of a Value.
type Kind uint8

// Value kinds.
const (
	// KindNull is the zero Value; absent and unparsable fields resolve to it.
	KindNull Kind = iota
	// KindString holds an opaque string field.
	KindString
	// KindNumber holds a float64 field.
	KindNumber
	// KindTime holds a normalized UTC instant.
	KindTime
)

// Value is a null-tolerant scalar cell. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	ts   utc.Time
}

// Null returns the null Value.
func Null() Value {
	return Value{}
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Time returns an instant Value.
func Time(t utc.Time) Value {
	return Value{kind: KindTime, ts: t}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Float returns the value as a float64. Strings that look numeric are
// coerced; anything else reports false. The coercion is local to the
// caller — the stored value is never rewritten.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Text returns the value rendered as a string and whether the value is
// non-null.
func (v Value) Text() (string, bool) {
	if v.kind == KindNull {
		return "", false
	}
	return v.String(), true
}

// Instant returns the value as a UTC instant. Only time-kind values
// report true; string timestamps must go through the normalizer first.
func (v Value) Instant() (utc.Time, bool) {
	if v.kind != KindTime {
		return utc.Time{}, false
	}
	return v.ts, true
}

// String renders the value for display. Null renders as the empty string,
// instants render at minute resolution.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		return v.ts.Format("2006-01-02 15:04")
	default:
		return ""
	}
}

// Equal reports whether two values are identical in kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindTime:
		return v.ts.Equal(other.ts)
	default:
		return true
	}
}
