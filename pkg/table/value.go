package table

import (
	"fmt"
	"strconv"
)

// Kind identifies the type of a cell value.
type Kind int

const (
	KindMissing Kind = iota
	KindText
	KindInt
	KindReal
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	default:
		return "unknown"
	}
}

// Value is a single typed cell. The zero Value is the missing marker, so a
// freshly allocated column is all-missing until populated.
type Value struct {
	kind Kind
	text string
	num  float64
	i    int64
}

// Missing returns the missing marker.
func Missing() Value {
	return Value{kind: KindMissing}
}

// Text returns a text value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Real returns a real (float) value.
func Real(f float64) Value {
	return Value{kind: KindReal, num: f}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is the missing marker.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// AsText returns the textual content. Only text values carry text; numeric
// values report false so callers cannot accidentally compare a number
// against a sentinel string.
func (v Value) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// AsFloat returns the value as a float64. Text values are parsed; malformed
// numeric text reports false (the caller decides whether that coerces to
// missing).
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindReal:
		return v.num, true
	case KindText:
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsInt returns the value as an int64 when it is an integer.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Equal reports whether two values have the same kind and content.
// Missing never equals missing for comparison purposes would surprise
// callers, so two missing markers compare equal here; domain transforms
// that need missing-aware semantics must check IsMissing first.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindMissing:
		return true
	case KindText:
		return v.text == o.text
	case KindInt:
		return v.i == o.i
	case KindReal:
		return v.num == o.num
	default:
		return false
	}
}

// String renders the value for display and CSV export. Missing renders as
// the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindMissing:
		return ""
	case KindText:
		return v.text
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	default:
		return fmt.Sprintf("invalid(%d)", int(v.kind))
	}
}
