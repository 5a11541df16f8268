package featurekit

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

// Kind discriminates the payload stored in a Value.
type Kind uint8

const (
	// KindNull is the zero Kind; a null Value carries no payload.
	KindNull Kind = iota
	KindString
	KindBytes
	KindBool
	KindInt64
	KindUint64
	KindFloat64
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat64:
		return "float64"
	default:
		return "invalid"
	}
}

// Value is a tagged scalar carried by a context Field. The zero Value is null.
//
// A bytes Value may alias a caller-owned buffer; use Clone before storing it
// anywhere that outlives the call site that produced it.
type Value struct {
	kind  Kind
	str   string
	bytes []byte
	num   uint64
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// BytesValue returns a bytes Value aliasing b.
func BytesValue(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value {
	var n uint64
	if b {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

// Int64Value returns a signed integer Value.
func Int64Value(n int64) Value { return Value{kind: KindInt64, num: uint64(n)} }

// Uint64Value returns an unsigned integer Value.
func Uint64Value(n uint64) Value { return Value{kind: KindUint64, num: n} }

// Float64Value returns a floating-point Value.
func Float64Value(f float64) Value {
	return Value{kind: KindFloat64, num: math.Float64bits(f)}
}

// NullValue returns the null Value.
func NullValue() Value { return Value{} }

// Kind reports which payload the value carries.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string payload, if the value is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsBytes returns the bytes payload, if the value is a byte slice. The
// returned slice is the stored one; it may alias caller-owned memory unless
// the value was cloned.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return v.bytes, true
}

// AsBool returns the boolean payload, if the value is a bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.num != 0, true
}

// AsInt64 returns the signed integer payload, if the value is an int64.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInt64 {
		return 0, false
	}
	return int64(v.num), true
}

// AsUint64 returns the unsigned integer payload, if the value is a uint64.
func (v Value) AsUint64() (uint64, bool) {
	if v.kind != KindUint64 {
		return 0, false
	}
	return v.num, true
}

// AsFloat64 returns the floating-point payload, if the value is a float64.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindFloat64 {
		return 0, false
	}
	return math.Float64frombits(v.num), true
}

// Clone returns a Value that owns its payload. Bytes are deep-copied so the
// result no longer aliases caller memory; every other kind is already owned
// and is returned as is. Clone is idempotent.
func (v Value) Clone() Value {
	if v.kind == KindBytes {
		v.bytes = slices.Clone(v.bytes)
	}
	return v
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindBytes:
		return slices.Equal(v.bytes, other.bytes)
	default:
		return v.num == other.num
	}
}

// String implements fmt.Stringer for debug output.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindBytes:
		return fmt.Sprintf("%v", v.bytes)
	case KindBool:
		return strconv.FormatBool(v.num != 0)
	case KindInt64:
		return strconv.FormatInt(int64(v.num), 10)
	case KindUint64:
		return strconv.FormatUint(v.num, 10)
	case KindFloat64:
		return strconv.FormatFloat(math.Float64frombits(v.num), 'g', -1, 64)
	default:
		return "null"
	}
}
