package featurekit

import (
	"strings"
)

// Field is a single named value attached to a context at creation time.
type Field struct {
	Key   string
	Value Value
}

// Convenience constructors mirroring slog's attr helpers.

// String returns a string Field.
func String(key, value string) Field { return Field{Key: key, Value: StringValue(value)} }

// Bytes returns a bytes Field aliasing value.
func Bytes(key string, value []byte) Field { return Field{Key: key, Value: BytesValue(value)} }

// Bool returns a boolean Field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: BoolValue(value)} }

// Int64 returns a signed integer Field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: Int64Value(value)} }

// Int returns a signed integer Field.
func Int(key string, value int) Field { return Int64(key, int64(value)) }

// Uint64 returns an unsigned integer Field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: Uint64Value(value)} }

// Float64 returns a floating-point Field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: Float64Value(value)} }

// Null returns a null Field.
func Null(key string) Field { return Field{Key: key, Value: NullValue()} }

// Fields is an ordered list of fields captured at a context call site.
// It is constructed once and read-only thereafter. Keys are not required to
// be unique; lookups return the first occurrence.
type Fields []Field

// Get returns the value of the first field with the given key.
func (f Fields) Get(key string) (Value, bool) {
	for i := range f {
		if f[i].Key == key {
			return f[i].Value, true
		}
	}
	return Value{}, false
}

// Has reports whether a field with the given key exists.
func (f Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Clone returns a deep copy of the field list with every value detached from
// caller-owned memory. Use it when fields must outlive the call site, for
// example when an evaluator stores them in a context's extensions.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for i := range f {
		out[i] = Field{Key: f[i].Key, Value: f[i].Value.Clone()}
	}
	return out
}

// String implements fmt.Stringer for debug output.
func (f Fields) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i := range f {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f[i].Key)
		b.WriteString("=")
		b.WriteString(f[i].Value.String())
	}
	b.WriteByte('}')
	return b.String()
}
