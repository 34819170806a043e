// Package settings loads a technote.toml document into a typed settings
// tree. The tree is a closed variant type so downstream consumers can
// match expected shapes exhaustively and report precise type mismatches
// instead of working against open interface{} values.
package settings

import "time"

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBool
	KindDatetime
	KindArray
	KindTable
)

// String returns the kind name used in type-mismatch messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindDatetime:
		return "datetime"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	default:
		return "invalid"
	}
}

// Value is one node of the settings tree. Tables are unordered; arrays
// preserve document order, which is significant for author and
// contributor lists.
type Value struct {
	kind     Kind
	str      string
	integer  int64
	float    float64
	boolean  bool
	datetime time.Time
	dateOnly bool
	array    []Value
	table    map[string]Value
}

// Kind reports the variant held by the value.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, bool) {
	return v.integer, v.kind == KindInteger
}

// AsFloat returns the float payload.
func (v Value) AsFloat() (float64, bool) {
	return v.float, v.kind == KindFloat
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsTime returns the datetime payload. Bare calendar dates parse to
// midnight UTC; IsDateOnly distinguishes them from full datetimes.
func (v Value) AsTime() (time.Time, bool) {
	return v.datetime, v.kind == KindDatetime
}

// IsDateOnly reports whether a datetime value was written as a bare
// calendar date in the source document.
func (v Value) IsDateOnly() bool { return v.kind == KindDatetime && v.dateOnly }

// AsArray returns the array elements in document order.
func (v Value) AsArray() ([]Value, bool) {
	return v.array, v.kind == KindArray
}

// AsTable returns the table entries.
func (v Value) AsTable() (map[string]Value, bool) {
	return v.table, v.kind == KindTable
}

// Get looks up a key in a table value. The second return is false when
// the value is not a table or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindTable {
		return Value{}, false
	}
	child, ok := v.table[key]
	return child, ok
}

// Has reports whether a table value contains the key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}
