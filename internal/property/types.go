package property

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Type identifies the declared type of a property. Values are the names
// used in schema files.
// TypeNone is returned by lookups for keys or indices that do not exist.
type Type string

// Property types.
const (
	TypeNone   Type = ""
	TypeInt    Type = "int"
	TypeLong   Type = "long"
	TypeFloat  Type = "float"
	TypeDouble Type = "double"
	TypeString Type = "string"
	TypeColor  Type = "color"
	TypeBool   Type = "bool"
)

// String returns the schema name of the type, or "none" for TypeNone.
func (t Type) String() string {
	if t == TypeNone {
		return "none"
	}
	return string(t)
}

// IsNumeric reports whether the type carries min/max bounds.
func (t Type) IsNumeric() bool {
	switch t {
	case TypeInt, TypeLong, TypeFloat, TypeDouble:
		return true
	default:
		return false
	}
}

// IsValid reports whether t is one of the seven storable types.
func (t Type) IsValid() bool {
	switch t {
	case TypeInt, TypeLong, TypeFloat, TypeDouble, TypeString, TypeColor, TypeBool:
		return true
	default:
		return false
	}
}

// ParseType converts a schema name ("int", "long", ...) to a Type.
// Matching is case-insensitive. Returns ErrInvalidType for unknown names.
func ParseType(name string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	if !t.IsValid() {
		return TypeNone, ErrInvalidType
	}
	return t, nil
}

// AllTypes returns every storable type in declaration order.
func AllTypes() []Type {
	return []Type{TypeInt, TypeLong, TypeFloat, TypeDouble, TypeString, TypeColor, TypeBool}
}

// Value is a tagged variant holding one property value.
//
// Integer types share int64 storage and float types share float64 storage;
// the tag keeps each declared width distinct, so a FLOAT value is always
// exactly representable as float32.
type Value struct {
	typ Type
	i   int64
	f   float64
	s   string
	b   bool
}

// IntValue returns an INT value.
func IntValue(v int32) Value { return Value{typ: TypeInt, i: int64(v)} }

// LongValue returns a LONG value.
func LongValue(v int64) Value { return Value{typ: TypeLong, i: v} }

// FloatValue returns a FLOAT value.
func FloatValue(v float32) Value { return Value{typ: TypeFloat, f: float64(v)} }

// DoubleValue returns a DOUBLE value.
func DoubleValue(v float64) Value { return Value{typ: TypeDouble, f: v} }

// StringValue returns a STRING value.
func StringValue(v string) Value { return Value{typ: TypeString, s: v} }

// ColorValue returns a COLOR value. The format is not checked here.
func ColorValue(v string) Value { return Value{typ: TypeColor, s: v} }

// BoolValue returns a BOOL value.
func BoolValue(v bool) Value { return Value{typ: TypeBool, b: v} }

// Type returns the variant tag. The zero Value has TypeNone.
func (v Value) Type() Type { return v.typ }

// Int returns the value as int32. Only meaningful for TypeInt.
func (v Value) Int() int32 { return int32(v.i) } //nolint:gosec // tag guarantees int32 range

// Long returns the value as int64. Only meaningful for TypeLong.
func (v Value) Long() int64 { return v.i }

// Float returns the value as float32. Only meaningful for TypeFloat.
func (v Value) Float() float32 { return float32(v.f) }

// Double returns the value as float64. Only meaningful for TypeDouble.
func (v Value) Double() float64 { return v.f }

// Str returns the text of a STRING or COLOR value.
func (v Value) Str() string { return v.s }

// Bool returns the value as bool. Only meaningful for TypeBool.
func (v Value) Bool() bool { return v.b }

// Float64 converts a numeric value to float64 for telemetry.
// Returns false for non-numeric values.
func (v Value) Float64() (float64, bool) {
	switch v.typ {
	case TypeInt, TypeLong:
		return float64(v.i), true
	case TypeFloat, TypeDouble:
		return v.f, true
	default:
		return 0, false
	}
}

// Equal reports whether two values have the same tag and payload.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeInt, TypeLong:
		return v.i == o.i
	case TypeFloat, TypeDouble:
		return v.f == o.f
	case TypeString, TypeColor:
		return v.s == o.s
	case TypeBool:
		return v.b == o.b
	default:
		return true
	}
}

// String renders the value the way it appears in a serialized document.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}

// MarshalJSON encodes the value in its native JSON representation.
// FLOAT values use 32-bit formatting so they survive a round trip unchanged.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case TypeInt, TypeLong:
		return strconv.AppendInt(nil, v.i, 10), nil
	case TypeFloat:
		return json.Marshal(float32(v.f))
	case TypeDouble:
		return json.Marshal(v.f)
	case TypeString, TypeColor:
		return json.Marshal(v.s)
	case TypeBool:
		return strconv.AppendBool(nil, v.b), nil
	default:
		return []byte("null"), nil
	}
}

// zeroValue returns the zero-equivalent default for a type.
func zeroValue(t Type) Value {
	switch t {
	case TypeInt:
		return IntValue(0)
	case TypeLong:
		return LongValue(0)
	case TypeFloat:
		return FloatValue(0)
	case TypeDouble:
		return DoubleValue(0)
	case TypeString:
		return StringValue("")
	case TypeColor:
		return ColorValue(defaultColor)
	case TypeBool:
		return BoolValue(false)
	default:
		return Value{}
	}
}

// fullRange returns the representable range of a numeric type.
func fullRange(t Type) (minV, maxV Value) {
	switch t {
	case TypeInt:
		return IntValue(math.MinInt32), IntValue(math.MaxInt32)
	case TypeLong:
		return LongValue(math.MinInt64), LongValue(math.MaxInt64)
	case TypeFloat:
		return FloatValue(-math.MaxFloat32), FloatValue(math.MaxFloat32)
	case TypeDouble:
		return DoubleValue(-math.MaxFloat64), DoubleValue(math.MaxFloat64)
	default:
		return Value{}, Value{}
	}
}

// Property is a read-only copy of one registry entry.
// Min and Max are zero Values for non-numeric types.
type Property struct {
	Key     string
	Index   int
	Type    Type
	Value   Value
	Default Value
	Min     Value
	Max     Value
}
