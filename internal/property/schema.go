package property

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition describes one property in a schema file.
//
// Default, Min and Max are optional. For numeric types a missing bound keeps
// the full representable range, and a missing default falls back to Min when
// given, otherwise to zero. Min and Max are rejected for non-numeric types.
type Definition struct {
	Key     string `yaml:"key"`
	Type    string `yaml:"type"`
	Default any    `yaml:"default,omitempty"`
	Min     any    `yaml:"min,omitempty"`
	Max     any    `yaml:"max,omitempty"`
}

// Schema is an ordered list of property definitions.
// Apply creates the properties in list order, which becomes index order.
type Schema struct {
	Properties []Definition `yaml:"properties"`
}

// LoadSchema reads and parses a schema file.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-supplied configuration
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return ParseSchema(data)
}

// ParseSchema parses YAML schema data.
//
// Example:
//
//	properties:
//	  - key: age
//	    type: int
//	    default: 5
//	    min: 0
//	    max: 10
//	  - key: background
//	    type: color
//	    default: "#123ABC"
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	for i, d := range s.Properties {
		if d.Key == "" {
			return nil, fmt.Errorf("%w: definition %d has no key", ErrInvalidSchema, i)
		}
		if _, err := ParseType(d.Type); err != nil {
			return nil, fmt.Errorf("%w: %s: unknown type %q", ErrInvalidSchema, d.Key, d.Type)
		}
	}
	return &s, nil
}

// Apply initialises every definition in r, stopping at the first failure.
// Properties created before the failing definition stay registered.
func (s *Schema) Apply(r *Registry) error {
	for _, d := range s.Properties {
		if err := d.apply(r); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidSchema, d.Key, err)
		}
	}
	return nil
}

// Keys returns the defined keys in schema order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.Properties))
	for i, d := range s.Properties {
		keys[i] = d.Key
	}
	return keys
}

func (d Definition) apply(r *Registry) error {
	t, err := ParseType(d.Type)
	if err != nil {
		return err
	}

	if !t.IsNumeric() {
		if d.Min != nil || d.Max != nil {
			return fmt.Errorf("bounds given for %s property", t)
		}
		def := zeroValue(t)
		if d.Default != nil {
			if def, err = convertScalar(d.Default, t); err != nil {
				return fmt.Errorf("default: %w", err)
			}
		}
		if t == TypeColor {
			return r.InitColor(d.Key, def.s)
		}
		return r.initPlain(d.Key, def)
	}

	lo, hi := fullRange(t)
	if d.Min != nil {
		if lo, err = convertScalar(d.Min, t); err != nil {
			return fmt.Errorf("min: %w", err)
		}
	}
	if d.Max != nil {
		if hi, err = convertScalar(d.Max, t); err != nil {
			return fmt.Errorf("max: %w", err)
		}
	}

	def := zeroValue(t)
	switch {
	case d.Default != nil:
		if def, err = convertScalar(d.Default, t); err != nil {
			return fmt.Errorf("default: %w", err)
		}
	case d.Min != nil:
		def = lo
	}
	return r.initNumeric(d.Key, def, lo, hi)
}

// convertScalar converts a decoded YAML scalar to a Value of type t.
// Integers must fit the declared width and floats must be finite.
func convertScalar(x any, t Type) (Value, error) {
	switch t {
	case TypeInt:
		n, err := toInt64(x)
		if err != nil {
			return Value{}, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return Value{}, fmt.Errorf("%d overflows int", n)
		}
		return IntValue(int32(n)), nil

	case TypeLong:
		n, err := toInt64(x)
		if err != nil {
			return Value{}, err
		}
		return LongValue(n), nil

	case TypeFloat:
		f, err := toFloat64(x)
		if err != nil {
			return Value{}, err
		}
		if math.Abs(f) > math.MaxFloat32 {
			return Value{}, fmt.Errorf("%g overflows float", f)
		}
		return FloatValue(float32(f)), nil

	case TypeDouble:
		f, err := toFloat64(x)
		if err != nil {
			return Value{}, err
		}
		return DoubleValue(f), nil

	case TypeString, TypeColor:
		s, ok := x.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected string, got %T", x)
		}
		if t == TypeColor {
			return ColorValue(s), nil
		}
		return StringValue(s), nil

	case TypeBool:
		b, ok := x.(bool)
		if !ok {
			return Value{}, fmt.Errorf("expected bool, got %T", x)
		}
		return BoolValue(b), nil

	default:
		return Value{}, ErrInvalidType
	}
}

func toInt64(x any) (int64, error) {
	switch n := x.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows long", n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", x)
	}
}

func toFloat64(x any) (float64, error) {
	var f float64
	switch n := x.(type) {
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float64:
		f = n
	default:
		return 0, fmt.Errorf("expected number, got %T", x)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%g is not finite", f)
	}
	return f, nil
}
