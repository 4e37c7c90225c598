package property

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Serialize renders every current value as a flat JSON object in index order.
// Bounds, defaults and type tags are not included.
func (r *Registry) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", key, err)
		}
		v, err := r.entries[key].value.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding value of %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SerializeTo writes the serialized document into dst and returns the number
// of bytes written. Returns ErrBufferTooSmall, writing nothing, when the
// document is longer than len(dst).
func (r *Registry) SerializeTo(dst []byte) (int, error) {
	doc, err := r.Serialize()
	if err != nil {
		return 0, err
	}
	if len(doc) > len(dst) {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, len(doc), len(dst))
	}
	return copy(dst, doc), nil
}

// Deserialize applies a JSON object produced by Serialize (or any compatible
// source).
//
// It is registry-driven: every registered key is looked up in the document.
// A key that is missing, carries the wrong JSON type, or fails validation
// keeps its current value and is reported in the returned *ApplyError; every
// other property is still applied. There is no rollback.
//
// Returns an error wrapping ErrParse, touching nothing, if data is not a
// JSON object.
func (r *Registry) Deserialize(data []byte) error {
	doc, err := parseDocument(data)
	if err != nil {
		return err
	}

	res := applyResult{op: "deserialize"}
	for _, key := range r.keys {
		raw, ok := doc[key]
		if !ok {
			res.fail(key, ErrMissingKey)
			continue
		}
		if err := r.applyRaw(key, raw); err != nil {
			res.fail(key, err)
		}
	}
	return res.err()
}

// Patch applies only the members present in a JSON object, leaving every
// other property untouched. Members naming unregistered keys fail with
// ErrNotFound. Like Deserialize, failures do not stop the remaining members.
func (r *Registry) Patch(data []byte) error {
	doc, err := parseDocument(data)
	if err != nil {
		return err
	}

	res := applyResult{op: "patch"}
	for _, key := range r.keys {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		if err := r.applyRaw(key, raw); err != nil {
			res.fail(key, err)
		}
	}

	var unknown []string
	for key := range doc {
		if !r.Contains(key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		res.fail(key, ErrNotFound)
	}
	return res.err()
}

// parseDocument decodes data as a JSON object, keeping member values raw.
func parseDocument(data []byte) (map[string]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrParse)
	}
	return doc, nil
}

// applyRaw decodes one document member for key and stores it through the
// typed setter path.
func (r *Registry) applyRaw(key string, raw json.RawMessage) error {
	t := r.TypeOf(key)
	v, err := decodeValue(raw, t)
	if err != nil {
		return err
	}
	return r.set(key, t, v)
}

// decodeValue converts a raw JSON member to a Value of type t.
// A JSON type that does not fit t yields ErrTypeMismatch. Numbers are
// converted with explicit range checks: integer types take only integral
// literals that fit the declared width.
func decodeValue(raw json.RawMessage, t Type) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	switch t {
	case TypeInt, TypeLong:
		n, ok := x.(json.Number)
		if !ok {
			return Value{}, ErrTypeMismatch
		}
		bits := 64
		if t == TypeInt {
			bits = 32
		}
		i, err := strconv.ParseInt(n.String(), 10, bits)
		if err != nil {
			return Value{}, ErrTypeMismatch
		}
		if t == TypeInt {
			return IntValue(int32(i)), nil
		}
		return LongValue(i), nil

	case TypeFloat, TypeDouble:
		n, ok := x.(json.Number)
		if !ok {
			return Value{}, ErrTypeMismatch
		}
		bits := 64
		if t == TypeFloat {
			bits = 32
		}
		f, err := strconv.ParseFloat(n.String(), bits)
		if err != nil {
			return Value{}, ErrTypeMismatch
		}
		if t == TypeFloat {
			return FloatValue(float32(f)), nil
		}
		return DoubleValue(f), nil

	case TypeString, TypeColor:
		s, ok := x.(string)
		if !ok {
			return Value{}, ErrTypeMismatch
		}
		if t == TypeColor {
			return ColorValue(s), nil
		}
		return StringValue(s), nil

	case TypeBool:
		b, ok := x.(bool)
		if !ok {
			return Value{}, ErrTypeMismatch
		}
		return BoolValue(b), nil

	default:
		return Value{}, ErrInvalidType
	}
}
