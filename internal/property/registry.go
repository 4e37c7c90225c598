package property

import "unicode/utf8"

// entry is the single record kept per property.
// min and max are zero Values for non-numeric types.
type entry struct {
	typ   Type
	value Value
	def   Value
	min   Value
	max   Value
}

// Registry is an ordered, typed key/value store with per-key bounds and
// defaults.
//
// Index order equals insertion order; removing a key shifts every later key
// down by one. Properties are only ever created by an Init call.
//
// A Registry is not safe for concurrent use. Callers sharing one instance
// across goroutines must guard it with a single mutex (see package propsync).
type Registry struct {
	keys    []string
	entries map[string]*entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
	}
}

// =============================================================================
// Initialisation
// =============================================================================

// Init creates a property of the given type with its zero-equivalent
// default: 0, 0.0, "", "#000000" or false. Numeric types get full-range bounds.
func (r *Registry) Init(key string, t Type) error {
	switch t {
	case TypeInt:
		return r.InitInt(key, 0)
	case TypeLong:
		return r.InitLong(key, 0)
	case TypeFloat:
		return r.InitFloat(key, 0)
	case TypeDouble:
		return r.InitDouble(key, 0)
	case TypeString:
		return r.InitString(key, "")
	case TypeColor:
		return r.InitColor(key, defaultColor)
	case TypeBool:
		return r.InitBool(key, false)
	default:
		return ErrInvalidType
	}
}

// InitInt creates an INT property with full int32 bounds.
func (r *Registry) InitInt(key string, def int32) error {
	lo, hi := fullRange(TypeInt)
	return r.initNumeric(key, IntValue(def), lo, hi)
}

// InitIntRange creates an INT property whose default equals min.
func (r *Registry) InitIntRange(key string, minV, maxV int32) error {
	return r.initNumeric(key, IntValue(minV), IntValue(minV), IntValue(maxV))
}

// InitIntBounded creates an INT property with an explicit default and bounds.
func (r *Registry) InitIntBounded(key string, def, minV, maxV int32) error {
	return r.initNumeric(key, IntValue(def), IntValue(minV), IntValue(maxV))
}

// InitLong creates a LONG property with full int64 bounds.
func (r *Registry) InitLong(key string, def int64) error {
	lo, hi := fullRange(TypeLong)
	return r.initNumeric(key, LongValue(def), lo, hi)
}

// InitLongRange creates a LONG property whose default equals min.
func (r *Registry) InitLongRange(key string, minV, maxV int64) error {
	return r.initNumeric(key, LongValue(minV), LongValue(minV), LongValue(maxV))
}

// InitLongBounded creates a LONG property with an explicit default and bounds.
func (r *Registry) InitLongBounded(key string, def, minV, maxV int64) error {
	return r.initNumeric(key, LongValue(def), LongValue(minV), LongValue(maxV))
}

// InitFloat creates a FLOAT property bounded by ±math.MaxFloat32.
func (r *Registry) InitFloat(key string, def float32) error {
	lo, hi := fullRange(TypeFloat)
	return r.initNumeric(key, FloatValue(def), lo, hi)
}

// InitFloatRange creates a FLOAT property whose default equals min.
func (r *Registry) InitFloatRange(key string, minV, maxV float32) error {
	return r.initNumeric(key, FloatValue(minV), FloatValue(minV), FloatValue(maxV))
}

// InitFloatBounded creates a FLOAT property with an explicit default and bounds.
func (r *Registry) InitFloatBounded(key string, def, minV, maxV float32) error {
	return r.initNumeric(key, FloatValue(def), FloatValue(minV), FloatValue(maxV))
}

// InitDouble creates a DOUBLE property bounded by ±math.MaxFloat64.
func (r *Registry) InitDouble(key string, def float64) error {
	lo, hi := fullRange(TypeDouble)
	return r.initNumeric(key, DoubleValue(def), lo, hi)
}

// InitDoubleRange creates a DOUBLE property whose default equals min.
func (r *Registry) InitDoubleRange(key string, minV, maxV float64) error {
	return r.initNumeric(key, DoubleValue(minV), DoubleValue(minV), DoubleValue(maxV))
}

// InitDoubleBounded creates a DOUBLE property with an explicit default and bounds.
func (r *Registry) InitDoubleBounded(key string, def, minV, maxV float64) error {
	return r.initNumeric(key, DoubleValue(def), DoubleValue(minV), DoubleValue(maxV))
}

// InitString creates a STRING property. The default must be valid UTF-8.
func (r *Registry) InitString(key, def string) error {
	if err := r.checkNewKey(key); err != nil {
		return err
	}
	if !utf8.ValidString(def) {
		return ErrInvalidString
	}
	return r.initPlain(key, StringValue(def))
}

// InitColor creates a COLOR property. The default must match #RRGGBB.
func (r *Registry) InitColor(key, def string) error {
	if err := r.checkNewKey(key); err != nil {
		return err
	}
	if !IsColor(def) {
		return ErrInvalidColor
	}
	return r.initPlain(key, ColorValue(def))
}

// InitBool creates a BOOL property. Fails only on a duplicate key.
func (r *Registry) InitBool(key string, def bool) error {
	return r.initPlain(key, BoolValue(def))
}

func (r *Registry) checkNewKey(key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	if r.Contains(key) {
		return ErrDuplicateKey
	}
	return nil
}

func (r *Registry) initNumeric(key string, def, minV, maxV Value) error {
	if err := r.checkNewKey(key); err != nil {
		return err
	}
	if !validBounds(minV, maxV) || !inRange(def, minV, maxV) {
		return ErrInvalidRange
	}
	r.add(key, &entry{typ: def.typ, value: def, def: def, min: minV, max: maxV})
	return nil
}

func (r *Registry) initPlain(key string, def Value) error {
	if err := r.checkNewKey(key); err != nil {
		return err
	}
	r.add(key, &entry{typ: def.typ, value: def, def: def})
	return nil
}

func (r *Registry) add(key string, e *entry) {
	r.keys = append(r.keys, key)
	r.entries[key] = e
}

// =============================================================================
// Introspection
// =============================================================================

// Size returns the number of registered properties.
func (r *Registry) Size() int {
	return len(r.keys)
}

// Contains reports whether key is registered.
func (r *Registry) Contains(key string) bool {
	_, ok := r.entries[key]
	return ok
}

// KeyOf returns the key at index i, or "" when i is out of range.
func (r *Registry) KeyOf(i int) string {
	if i < 0 || i >= len(r.keys) {
		return ""
	}
	return r.keys[i]
}

// IndexOf returns the index of key, or -1 when it is not registered.
func (r *Registry) IndexOf(key string) int {
	if !r.Contains(key) {
		return -1
	}
	for i, k := range r.keys {
		if k == key {
			return i
		}
	}
	return -1
}

// TypeOf returns the type of key, or TypeNone when it is not registered.
func (r *Registry) TypeOf(key string) Type {
	if e, ok := r.entries[key]; ok {
		return e.typ
	}
	return TypeNone
}

// TypeAt returns the type of the property at index i, or TypeNone.
func (r *Registry) TypeAt(i int) Type {
	return r.TypeOf(r.KeyOf(i))
}

// Keys returns a copy of the keys in index order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Value returns the current value of key as a tagged variant.
func (r *Registry) Value(key string) (Value, bool) {
	e, ok := r.entries[key]
	if !ok {
		return Value{}, false
	}
	return e.value, true
}

// Property returns a copy of the entry for key, including its metadata.
func (r *Registry) Property(key string) (Property, bool) {
	e, ok := r.entries[key]
	if !ok {
		return Property{}, false
	}
	return Property{
		Key:     key,
		Index:   r.IndexOf(key),
		Type:    e.typ,
		Value:   e.value,
		Default: e.def,
		Min:     e.min,
		Max:     e.max,
	}, true
}

// Properties returns copies of every entry in index order.
func (r *Registry) Properties() []Property {
	props := make([]Property, 0, len(r.keys))
	for i, key := range r.keys {
		e := r.entries[key]
		props = append(props, Property{
			Key:     key,
			Index:   i,
			Type:    e.typ,
			Value:   e.value,
			Default: e.def,
			Min:     e.min,
			Max:     e.max,
		})
	}
	return props
}

// =============================================================================
// Removal
// =============================================================================

// Remove deletes key and its metadata. Later indices shift down by one.
func (r *Registry) Remove(key string) error {
	return r.RemoveAt(r.IndexOf(key))
}

// RemoveAt deletes the property at index i.
func (r *Registry) RemoveAt(i int) error {
	if i < 0 || i >= len(r.keys) {
		return ErrNotFound
	}
	delete(r.entries, r.keys[i])
	r.keys = append(r.keys[:i], r.keys[i+1:]...)
	return nil
}

// Clear removes every property.
func (r *Registry) Clear() {
	r.keys = nil
	r.entries = make(map[string]*entry)
}

// =============================================================================
// Reset
// =============================================================================

// Reset sets the value of key back to its stored default.
//
// The default goes through the same validation as a typed setter, so a
// default that drifted outside later-narrowed bounds makes Reset fail with
// ErrInvalidRange and leaves the value unchanged.
func (r *Registry) Reset(key string) error {
	e, ok := r.entries[key]
	if !ok {
		return ErrNotFound
	}
	return r.set(key, e.typ, e.def)
}

// ResetAt resets the property at index i.
func (r *Registry) ResetAt(i int) error {
	key := r.KeyOf(i)
	if key == "" {
		return ErrNotFound
	}
	return r.Reset(key)
}

// ResetAll resets every property, continuing past failures.
// Returns nil only if every reset succeeded; otherwise an *ApplyError
// lists the keys that kept their current value.
func (r *Registry) ResetAll() error {
	res := applyResult{op: "reset"}
	for _, key := range r.keys {
		if err := r.Reset(key); err != nil {
			res.fail(key, err)
		}
	}
	return res.err()
}
