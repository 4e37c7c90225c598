package property

// Typed getters validate existence and type. An absent key or a key of a
// different type yields the type's zero default (0, 0.0, "", "#000000",
// false); use Value or TypeOf to tell the cases apart.

// GetInt returns the value of an INT property.
func (r *Registry) GetInt(key string) int32 {
	return r.get(key, TypeInt).Int()
}

// GetLong returns the value of a LONG property.
func (r *Registry) GetLong(key string) int64 {
	return r.get(key, TypeLong).Long()
}

// GetFloat returns the value of a FLOAT property.
func (r *Registry) GetFloat(key string) float32 {
	return r.get(key, TypeFloat).Float()
}

// GetDouble returns the value of a DOUBLE property.
func (r *Registry) GetDouble(key string) float64 {
	return r.get(key, TypeDouble).Double()
}

// GetString returns the value of a STRING property.
func (r *Registry) GetString(key string) string {
	return r.get(key, TypeString).Str()
}

// GetColor returns the value of a COLOR property.
func (r *Registry) GetColor(key string) string {
	return r.get(key, TypeColor).Str()
}

// GetBool returns the value of a BOOL property.
func (r *Registry) GetBool(key string) bool {
	return r.get(key, TypeBool).Bool()
}

// SetInt stores v if key is an INT property and v lies within its bounds.
func (r *Registry) SetInt(key string, v int32) error {
	return r.set(key, TypeInt, IntValue(v))
}

// SetLong stores v if key is a LONG property and v lies within its bounds.
func (r *Registry) SetLong(key string, v int64) error {
	return r.set(key, TypeLong, LongValue(v))
}

// SetFloat stores v if key is a FLOAT property and v lies within its bounds.
func (r *Registry) SetFloat(key string, v float32) error {
	return r.set(key, TypeFloat, FloatValue(v))
}

// SetDouble stores v if key is a DOUBLE property and v lies within its bounds.
func (r *Registry) SetDouble(key string, v float64) error {
	return r.set(key, TypeDouble, DoubleValue(v))
}

// SetString stores v if key is a STRING property and v is valid UTF-8.
func (r *Registry) SetString(key, v string) error {
	return r.set(key, TypeString, StringValue(v))
}

// SetColor stores v if key is a COLOR property and v matches #RRGGBB.
func (r *Registry) SetColor(key, v string) error {
	return r.set(key, TypeColor, ColorValue(v))
}

// SetBool stores v if key is a BOOL property.
func (r *Registry) SetBool(key string, v bool) error {
	return r.set(key, TypeBool, BoolValue(v))
}

// SetValue stores a tagged value; the tag must match the property type.
func (r *Registry) SetValue(key string, v Value) error {
	return r.set(key, v.typ, v)
}

// lookup returns the entry for key if it exists with type want.
func (r *Registry) lookup(key string, want Type) (*entry, error) {
	e, ok := r.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	if e.typ != want {
		return nil, ErrTypeMismatch
	}
	return e, nil
}

func (r *Registry) get(key string, want Type) Value {
	e, err := r.lookup(key, want)
	if err != nil {
		return zeroValue(want)
	}
	return e.value
}

func (r *Registry) set(key string, want Type, v Value) error {
	e, err := r.lookup(key, want)
	if err != nil {
		return err
	}
	if err := checkValue(e, v); err != nil {
		return err
	}
	e.value = v
	return nil
}
