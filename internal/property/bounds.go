package property

// Bound getters return the full representable range of the type when the key
// is absent or holds another type. Bound setters never re-validate the current
// value or default; Reset reports a default left outside narrowed bounds.

// GetIntMin returns the lower bound of an INT property.
func (r *Registry) GetIntMin(key string) int32 { return r.minOf(key, TypeInt).Int() }

// GetIntMax returns the upper bound of an INT property.
func (r *Registry) GetIntMax(key string) int32 { return r.maxOf(key, TypeInt).Int() }

// GetLongMin returns the lower bound of a LONG property.
func (r *Registry) GetLongMin(key string) int64 { return r.minOf(key, TypeLong).Long() }

// GetLongMax returns the upper bound of a LONG property.
func (r *Registry) GetLongMax(key string) int64 { return r.maxOf(key, TypeLong).Long() }

// GetFloatMin returns the lower bound of a FLOAT property.
func (r *Registry) GetFloatMin(key string) float32 { return r.minOf(key, TypeFloat).Float() }

// GetFloatMax returns the upper bound of a FLOAT property.
func (r *Registry) GetFloatMax(key string) float32 { return r.maxOf(key, TypeFloat).Float() }

// GetDoubleMin returns the lower bound of a DOUBLE property.
func (r *Registry) GetDoubleMin(key string) float64 { return r.minOf(key, TypeDouble).Double() }

// GetDoubleMax returns the upper bound of a DOUBLE property.
func (r *Registry) GetDoubleMax(key string) float64 { return r.maxOf(key, TypeDouble).Double() }

// SetIntBounds replaces both bounds of an INT property.
func (r *Registry) SetIntBounds(key string, minV, maxV int32) error {
	return r.setBounds(key, IntValue(minV), IntValue(maxV))
}

// SetIntMin replaces the lower bound of an INT property.
func (r *Registry) SetIntMin(key string, minV int32) error {
	return r.setMin(key, IntValue(minV))
}

// SetIntMax replaces the upper bound of an INT property.
func (r *Registry) SetIntMax(key string, maxV int32) error {
	return r.setMax(key, IntValue(maxV))
}

// SetLongBounds replaces both bounds of a LONG property.
func (r *Registry) SetLongBounds(key string, minV, maxV int64) error {
	return r.setBounds(key, LongValue(minV), LongValue(maxV))
}

// SetLongMin replaces the lower bound of a LONG property.
func (r *Registry) SetLongMin(key string, minV int64) error {
	return r.setMin(key, LongValue(minV))
}

// SetLongMax replaces the upper bound of a LONG property.
func (r *Registry) SetLongMax(key string, maxV int64) error {
	return r.setMax(key, LongValue(maxV))
}

// SetFloatBounds replaces both bounds of a FLOAT property.
func (r *Registry) SetFloatBounds(key string, minV, maxV float32) error {
	return r.setBounds(key, FloatValue(minV), FloatValue(maxV))
}

// SetFloatMin replaces the lower bound of a FLOAT property.
func (r *Registry) SetFloatMin(key string, minV float32) error {
	return r.setMin(key, FloatValue(minV))
}

// SetFloatMax replaces the upper bound of a FLOAT property.
func (r *Registry) SetFloatMax(key string, maxV float32) error {
	return r.setMax(key, FloatValue(maxV))
}

// SetDoubleBounds replaces both bounds of a DOUBLE property.
func (r *Registry) SetDoubleBounds(key string, minV, maxV float64) error {
	return r.setBounds(key, DoubleValue(minV), DoubleValue(maxV))
}

// SetDoubleMin replaces the lower bound of a DOUBLE property.
func (r *Registry) SetDoubleMin(key string, minV float64) error {
	return r.setMin(key, DoubleValue(minV))
}

// SetDoubleMax replaces the upper bound of a DOUBLE property.
func (r *Registry) SetDoubleMax(key string, maxV float64) error {
	return r.setMax(key, DoubleValue(maxV))
}

// =============================================================================
// Defaults
// =============================================================================

// GetIntDefault returns the default of an INT property, or 0.
func (r *Registry) GetIntDefault(key string) int32 { return r.defaultOf(key, TypeInt).Int() }

// GetLongDefault returns the default of a LONG property, or 0.
func (r *Registry) GetLongDefault(key string) int64 { return r.defaultOf(key, TypeLong).Long() }

// GetFloatDefault returns the default of a FLOAT property, or 0.
func (r *Registry) GetFloatDefault(key string) float32 { return r.defaultOf(key, TypeFloat).Float() }

// GetDoubleDefault returns the default of a DOUBLE property, or 0.
func (r *Registry) GetDoubleDefault(key string) float64 {
	return r.defaultOf(key, TypeDouble).Double()
}

// GetStringDefault returns the default of a STRING property, or "".
func (r *Registry) GetStringDefault(key string) string { return r.defaultOf(key, TypeString).Str() }

// GetColorDefault returns the default of a COLOR property, or "#000000".
func (r *Registry) GetColorDefault(key string) string { return r.defaultOf(key, TypeColor).Str() }

// GetBoolDefault returns the default of a BOOL property, or false.
func (r *Registry) GetBoolDefault(key string) bool { return r.defaultOf(key, TypeBool).Bool() }

// SetIntDefault replaces the default of an INT property. It must lie within the current bounds.
func (r *Registry) SetIntDefault(key string, v int32) error {
	return r.setDefault(key, IntValue(v))
}

// SetLongDefault replaces the default of a LONG property.
func (r *Registry) SetLongDefault(key string, v int64) error {
	return r.setDefault(key, LongValue(v))
}

// SetFloatDefault replaces the default of a FLOAT property.
func (r *Registry) SetFloatDefault(key string, v float32) error {
	return r.setDefault(key, FloatValue(v))
}

// SetDoubleDefault replaces the default of a DOUBLE property.
func (r *Registry) SetDoubleDefault(key string, v float64) error {
	return r.setDefault(key, DoubleValue(v))
}

// SetStringDefault replaces the default of a STRING property.
func (r *Registry) SetStringDefault(key, v string) error {
	return r.setDefault(key, StringValue(v))
}

// SetColorDefault replaces the default of a COLOR property. It must match #RRGGBB.
func (r *Registry) SetColorDefault(key, v string) error {
	return r.setDefault(key, ColorValue(v))
}

// SetBoolDefault replaces the default of a BOOL property.
func (r *Registry) SetBoolDefault(key string, v bool) error {
	return r.setDefault(key, BoolValue(v))
}

func (r *Registry) minOf(key string, want Type) Value {
	e, err := r.lookup(key, want)
	if err != nil {
		lo, _ := fullRange(want)
		return lo
	}
	return e.min
}

func (r *Registry) maxOf(key string, want Type) Value {
	e, err := r.lookup(key, want)
	if err != nil {
		_, hi := fullRange(want)
		return hi
	}
	return e.max
}

func (r *Registry) defaultOf(key string, want Type) Value {
	e, err := r.lookup(key, want)
	if err != nil {
		return zeroValue(want)
	}
	return e.def
}

func (r *Registry) setBounds(key string, minV, maxV Value) error {
	e, err := r.lookup(key, minV.typ)
	if err != nil {
		return err
	}
	if !validBounds(minV, maxV) {
		return ErrInvalidRange
	}
	e.min, e.max = minV, maxV
	return nil
}

func (r *Registry) setMin(key string, minV Value) error {
	e, err := r.lookup(key, minV.typ)
	if err != nil {
		return err
	}
	if !validBounds(minV, e.max) {
		return ErrInvalidRange
	}
	e.min = minV
	return nil
}

func (r *Registry) setMax(key string, maxV Value) error {
	e, err := r.lookup(key, maxV.typ)
	if err != nil {
		return err
	}
	if !validBounds(e.min, maxV) {
		return ErrInvalidRange
	}
	e.max = maxV
	return nil
}

func (r *Registry) setDefault(key string, v Value) error {
	e, err := r.lookup(key, v.typ)
	if err != nil {
		return err
	}
	if err := checkValue(e, v); err != nil {
		return err
	}
	e.def = v
	return nil
}
