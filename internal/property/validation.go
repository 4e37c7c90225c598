package property

import (
	"math"
	"unicode/utf8"
)

// Validation constants.
const (
	// colorLength is the length of "#RRGGBB".
	colorLength = 7

	// defaultColor is the zero-equivalent COLOR value.
	defaultColor = "#000000"
)

// IsColor reports whether s is "#" followed by exactly six hexadecimal
// digits. Case-insensitive.
func IsColor(s string) bool {
	if len(s) != colorLength || s[0] != '#' {
		return false
	}
	for i := 1; i < colorLength; i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

// validKey reports whether key is a non-empty ASCII string.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isNaN reports whether a float-tagged value is NaN.
func isNaN(v Value) bool {
	return (v.typ == TypeFloat || v.typ == TypeDouble) && math.IsNaN(v.f)
}

// less reports a < b for two numeric values of the same tag.
func less(a, b Value) bool {
	switch a.typ {
	case TypeInt, TypeLong:
		return a.i < b.i
	default:
		return a.f < b.f
	}
}

// validBounds reports whether [minV, maxV] is a usable range.
func validBounds(minV, maxV Value) bool {
	if isNaN(minV) || isNaN(maxV) {
		return false
	}
	return !less(maxV, minV)
}

// inRange reports whether minV <= v <= maxV. NaN is never in range.
func inRange(v, minV, maxV Value) bool {
	if isNaN(v) {
		return false
	}
	return !less(v, minV) && !less(maxV, v)
}

// checkValue validates v against the constraints of entry e.
func checkValue(e *entry, v Value) error {
	switch e.typ {
	case TypeInt, TypeLong, TypeFloat, TypeDouble:
		if !inRange(v, e.min, e.max) {
			return ErrInvalidRange
		}
	case TypeString:
		if !utf8.ValidString(v.s) {
			return ErrInvalidString
		}
	case TypeColor:
		if !IsColor(v.s) {
			return ErrInvalidColor
		}
	}
	return nil
}
