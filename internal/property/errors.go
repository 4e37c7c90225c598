package property

import (
	"errors"
	"strings"
)

// Domain errors for the property package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, property.ErrInvalidRange) {
//	    // value rejected by bounds
//	}
var (
	// ErrDuplicateKey is returned when initialising a key that already exists.
	ErrDuplicateKey = errors.New("property: key already exists")

	// ErrNotFound is returned when a key or index does not exist.
	ErrNotFound = errors.New("property: not found")

	// ErrTypeMismatch is returned when an operation targets a property of a different type.
	ErrTypeMismatch = errors.New("property: type mismatch")

	// ErrInvalidRange is returned when min > max or a value lies outside [min, max].
	ErrInvalidRange = errors.New("property: value out of range")

	// ErrInvalidColor is returned when a color is not of the form #RRGGBB.
	ErrInvalidColor = errors.New("property: invalid color")

	// ErrInvalidType is returned for TypeNone or an unknown type.
	ErrInvalidType = errors.New("property: invalid type")

	// ErrInvalidKey is returned for an empty or non-ASCII key.
	ErrInvalidKey = errors.New("property: invalid key")

	// ErrInvalidString is returned when a STRING value is not valid UTF-8.
	ErrInvalidString = errors.New("property: string is not valid UTF-8")

	// ErrParse is returned when a document is not a JSON object.
	ErrParse = errors.New("property: malformed document")

	// ErrMissingKey is returned when a document lacks a registered key.
	ErrMissingKey = errors.New("property: key missing from document")

	// ErrBufferTooSmall is returned when a serialized document does not fit the caller's buffer.
	ErrBufferTooSmall = errors.New("property: buffer too small")

	// ErrInvalidSchema is returned when a schema definition cannot be applied.
	ErrInvalidSchema = errors.New("property: invalid schema")
)

// KeyError ties a failure to the property it concerns.
type KeyError struct {
	Key string
	Err error
}

// Error implements error.
func (e KeyError) Error() string {
	return e.Key + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e KeyError) Unwrap() error {
	return e.Err
}

// ApplyError reports the properties that failed during a best-effort
// operation (Deserialize, Patch, ResetAll). Properties not listed were applied.
type ApplyError struct {
	Op       string
	Failures []KeyError
}

// Error implements error.
func (e *ApplyError) Error() string {
	var b strings.Builder
	b.WriteString("property: ")
	b.WriteString(e.Op)
	b.WriteString(" failed for ")
	for i, f := range e.Failures {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Error())
	}
	return b.String()
}

// Unwrap exposes every per-key error so errors.Is matches any category.
func (e *ApplyError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Keys returns the failing keys in the order they were processed.
func (e *ApplyError) Keys() []string {
	keys := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		keys[i] = f.Key
	}
	return keys
}

// applyResult accumulates per-key failures for a best-effort operation.
type applyResult struct {
	op       string
	failures []KeyError
}

func (r *applyResult) fail(key string, err error) {
	r.failures = append(r.failures, KeyError{Key: key, Err: err})
}

func (r *applyResult) err() error {
	if len(r.failures) == 0 {
		return nil
	}
	return &ApplyError{Op: r.op, Failures: r.failures}
}
