package property

import (
	"math"
	"testing"
)

func TestIsColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "white", input: "#FFFFFF", want: true},
		{name: "black", input: "#000000", want: true},
		{name: "lowercase", input: "#ff0000", want: true},
		{name: "mixed case", input: "#12aB3c", want: true},
		{name: "non-hex digit", input: "#0000R0", want: false},
		{name: "too short", input: "#0000", want: false},
		{name: "short form", input: "#000", want: false},
		{name: "too long", input: "#0000000", want: false},
		{name: "missing hash", input: "0000000", want: false},
		{name: "named color", input: "blue", want: false},
		{name: "empty", input: "", want: false},
		{name: "hash only", input: "#", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsColor(tt.input); got != tt.want {
				t.Errorf("IsColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidBounds(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name     string
		min, max Value
		want     bool
	}{
		{name: "ordered ints", min: IntValue(0), max: IntValue(10), want: true},
		{name: "equal ints", min: IntValue(3), max: IntValue(3), want: true},
		{name: "reversed ints", min: IntValue(10), max: IntValue(0), want: false},
		{name: "ordered longs", min: LongValue(math.MinInt64), max: LongValue(math.MaxInt64), want: true},
		{name: "reversed doubles", min: DoubleValue(1.5), max: DoubleValue(-1.5), want: false},
		{name: "nan min", min: DoubleValue(nan), max: DoubleValue(1), want: false},
		{name: "nan max", min: FloatValue(0), max: FloatValue(float32(nan)), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validBounds(tt.min, tt.max); got != tt.want {
				t.Errorf("validBounds(%v, %v) = %v, want %v", tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestInRange(t *testing.T) {
	lo, hi := DoubleValue(-1), DoubleValue(1)

	if !inRange(DoubleValue(-1), lo, hi) || !inRange(DoubleValue(1), lo, hi) {
		t.Error("bounds should be inclusive")
	}
	if inRange(DoubleValue(1.0000001), lo, hi) {
		t.Error("value above max reported in range")
	}
	if inRange(DoubleValue(math.NaN()), lo, hi) {
		t.Error("NaN reported in range")
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range AllTypes() {
		got, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%q) error = %v", typ.String(), err)
		}
		if got != typ {
			t.Errorf("ParseType(%q) = %v, want %v", typ.String(), got, typ)
		}
	}

	if got, err := ParseType(" Color "); err != nil || got != TypeColor {
		t.Errorf("ParseType(\" Color \") = %v, %v; want color, nil", got, err)
	}
	if _, err := ParseType("none"); err != ErrInvalidType {
		t.Errorf("ParseType(none) error = %v, want ErrInvalidType", err)
	}
	if _, err := ParseType("decimal"); err != ErrInvalidType {
		t.Errorf("ParseType(decimal) error = %v, want ErrInvalidType", err)
	}
	if _, err := ParseType(""); err != ErrInvalidType {
		t.Errorf("ParseType(\"\") error = %v, want ErrInvalidType", err)
	}
	if TypeNone.String() != "none" || TypeColor.String() != "color" {
		t.Errorf("String() = %q, %q; want none, color", TypeNone.String(), TypeColor.String())
	}
}
