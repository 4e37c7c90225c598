package property

import (
	"fmt"
	"regexp"
	"testing"

	"pgregory.net/rapid"
)

// drawRegistry fills a registry with n properties of random types and values.
func drawRegistry(t *rapid.T) *Registry {
	reg := New()
	n := rapid.IntRange(0, 12).Draw(t, "n")
	for i := 0; i < n; i++ {
		// Index prefix keeps drawn keys distinct.
		key := fmt.Sprintf("%d:%s", i, rapid.StringMatching(`[\x00-\x7f]{0,8}`).Draw(t, "key"))
		typ := rapid.SampledFrom(AllTypes()).Draw(t, "type")

		var err error
		switch typ {
		case TypeInt:
			err = reg.InitInt(key, rapid.Int32().Draw(t, key))
		case TypeLong:
			err = reg.InitLong(key, rapid.Int64().Draw(t, key))
		case TypeFloat:
			err = reg.InitFloat(key, rapid.Float32Range(-1e30, 1e30).Draw(t, key))
		case TypeDouble:
			err = reg.InitDouble(key, rapid.Float64Range(-1e300, 1e300).Draw(t, key))
		case TypeString:
			err = reg.InitString(key, rapid.String().Draw(t, key))
		case TypeColor:
			err = reg.InitColor(key, rapid.StringMatching(`#[0-9a-fA-F]{6}`).Draw(t, key))
		case TypeBool:
			err = reg.InitBool(key, rapid.Bool().Draw(t, key))
		}
		if err != nil {
			t.Fatalf("init %s as %s: %v", key, typ, err)
		}
	}
	return reg
}

func TestRapid_SerializeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := drawRegistry(t)
		doc, err := src.Serialize()
		if err != nil {
			t.Fatalf("Serialize() error = %v", err)
		}

		// Same schema, values reset to zero defaults.
		dst := New()
		for _, key := range src.Keys() {
			if err := dst.Init(key, src.TypeOf(key)); err != nil {
				t.Fatalf("Init(%s) error = %v", key, err)
			}
		}

		if err := dst.Deserialize(doc); err != nil {
			t.Fatalf("Deserialize(%s) error = %v", doc, err)
		}
		for _, key := range src.Keys() {
			want, _ := src.Value(key)
			got, _ := dst.Value(key)
			if !got.Equal(want) {
				t.Fatalf("%s: got %v, want %v", key, got, want)
			}
		}
	})
}

func TestRapid_ValuesStayInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Int32Range(-1000, 1000).Draw(t, "min")
		hi := rapid.Int32Range(lo, 1000).Draw(t, "max")
		def := rapid.Int32Range(lo, hi).Draw(t, "default")

		reg := New()
		if err := reg.InitIntBounded("n", def, lo, hi); err != nil {
			t.Fatalf("InitIntBounded(%d, %d, %d) error = %v", def, lo, hi, err)
		}

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			v := rapid.Int32Range(-2000, 2000).Draw(t, "v")
			prev := reg.GetInt("n")
			err := reg.SetInt("n", v)

			got := reg.GetInt("n")
			if got < lo || got > hi {
				t.Fatalf("value %d escaped [%d, %d]", got, lo, hi)
			}
			if v >= lo && v <= hi {
				if err != nil || got != v {
					t.Fatalf("SetInt(%d) = %v, value %d", v, err, got)
				}
			} else if err == nil || got != prev {
				t.Fatalf("SetInt(%d) out of range accepted, value %d", v, got)
			}
		}
	})
}

func TestRapid_RemoveShiftsIndices(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := drawRegistry(t)
		if reg.Size() == 0 {
			return
		}
		before := reg.Keys()
		idx := rapid.IntRange(0, len(before)-1).Draw(t, "idx")

		if err := reg.Remove(before[idx]); err != nil {
			t.Fatalf("Remove(%s) error = %v", before[idx], err)
		}
		if reg.Size() != len(before)-1 {
			t.Fatalf("Size() = %d, want %d", reg.Size(), len(before)-1)
		}
		for j, key := range before {
			switch {
			case j < idx && reg.IndexOf(key) != j:
				t.Fatalf("IndexOf(%s) = %d, want %d", key, reg.IndexOf(key), j)
			case j == idx && reg.Contains(key):
				t.Fatalf("%s still registered", key)
			case j > idx && reg.IndexOf(key) != j-1:
				t.Fatalf("IndexOf(%s) = %d, want %d", key, reg.IndexOf(key), j-1)
			}
		}
	})
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func TestRapid_IsColor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.OneOf(
			rapid.StringMatching(`#[0-9a-fA-F]{6}`),
			rapid.StringMatching(`#?[0-9a-zA-Z]{0,8}`),
			rapid.String(),
		).Draw(t, "s")

		if got, want := IsColor(s), colorPattern.MatchString(s); got != want {
			t.Fatalf("IsColor(%q) = %v, want %v", s, got, want)
		}
	})
}
