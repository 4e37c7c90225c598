// Package property provides the typed property registry for Gray Logic edge
// devices.
//
// A Registry is an ordered key/value store in which every key has a declared
// type, a default and, for numeric types, an inclusive [min, max] range. All
// writes are validated so that a stored value always satisfies its
// constraints. The whole registry converts to and from a flat JSON object so
// a device can persist its settings or exchange them over the network.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│                           Registry                                │
//	│                                                                   │
//	│  ┌──────────────┐   ┌──────────────┐   ┌──────────────────────┐   │
//	│  │  registry.go │   │  values.go   │   │      codec.go        │   │
//	│  │ • Init*      │   │ • Get*/Set*  │   │ • Serialize(To)      │   │
//	│  │ • Remove     │   │ bounds.go    │   │ • Deserialize/Patch  │   │
//	│  │ • Reset      │   │ • Min/Max    │   └──────────────────────┘   │
//	│  └──────────────┘   │ • Defaults   │   ┌──────────────────────┐   │
//	│                     └──────────────┘   │      schema.go       │   │
//	│                                        │ • YAML definitions   │   │
//	│                                        └──────────────────────┘   │
//	└──────────────────────────────────────────────────────────────────┘
//
// # Types
//
//	INT     int32     bounded, full int32 range by default
//	LONG    int64     bounded, full int64 range by default
//	FLOAT   float32   bounded, ±math.MaxFloat32 by default
//	DOUBLE  float64   bounded, ±math.MaxFloat64 by default
//	STRING  string
//	COLOR   string    "#RRGGBB", hex digits in either case
//	BOOL    bool
//
// NaN is never accepted as a value, bound or default.
//
// # Usage
//
//	reg := property.New()
//	if err := reg.InitIntBounded("age", 5, 0, 10); err != nil {
//	    return err
//	}
//	if err := reg.SetInt("age", 11); errors.Is(err, property.ErrInvalidRange) {
//	    // rejected, value is still 5
//	}
//
//	doc, _ := reg.Serialize() // {"age":5}
//
//	var applyErr *property.ApplyError
//	if err := reg.Deserialize(doc); errors.As(err, &applyErr) {
//	    log.Warn("properties kept", "keys", applyErr.Keys())
//	}
//
// # Thread Safety
//
// A Registry performs no locking. Share one between goroutines only behind a
// single mutex; package propsync does this for the running service.
package property
