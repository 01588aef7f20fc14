// Package source abstracts the three robot transports (vendor SDK,
// Modbus TCP, bare REST) behind a single polling interface. A Source
// reads one Sample per tick; the dashboard doesn't care which wire the
// values arrived on.
package source

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Kind discriminates the value types a variable can hold.
type Kind int

const (
	// KindNull marks a variable that could not be read this tick.
	KindNull Kind = iota
	KindNumber
	KindBool
	KindString
)

// Value is one variable reading. The zero value is Null.
type Value struct {
	Kind Kind
	Num  float64
	Bool bool
	Str  string
}

// Null returns the placeholder for a failed or missing read.
func Null() Value {
	return Value{Kind: KindNull}
}

// Number wraps a float reading.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// Bool wraps a boolean reading.
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// String wraps a text reading.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// FromAny converts a decoded JSON value into a Value. Unknown types
// render through fmt as strings rather than being dropped.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case bool:
		return Bool(x)
	case string:
		return String(x)
	default:
		return String(fmt.Sprintf("%v", x))
	}
}

// IsNull reports whether the read failed or the variable is unset.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Numeric returns the value as a float for charting. Booleans chart
// as 0/1; strings and nulls are not numeric.
func (v Value) Numeric() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// String renders the value for display. Null shows as "-".
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindString:
		return v.Str
	}
	return "-"
}

// Interface returns the underlying Go value, nil for Null. Used by the
// JSON output path of one-shot commands.
func (v Value) Interface() any {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindString:
		return v.Str
	}
	return nil
}

// Sample is one poll tick's worth of readings. Names preserves the
// order variables were requested in, so rendering stays stable across
// ticks.
type Sample struct {
	Time   time.Time
	Names  []string
	Values map[string]Value
}

// NewSample creates an empty sample stamped now.
func NewSample() Sample {
	return Sample{
		Time:   time.Now().UTC(),
		Values: make(map[string]Value),
	}
}

// Set records a reading, registering the name on first use.
func (s *Sample) Set(name string, v Value) {
	if _, ok := s.Values[name]; !ok {
		s.Names = append(s.Names, name)
	}
	s.Values[name] = v
}

// Get returns the reading for a name, Null if absent.
func (s *Sample) Get(name string) Value {
	if v, ok := s.Values[name]; ok {
		return v
	}
	return Null()
}

// Len returns the number of variables in the sample.
func (s *Sample) Len() int {
	return len(s.Names)
}

// Source reads robot variables over one transport.
type Source interface {
	// Name identifies the transport for display ("sdk", "modbus", "rest").
	Name() string

	// Read polls all configured variables once. Individual variable
	// failures yield Null values; only a transport-level failure
	// returns an error.
	Read(ctx context.Context) (Sample, error)

	// Close releases the underlying connection.
	Close() error
}
