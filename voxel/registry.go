package voxel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oomph-ac/pistonsim/assert"
)

// Encoder is implemented by states that can be written to and read back from the registry. Every registered
// state must implement it.
type Encoder interface {
	// EncodeState returns the name and properties that uniquely identify the state.
	EncodeState() (name string, properties map[string]any)
}

var registry = make(map[string]State)

// Register registers a state so that it can be looked up by its encoded name and properties. Registering the
// same state twice panics.
func Register(s State) {
	e, ok := s.(Encoder)
	assert.IsTrue(ok, "voxel %T does not implement Encoder", s)

	key := stateKey(e.EncodeState())
	_, exists := registry[key]
	assert.IsTrue(!exists, "voxel state %v registered twice", key)
	registry[key] = s
}

// ByName looks up a registered state by its name and properties.
func ByName(name string, properties map[string]any) (State, bool) {
	s, ok := registry[stateKey(name, properties)]
	return s, ok
}

// Encode returns the name and properties of s. States that do not implement Encoder encode as their name only.
func Encode(s State) (string, map[string]any) {
	if e, ok := s.(Encoder); ok {
		return e.EncodeState()
	}
	return s.Name(), nil
}

// stateKey builds a canonical key from a name and a property map. Booleans and all integer widths collapse to
// the same decimal form so that states survive round trips through formats that only know bytes or ints.
func stateKey(name string, properties map[string]any) string {
	if len(properties) == 0 {
		return name
	}
	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(canonicalValue(properties[k]))
	}
	sb.WriteByte(']')
	return sb.String()
}

func canonicalValue(v any) string {
	switch v := v.(type) {
	case bool:
		if v {
			return "1"
		}
		return "0"
	case string:
		return v
	case float32, float64:
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprint(v)
}

// Key returns the canonical registry key of s.
func Key(s State) string {
	return stateKey(Encode(s))
}

// Equal returns true if a and b encode to the same name and properties.
func Equal(a, b State) bool {
	return Key(a) == Key(b)
}
