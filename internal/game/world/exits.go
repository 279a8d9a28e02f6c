package world

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ExitMask records which of the eight compass directions are passable,
// indexed by Direction.Index. The zero value has every exit closed.
type ExitMask [8]bool

// Open reports whether d is passable. Unknown directions are never open.
func (m ExitMask) Open(d Direction) bool {
	i := d.Index()
	return i >= 0 && m[i]
}

// Set marks d passable or not.
//
// Precondition: d.Valid().
func (m *ExitMask) Set(d Direction, open bool) {
	if i := d.Index(); i >= 0 {
		m[i] = open
	}
}

// Toggle flips d and returns the new state.
//
// Precondition: d.Valid().
func (m *ExitMask) Toggle(d Direction) bool {
	m.Set(d, !m.Open(d))
	return m.Open(d)
}

// OpenDirections returns the passable directions in canonical order.
func (m ExitMask) OpenDirections() []Direction {
	var out []Direction
	for i, ok := range m {
		if ok {
			out = append(out, Directions[i])
		}
	}
	return out
}

// MarshalJSON writes an object with all eight direction keys in canonical order.
func (m ExitMask) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range Directions {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(string(d)))
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatBool(m[i]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an exit object. Unknown keys are discarded, missing
// keys are closed, and non-boolean values are coerced by truthiness: zero,
// "", null, [] and {} are closed, anything else is open. A null or absent
// object closes every exit.
//
// Postcondition: Returns an error only when data is neither an object nor null.
func (m *ExitMask) UnmarshalJSON(data []byte) error {
	*m = ExitMask{}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("exits must be an object: %w", err)
	}
	for i, d := range Directions {
		if v, ok := raw[string(d)]; ok {
			m[i] = truthy(v)
		}
	}
	return nil
}

func truthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}
