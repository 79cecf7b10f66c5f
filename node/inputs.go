package node

import "fmt"

// Inputs carries slot values by name as decoded from the host request.
type Inputs map[string]any

// String returns the string at name, or def when absent or null.
func (in Inputs) String(name, def string) (string, error) {
	v, ok := in[name]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrBadInput, name, v)
	}
	return s, nil
}

// Bool returns the bool at name, or def when absent or null.
func (in Inputs) Bool(name string, def bool) (bool, error) {
	v, ok := in[name]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean, got %T", ErrBadInput, name, v)
	}
	return b, nil
}

// defaultString reads a slot's string default.
func defaultString(info Info, name string) string {
	s, _ := info.Slot(name)
	v, _ := s.Default.(string)
	return v
}

// defaultBool reads a slot's boolean default.
func defaultBool(info Info, name string) bool {
	s, _ := info.Slot(name)
	v, _ := s.Default.(bool)
	return v
}
