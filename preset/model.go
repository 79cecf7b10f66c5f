package preset

import "strings"

// Separator splits a preset display name into its short code and title,
// e.g. "001-Cinematic" has the code "001".
const Separator = "-"

// Preset is a single named style fragment pair.
type Preset struct {
	Name     string `json:"name"`
	Positive string `json:"positive,omitempty"`
	Negative string `json:"negative,omitempty"`
}

// ID returns the preset's short code.
func (p Preset) ID() string {
	return ShortCode(p.Name)
}

// ShortCode derives a short code from a display name: everything before the
// first separator, trimmed. A name without a separator is its own code.
func ShortCode(name string) string {
	code, _, _ := strings.Cut(name, Separator)
	return strings.TrimSpace(code)
}
