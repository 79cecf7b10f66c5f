package prompt

import "prompt-nodes/clip"

// MaxSelections is the number of preset dropdowns on the node.
const MaxSelections = 6

// Selection is an optional dropdown value.
type Selection struct {
	Name  string
	Valid bool
}

// None is the empty selection.
var None = Selection{}

// Select picks the preset shown as name.
func Select(name string) Selection {
	return Selection{Name: name, Valid: true}
}

// Request is one invocation of the style prompt node.
type Request struct {
	Positive   string
	Negative   string
	Selections [MaxSelections]Selection
	// IDs is a comma-separated list of preset short codes, e.g. "001,002".
	IDs string

	PresetsEnabled  bool
	IDsEnabled      bool
	NegativeEnabled bool
}

// Texts holds the final prompt strings.
type Texts struct {
	Positive string `json:"positive"`
	Negative string `json:"negative"`
}

// Result is the node output: both conditionings plus the texts they came from.
type Result struct {
	Positive     clip.Conditioning
	Negative     clip.Conditioning
	PositiveText string
	NegativeText string
}
