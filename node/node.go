// Package node describes nodes to the graph host: typed input slots, outputs,
// tooltips, and the entry point the host calls once per graph execution.
package node

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrBadInput reports an input value the node cannot use.
var ErrBadInput = errors.New("bad node input")

// Group is where a slot appears in the host UI.
type Group string

const (
	Required Group = "required"
	Optional Group = "optional"
	Hidden   Group = "hidden"
)

// Slot types understood by the host.
const (
	TypeString       = "STRING"
	TypeBoolean      = "BOOLEAN"
	TypeCombo        = "COMBO"
	TypeCLIP         = "CLIP"
	TypeConditioning = "CONDITIONING"
	TypeUniqueID     = "UNIQUE_ID"
)

// Slot is one typed input.
type Slot struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Group       Group    `json:"group"`
	Default     any      `json:"default,omitempty"`
	Choices     []string `json:"choices,omitempty"`
	Multiline   bool     `json:"multiline,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Label       string   `json:"label,omitempty"`
	Tooltip     string   `json:"tooltip,omitempty"`
}

// Output is one typed output.
type Output struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Tooltip string `json:"tooltip,omitempty"`
}

// Info is the metadata the host UI renders for a node class.
type Info struct {
	Class       string   `json:"class"`
	DisplayName string   `json:"display_name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Function    string   `json:"function"`
	Inputs      []Slot   `json:"inputs"`
	Outputs     []Output `json:"outputs"`
}

// Slot returns the named input slot.
func (i Info) Slot(name string) (Slot, bool) {
	for _, s := range i.Inputs {
		if s.Name == name {
			return s, true
		}
	}
	return Slot{}, false
}

// Node is a host-invokable component.
type Node interface {
	Info() Info
	// Execute runs the node once. The returned values line up with Info().Outputs.
	Execute(ctx context.Context, in Inputs) ([]any, error)
}

// Registry holds node classes by name.
type Registry struct {
	mu    sync.RWMutex
	nodes map[string]Node
}

func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]Node)}
}

// Register adds n under its class name.
func (r *Registry) Register(n Node) error {
	class := n.Info().Class
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nodes[class]; ok {
		return fmt.Errorf("node class %q already registered", class)
	}
	r.nodes[class] = n
	return nil
}

func (r *Registry) Get(class string) (Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[class]
	return n, ok
}

// List returns node infos sorted by class.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.nodes))
	for _, n := range r.nodes {
		infos = append(infos, n.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Class < infos[j].Class })
	return infos
}
