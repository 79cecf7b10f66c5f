package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Catalog is the read-only set of style presets loaded at process start.
// A nil *Catalog behaves as an empty catalog.
type Catalog struct {
	presets []Preset
	byCode  map[string]Preset
}

// New builds a catalog from presets in order. Entries without a name are
// dropped. When two entries share a short code the later one wins the lookup.
func New(presets []Preset) *Catalog {
	c := &Catalog{
		presets: make([]Preset, 0, len(presets)),
		byCode:  make(map[string]Preset, len(presets)),
	}
	for _, p := range presets {
		if p.Name == "" {
			continue
		}
		c.presets = append(c.presets, p)
		c.byCode[p.ID()] = p
	}
	return c
}

// Parse decodes a JSON array of presets.
func Parse(data []byte) (*Catalog, error) {
	var raw []Preset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode preset catalog: %w", err)
	}
	return New(raw), nil
}

// Load reads the catalog at filePath. Any failure is logged and yields an
// empty catalog; the caller never sees an error.
func Load(filePath string, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("preset catalog not found, starting empty", zap.String("path", filePath))
		} else {
			logger.Error("failed to read preset catalog", zap.String("path", filePath), zap.Error(err))
		}
		return New(nil)
	}

	c, err := Parse(data)
	if err != nil {
		logger.Error("failed to load preset catalog", zap.String("path", filePath), zap.Error(err))
		return New(nil)
	}
	logger.Info("loaded preset catalog", zap.String("path", filePath), zap.Int("presets", c.Len()))
	return c
}

// Len returns the number of named presets.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.presets)
}

// Presets returns a copy of the presets in file order.
func (c *Catalog) Presets() []Preset {
	if c == nil {
		return []Preset{}
	}
	out := make([]Preset, len(c.presets))
	copy(out, c.presets)
	return out
}

// Names returns the display names in file order.
func (c *Catalog) Names() []string {
	if c == nil {
		return []string{}
	}
	names := make([]string, len(c.presets))
	for i, p := range c.presets {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a preset by bare short code.
func (c *Catalog) Lookup(code string) (Preset, bool) {
	if c == nil {
		return Preset{}, false
	}
	p, ok := c.byCode[code]
	return p, ok
}

// Resolve finds a preset by display name, re-deriving its short code first.
// Any display string sharing the code resolves to the same entry.
func (c *Catalog) Resolve(name string) (Preset, bool) {
	return c.Lookup(ShortCode(name))
}
