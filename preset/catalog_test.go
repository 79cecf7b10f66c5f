package preset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-nodes/preset"
)

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Strong_Prompt.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestShortCode(t *testing.T) {
	cases := map[string]string{
		"001-Cinematic":     "001",
		" 002 - Film Noir ": "002",
		"003-Sci-Fi":        "003",
		"plain":             "plain",
		"":                  "",
		"-leading":          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, preset.ShortCode(in), "ShortCode(%q)", in)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c := preset.Load(filepath.Join(t.TempDir(), "nonexistent.json"), nil)
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Names())
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeCatalog(t, `{"name": "not an array"`)
	c := preset.Load(path, nil)
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
}

func TestLoadKeepsFileOrder(t *testing.T) {
	path := writeCatalog(t, `[
		{"name": "002-Second", "positive": "b"},
		{"name": "001-First", "positive": "a", "negative": "x"},
		{"positive": "nameless"}
	]`)
	c := preset.Load(path, nil)

	assert.Equal(t, []string{"002-Second", "001-First"}, c.Names())
	p, ok := c.Lookup("001")
	require.True(t, ok)
	assert.Equal(t, "a", p.Positive)
	assert.Equal(t, "x", p.Negative)
}

func TestDuplicateCodesLastOneWins(t *testing.T) {
	c := preset.New([]preset.Preset{
		{Name: "007-Old", Positive: "old"},
		{Name: "007-New", Positive: "new"},
	})

	// Both entries stay selectable by name, but the lookup collapses.
	assert.Equal(t, 2, c.Len())
	p, ok := c.Resolve("007-Old")
	require.True(t, ok)
	assert.Equal(t, "new", p.Positive)
}

func TestResolveUnknown(t *testing.T) {
	c := preset.New([]preset.Preset{{Name: "001-A", Positive: "a"}})
	_, ok := c.Resolve("999-Missing")
	assert.False(t, ok)
	_, ok = c.Lookup("")
	assert.False(t, ok)
}

func TestNilCatalogIsEmpty(t *testing.T) {
	var c *preset.Catalog
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Presets())
	_, ok := c.Lookup("001")
	assert.False(t, ok)
}

func TestPresetsReturnsCopy(t *testing.T) {
	c := preset.New([]preset.Preset{{Name: "001-A", Positive: "a"}})
	ps := c.Presets()
	ps[0].Positive = "mutated"
	assert.Equal(t, "a", c.Presets()[0].Positive)
}

func TestParseRejectsNonArray(t *testing.T) {
	_, err := preset.Parse([]byte(`{"name":"001-A"}`))
	assert.Error(t, err)
}
