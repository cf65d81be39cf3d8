package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wari-market/wari/internal/chart"
	"github.com/wari-market/wari/internal/simulator"
)

func TestLoadEmbeddedContent(t *testing.T) {
	c, err := NewContentService("").Load()
	require.NoError(t, err)

	assert.Len(t, c.Impact, 4)
	assert.Equal(t, 350, c.Impact[0].Count)
	assert.Equal(t, "+", c.Impact[0].Suffix)
	assert.Len(t, c.Products, 6)
	assert.Len(t, c.Regions, 4)
	assert.Equal(t, simulator.DefaultTables(), c.Simulator)
	assert.Equal(t, chart.SampleIncome(), c.Income)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
products:
  - id: a
    name: Uno
    origin: piura
    color: crema
    quality: premium
regions:
  - id: r
    name: R
    x: 0.5
    y: 0.5
`), 0o644))

	c, err := NewContentService(path).Load()
	require.NoError(t, err)
	require.Len(t, c.Products, 1)
	assert.Equal(t, "piura", c.Products[0].Origin)
	// Missing sections fall back to defaults.
	assert.Equal(t, simulator.DefaultTables(), c.Simulator)
	assert.Equal(t, chart.SampleIncome(), c.Income)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewContentService(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseContentValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "products:\n  - name: x\n"},
		{"duplicate id", "products:\n  - id: a\n  - id: a\n"},
		{"region off map", "regions:\n  - id: r\n    x: 1.5\n    y: 0.2\n"},
		{"label mismatch", "income:\n  labels: [a]\n  values: [1, 2]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContent([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidContent)
		})
	}
}

func TestParseContentMalformed(t *testing.T) {
	_, err := ParseContent([]byte("products: [unterminated"))
	assert.Error(t, err)
}
