package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPreset(t *testing.T) {
	r := &Rules{Presets: map[string]Preset{
		"Default": {Keywords: []string{"bug"}},
		"pricing": {Keywords: []string{"cost"}, BodySelector: ".usertext-body"},
	}}
	p, ok := r.GetPreset("PRICING")
	require.True(t, ok)
	assert.Equal(t, []string{"cost"}, p.Keywords)
	assert.Equal(t, ".usertext-body", p.Selector())

	p, ok = r.GetPreset("")
	require.True(t, ok, "empty name falls back to default case-insensitively")
	assert.Equal(t, []string{"bug"}, p.Keywords)

	var nilRules *Rules
	p, ok = nilRules.GetPreset("x")
	assert.False(t, ok)
	assert.Equal(t, DefaultBodySelector, p.Selector())
	assert.Equal(t, []string{"a"}, p.KeywordsOr([]string{"a"}))
}

func TestLoad(t *testing.T) {
	f := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(f, []byte("default:\n  keywords: [limit, pay]\n  body_selector: div.md||.\n"), 0o644))
	r, err := Load(f)
	require.NoError(t, err)
	p, ok := r.GetPreset("default")
	require.True(t, ok)
	assert.Equal(t, []string{"limit", "pay"}, p.Keywords)
	assert.Equal(t, "div.md||.", p.Selector())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
