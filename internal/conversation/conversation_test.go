package conversation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-convo-scout/internal/model"
)

func TestSample(t *testing.T) {
	msgs := Sample()
	require.Len(t, msgs, 14)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Contains(t, msgs[0].Text, "Ryzen 7")
}

func TestLoad_JSONLegacyFields(t *testing.T) {
	f := filepath.Join(t.TempDir(), "c.json")
	require.NoError(t, os.WriteFile(f, []byte(`[{"type":"user","message":"hi there"},{"type":"ai","message":"hello"}]`), 0o644))
	msgs, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, []model.Message{
		{Role: model.RoleUser, Text: "hi there"},
		{Role: model.RoleAssistant, Text: "hello"},
	}, msgs)
}

func TestLoad_YAML(t *testing.T) {
	f := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(f, []byte("- role: assistant\n  text: 你好\n"), 0o644))
	msgs, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, []model.Message{{Role: model.RoleAssistant, Text: "你好"}}, msgs)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"role":"system","text":"x"}]`), 0o644))
	_, err := Load(bad)
	assert.ErrorContains(t, err, "message 0")

	txt := filepath.Join(dir, "c.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	_, err = Load(txt)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
