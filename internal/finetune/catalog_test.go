package finetune_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kiranshivaraju/tunehub/internal/finetune"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckValidProviderModel_DefaultCatalog(t *testing.T) {
	c, err := finetune.LoadCatalog("")
	require.NoError(t, err)

	assert.NoError(t, finetune.CheckValidProviderModel(c, "openai", "gpt-4o-mini-2024-07-18"))

	err = finetune.CheckValidProviderModel(c, "openai", "gpt-99")
	require.Error(t, err)
	assert.ErrorIs(t, err, finetune.ErrUnsupportedModel)
	assert.Equal(t, "Provider openai with base model gpt-99 is not available", err.Error())

	var ume *finetune.UnsupportedModelError
	require.True(t, errors.As(err, &ume))
	assert.Equal(t, "openai", ume.Provider)
	assert.Equal(t, "gpt-99", ume.Model)
}

func TestCheckValidProviderModel_UnknownProvider(t *testing.T) {
	c, err := finetune.LoadCatalog("")
	require.NoError(t, err)

	err = finetune.CheckValidProviderModel(c, "nope", "gpt-4o-mini-2024-07-18")
	assert.ErrorIs(t, err, finetune.ErrUnsupportedModel)
}

func TestDefaultCatalog_Providers(t *testing.T) {
	c, err := finetune.LoadCatalog("")
	require.NoError(t, err)

	assert.Equal(t, []string{"fireworks_ai", "openai", "together_ai"}, c.Providers())
	assert.True(t, c.IsModelSupported("fireworks_ai", "accounts/fireworks/models/llama-v3p1-8b-instruct"))
}

func TestLoadCatalog_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers:\n  local:\n    - tiny-model\n"), 0o644))

	c, err := finetune.LoadCatalog(path)
	require.NoError(t, err)
	assert.True(t, c.IsModelSupported("local", "tiny-model"))
	assert.False(t, c.IsModelSupported("openai", "gpt-4o-mini-2024-07-18"))
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := finetune.LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog")
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no providers", "providers: {}\n"},
		{"empty document", ""},
		{"malformed", "providers: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := finetune.ParseCatalog([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse catalog")
		})
	}
}

func TestNewStaticCatalog(t *testing.T) {
	c := finetune.NewStaticCatalog(map[string][]string{"p": {"m1", "m2"}})

	assert.True(t, c.IsModelSupported("p", "m1"))
	assert.True(t, c.IsModelSupported("p", "m2"))
	assert.False(t, c.IsModelSupported("p", "m3"))
	assert.False(t, c.IsModelSupported("q", "m1"))
}
