package finetune_test

import (
	"testing"
	"time"

	"github.com/kiranshivaraju/tunehub/internal/config"
	"github.com/kiranshivaraju/tunehub/internal/finetune"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAIConfig() config.ProvidersConfig {
	return config.ProvidersConfig{
		Enabled: []string{"openai"},
		OpenAI: config.OpenAIConfig{
			APIKey:  "sk-test",
			BaseURL: "https://api.openai.com",
			Timeout: 30 * time.Second,
		},
	}
}

func TestNewProvider_OpenAI(t *testing.T) {
	p, err := finetune.NewProvider("openai", openAIConfig())
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, ok := p.AvailableParameters().Lookup("epochs")
	assert.True(t, ok)
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := finetune.NewProvider("unknown-provider", openAIConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown finetune provider")
	assert.Contains(t, err.Error(), "unknown-provider")
}

func TestNewProvider_Empty(t *testing.T) {
	_, err := finetune.NewProvider("", openAIConfig())
	require.Error(t, err)
}

func TestNewProviders(t *testing.T) {
	providers, err := finetune.NewProviders(openAIConfig())
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "openai", providers[0].Name())

	cfg := openAIConfig()
	cfg.Enabled = []string{"openai", "bogus"}
	_, err = finetune.NewProviders(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}
