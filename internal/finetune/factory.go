package finetune

import (
	"fmt"

	"github.com/kiranshivaraju/tunehub/internal/config"
	"github.com/kiranshivaraju/tunehub/internal/finetune/openai"
	"github.com/kiranshivaraju/tunehub/pkg/models"
)

// NewProvider constructs the fine-tuning provider registered under name.
func NewProvider(name string, cfg config.ProvidersConfig) (models.FinetuneProvider, error) {
	switch name {
	case "openai":
		return openai.NewProvider(cfg.OpenAI), nil
	default:
		return nil, fmt.Errorf("unknown finetune provider %q: must be one of openai", name)
	}
}

// NewProviders constructs every provider enabled in cfg.
// Called once at server startup.
func NewProviders(cfg config.ProvidersConfig) ([]models.FinetuneProvider, error) {
	providers := make([]models.FinetuneProvider, 0, len(cfg.Enabled))
	for _, name := range cfg.Enabled {
		p, err := NewProvider(name, cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}
