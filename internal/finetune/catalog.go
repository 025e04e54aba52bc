package finetune

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog answers which base models a provider can fine-tune.
type Catalog interface {
	IsModelSupported(provider, model string) bool
}

// StaticCatalog is a read-only provider → models table.
type StaticCatalog struct {
	models map[string]map[string]bool
}

type catalogFile struct {
	Providers map[string][]string `yaml:"providers"`
}

// NewStaticCatalog builds a catalog from a provider → model ids map.
func NewStaticCatalog(providers map[string][]string) *StaticCatalog {
	c := &StaticCatalog{models: make(map[string]map[string]bool, len(providers))}
	for provider, ids := range providers {
		set := make(map[string]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		c.models[provider] = set
	}
	return c
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) (*StaticCatalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Providers) == 0 {
		return nil, fmt.Errorf("parse catalog: no providers declared")
	}
	return NewStaticCatalog(f.Providers), nil
}

// LoadCatalog reads the catalog at path, or the embedded default when path is empty.
func LoadCatalog(path string) (*StaticCatalog, error) {
	if path == "" {
		return ParseCatalog(defaultCatalogYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

func (c *StaticCatalog) IsModelSupported(provider, model string) bool {
	return c.models[provider][model]
}

// Providers lists the providers in the catalog, sorted.
func (c *StaticCatalog) Providers() []string {
	out := make([]string, 0, len(c.models))
	for p := range c.models {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// CheckValidProviderModel fails with an *UnsupportedModelError when the pair is not in the catalog.
func CheckValidProviderModel(c Catalog, provider, model string) error {
	if !c.IsModelSupported(provider, model) {
		return &UnsupportedModelError{Provider: provider, Model: model}
	}
	return nil
}

var _ Catalog = (*StaticCatalog)(nil)
