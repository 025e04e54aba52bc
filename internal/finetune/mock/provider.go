package mock

import (
	"context"

	"github.com/kiranshivaraju/tunehub/pkg/models"
)

// MockProvider satisfies models.FinetuneProvider for testing.
type MockProvider struct {
	Name_      string
	Parameters models.ParameterSchema
	StartFunc  func(ctx context.Context, record *models.Finetune, dataset models.Dataset) error
	StatusFunc func(ctx context.Context, record *models.Finetune) models.FinetuneStatus
}

func (m *MockProvider) Name() string { return m.Name_ }

func (m *MockProvider) AvailableParameters() models.ParameterSchema { return m.Parameters }

func (m *MockProvider) NewAdapter(record *models.Finetune) models.FinetuneAdapter {
	return &MockAdapter{provider: m, record: record}
}

// MockAdapter delegates to its provider's func fields.
type MockAdapter struct {
	provider *MockProvider
	record   *models.Finetune
}

func (a *MockAdapter) Finetune() *models.Finetune { return a.record }

func (a *MockAdapter) Start(ctx context.Context, dataset models.Dataset) error {
	if a.provider.StartFunc != nil {
		return a.provider.StartFunc(ctx, a.record, dataset)
	}
	return nil
}

func (a *MockAdapter) Status(ctx context.Context) models.FinetuneStatus {
	if a.provider.StatusFunc != nil {
		return a.provider.StatusFunc(ctx, a.record)
	}
	return models.FinetuneStatus{Status: models.FinetuneStatusUnknown}
}

// NewMockProvider returns a provider named name that requires an int "epochs",
// accepts an optional float "learning_rate", assigns a job id on start and
// always reports pending.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		Name_: name,
		Parameters: models.MustParameterSchema(
			models.OptionalParam("learning_rate", models.ParameterFloat, "Learning rate for training"),
			models.RequiredParam("epochs", models.ParameterInt, "Number of training epochs"),
		),
		StartFunc: func(_ context.Context, record *models.Finetune, _ models.Dataset) error {
			record.ProviderID = "mock-" + record.ID.String()
			return nil
		},
		StatusFunc: func(_ context.Context, _ *models.Finetune) models.FinetuneStatus {
			return models.FinetuneStatus{Status: models.FinetuneStatusPending, Message: "loading..."}
		},
	}
}

// NewFailingProvider returns a mock provider whose Start always returns err.
func NewFailingProvider(name string, err error) *MockProvider {
	p := NewMockProvider(name)
	p.StartFunc = func(_ context.Context, _ *models.Finetune, _ models.Dataset) error {
		return err
	}
	return p
}

// Compile-time checks.
var (
	_ models.FinetuneProvider = (*MockProvider)(nil)
	_ models.FinetuneAdapter  = (*MockAdapter)(nil)
)
