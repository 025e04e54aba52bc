package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/tunehub/internal/finetune/mock"
	"github.com/kiranshivaraju/tunehub/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *models.Finetune {
	return &models.Finetune{ID: uuid.New(), Provider: "test_provider"}
}

// --- NewMockProvider ---

func TestNewMockProvider_Name(t *testing.T) {
	p := mock.NewMockProvider("test_provider")
	assert.Equal(t, "test_provider", p.Name())
}

func TestNewMockProvider_Parameters(t *testing.T) {
	schema := mock.NewMockProvider("test_provider").AvailableParameters()

	epochs, ok := schema.Lookup("epochs")
	require.True(t, ok)
	assert.False(t, epochs.Optional)
	assert.Equal(t, models.ParameterInt, epochs.Type)

	lr, ok := schema.Lookup("learning_rate")
	require.True(t, ok)
	assert.True(t, lr.Optional)
	assert.Equal(t, models.ParameterFloat, lr.Type)
}

func TestNewMockProvider_StartAssignsJobID(t *testing.T) {
	record := sampleRecord()
	adapter := mock.NewMockProvider("test_provider").NewAdapter(record)

	require.NoError(t, adapter.Start(context.Background(), nil))
	assert.Equal(t, "mock-"+record.ID.String(), record.ProviderID)
	assert.Same(t, record, adapter.Finetune())

	status := adapter.Status(context.Background())
	assert.Equal(t, models.FinetuneStatusPending, status.Status)
	assert.Equal(t, "loading...", status.Message)
}

// --- NewFailingProvider ---

func TestNewFailingProvider_Start(t *testing.T) {
	boom := errors.New("boom")
	record := sampleRecord()

	err := mock.NewFailingProvider("failing_provider", boom).NewAdapter(record).Start(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, record.ProviderID)
}

// --- zero-value MockProvider ---

func TestMockProvider_Defaults(t *testing.T) {
	p := &mock.MockProvider{Name_: "bare"}
	adapter := p.NewAdapter(sampleRecord())

	assert.Empty(t, p.AvailableParameters())
	assert.NoError(t, adapter.Start(context.Background(), nil))
	assert.False(t, adapter.Finetune().Started())
	assert.Equal(t, models.FinetuneStatusUnknown, adapter.Status(context.Background()).Status)
}
