package finetune

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/tunehub/pkg/models"
)

// RecordStore persists finetune records under their parent task.
// SaveFinetune must write each record atomically and set its Path.
type RecordStore interface {
	SaveFinetune(ctx context.Context, task *models.Task, ft *models.Finetune) error
	ListFinetunes(ctx context.Context, task *models.Task) ([]*models.Finetune, error)
}

// CreateParams holds the inputs to CreateAndStart. Name, Description and
// ValidationSplitName are optional; empty means omitted.
type CreateParams struct {
	Dataset             models.Dataset
	ProviderID          string
	BaseModelID         string
	TrainSplitName      string
	ValidationSplitName string
	Parameters          models.Parameters
	Name                string
	Description         string
	SystemMessage       string
}

// StartError is returned when a record was persisted but the provider start, or the
// write-back of the provider job id, failed. The record remains on disk.
type StartError struct {
	Finetune *models.Finetune
	Err      error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("start finetune %s: %v", e.Finetune.ID, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

const defaultNameLayout = "2006-01-02 15:04:05"

// Service creates fine-tuning jobs and binds stored records back to their providers.
type Service struct {
	catalog   Catalog
	store     RecordStore
	providers map[string]models.FinetuneProvider
	now       func() time.Time
}

// NewService creates a new Service. Providers are keyed by Name().
func NewService(catalog Catalog, st RecordStore, providers ...models.FinetuneProvider) *Service {
	byName := make(map[string]models.FinetuneProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &Service{
		catalog:   catalog,
		store:     st,
		providers: byName,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CheckValidProviderModel fails with ErrUnsupportedModel if the catalog lacks the pair.
func (s *Service) CheckValidProviderModel(provider, model string) error {
	return CheckValidProviderModel(s.catalog, provider, model)
}

// AvailableParameters returns the schema declared by provider.
func (s *Service) AvailableParameters(provider string) (models.ParameterSchema, error) {
	p, err := s.provider(provider)
	if err != nil {
		return nil, err
	}
	return p.AvailableParameters(), nil
}

// ValidateParameters checks params against provider's schema.
func (s *Service) ValidateParameters(provider string, params models.Parameters) error {
	schema, err := s.AvailableParameters(provider)
	if err != nil {
		return err
	}
	return ValidateParameters(params, schema)
}

// CreateAndStart validates the request, persists the record under the dataset's task,
// then starts the job on the provider. Validation failures return before anything is
// written. A start failure returns a *StartError and leaves the saved record behind
// with an empty ProviderID; see Orphans.
func (s *Service) CreateAndStart(ctx context.Context, params CreateParams) (models.FinetuneAdapter, *models.Finetune, error) {
	if err := s.CheckValidProviderModel(params.ProviderID, params.BaseModelID); err != nil {
		return nil, nil, err
	}

	provider, err := s.provider(params.ProviderID)
	if err != nil {
		return nil, nil, err
	}

	// A dataset without a persisted task is rejected before its parameters are looked at.
	task, err := parentTask(params.Dataset)
	if err != nil {
		return nil, nil, err
	}

	if err := ValidateParameters(params.Parameters, provider.AvailableParameters()); err != nil {
		return nil, nil, err
	}

	if err := ResolveSplits(params.Dataset, params.TrainSplitName, params.ValidationSplitName); err != nil {
		return nil, nil, err
	}

	record := s.newRecord(params)

	if err := s.store.SaveFinetune(ctx, task, record); err != nil {
		return nil, nil, fmt.Errorf("saving finetune: %w", err)
	}
	slog.Info("finetune created",
		"finetune_id", record.ID, "provider", record.Provider, "model", record.BaseModelID, "path", record.Path)

	adapter := provider.NewAdapter(record)
	if err := adapter.Start(ctx, params.Dataset); err != nil {
		slog.Error("finetune start failed", "finetune_id", record.ID, "provider", record.Provider, "error", err)
		return nil, nil, &StartError{Finetune: record, Err: err}
	}

	if record.Started() {
		if err := s.store.SaveFinetune(ctx, task, record); err != nil {
			slog.Error("saving provider job id failed",
				"finetune_id", record.ID, "provider_id", record.ProviderID, "error", err)
			return nil, nil, &StartError{Finetune: record, Err: fmt.Errorf("saving provider job id: %w", err)}
		}
	}
	slog.Info("finetune started", "finetune_id", record.ID, "provider", record.Provider, "provider_id", record.ProviderID)

	return adapter, record, nil
}

// Adapter binds a stored record to its provider's adapter.
func (s *Service) Adapter(record *models.Finetune) (models.FinetuneAdapter, error) {
	p, err := s.provider(record.Provider)
	if err != nil {
		return nil, err
	}
	return p.NewAdapter(record), nil
}

// Status asks the record's provider for the job's current state. Nothing is cached.
func (s *Service) Status(ctx context.Context, record *models.Finetune) (models.FinetuneStatus, error) {
	adapter, err := s.Adapter(record)
	if err != nil {
		return models.FinetuneStatus{}, err
	}
	return adapter.Status(ctx), nil
}

// Orphans lists task records that were persisted but never started on their provider.
func (s *Service) Orphans(ctx context.Context, task *models.Task) ([]*models.Finetune, error) {
	records, err := s.store.ListFinetunes(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("listing finetunes: %w", err)
	}
	var orphans []*models.Finetune
	for _, r := range records {
		if !r.Started() {
			orphans = append(orphans, r)
		}
	}
	return orphans, nil
}

func (s *Service) provider(name string) (models.FinetuneProvider, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

func (s *Service) newRecord(params CreateParams) *models.Finetune {
	now := s.now()

	name := params.Name
	if name == "" {
		name = fmt.Sprintf("%s - %s", params.BaseModelID, now.Format(defaultNameLayout))
	}

	record := &models.Finetune{
		ID:             uuid.New(),
		Name:           name,
		Provider:       params.ProviderID,
		BaseModelID:    params.BaseModelID,
		DatasetSplitID: params.Dataset.DatasetID(),
		TrainSplitName: params.TrainSplitName,
		Parameters:     params.Parameters,
		SystemMessage:  params.SystemMessage,
		CreatedAt:      now,
	}
	if params.Description != "" {
		desc := params.Description
		record.Description = &desc
	}
	if params.ValidationSplitName != "" {
		v := params.ValidationSplitName
		record.ValidationSplitName = &v
	}
	if record.Parameters == nil {
		record.Parameters = models.Parameters{}
	}
	return record
}
