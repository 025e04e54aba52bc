package models

import (
	"context"
	"fmt"
)

// FinetuneProvider is implemented once per fine-tuning backend. It declares the
// backend's parameters and binds job records to adapters.
type FinetuneProvider interface {
	// Name returns the provider identifier (e.g., "openai").
	Name() string
	// AvailableParameters returns the parameters this backend accepts. It needs no job state.
	AvailableParameters() ParameterSchema
	// NewAdapter binds an adapter to a job record.
	NewAdapter(record *Finetune) FinetuneAdapter
}

// FinetuneAdapter drives one job on its provider.
type FinetuneAdapter interface {
	// Start submits the job. On success the adapter sets the record's ProviderID.
	Start(ctx context.Context, dataset Dataset) error
	// Status asks the provider for the job's current state on every call. It reports
	// FinetuneStatusUnknown when the provider cannot be reached or the job has no ProviderID.
	Status(ctx context.Context) FinetuneStatus
	// Finetune returns the bound record.
	Finetune() *Finetune
}

// Dataset is the read-only view of a dataset split that fine-tuning needs.
type Dataset interface {
	DatasetID() string
	ParentTask() *Task
	SplitContents() map[string][]Example
}

// ParameterSchema is the ordered set of parameters a provider accepts. Names are unique.
type ParameterSchema []ParameterDescriptor

// NewParameterSchema builds a schema, rejecting duplicate names and unsupported types.
func NewParameterSchema(params ...ParameterDescriptor) (ParameterSchema, error) {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if p.Name == "" {
			return nil, fmt.Errorf("parameter name is required")
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate parameter %q in schema", p.Name)
		}
		if !p.Type.Valid() {
			return nil, fmt.Errorf("parameter %q has unsupported type %q", p.Name, p.Type)
		}
		seen[p.Name] = true
	}
	return ParameterSchema(params), nil
}

// MustParameterSchema is NewParameterSchema for static provider declarations.
func MustParameterSchema(params ...ParameterDescriptor) ParameterSchema {
	s, err := NewParameterSchema(params...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the descriptor named name.
func (s ParameterSchema) Lookup(name string) (ParameterDescriptor, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterDescriptor{}, false
}
