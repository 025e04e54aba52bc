package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	FinetuneStatusPending   = "pending"
	FinetuneStatusRunning   = "running"
	FinetuneStatusCompleted = "completed"
	FinetuneStatusFailed    = "failed"
	FinetuneStatusUnknown   = "unknown"
)

// Finetune is the persisted record of one fine-tuning job. It lives under its parent
// task and is written when created, then once more when the provider assigns a job id.
// ProviderID stays empty for a record whose provider start never succeeded.
type Finetune struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Description         *string    `json:"description,omitempty"`
	Provider            string     `json:"provider"`
	ProviderID          string     `json:"provider_id,omitempty"`
	BaseModelID         string     `json:"base_model_id"`
	DatasetSplitID      string     `json:"dataset_split_id"`
	TrainSplitName      string     `json:"train_split_name"`
	ValidationSplitName *string    `json:"validation_split_name,omitempty"`
	Parameters          Parameters `json:"parameters"`
	SystemMessage       string     `json:"system_message"`
	CreatedAt           time.Time  `json:"created_at"`

	// Path is the file the record was saved to; empty until saved.
	Path string `json:"-"`
}

// Started reports whether the provider has accepted the job.
func (f *Finetune) Started() bool {
	return f.ProviderID != ""
}

// FinetuneStatus is a point-in-time answer from the provider. It is never persisted.
type FinetuneStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
