package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/tunehub/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store reads tasks and datasets and persists finetune records beneath their task.
type Store interface {
	Ping(ctx context.Context) error

	GetTask(ctx context.Context, taskID string) (*models.Task, error)
	SaveTask(ctx context.Context, task *models.Task) error

	GetDatasetSplit(ctx context.Context, task *models.Task, id string) (*models.DatasetSplit, error)
	SaveDatasetSplit(ctx context.Context, task *models.Task, ds *models.DatasetSplit) error

	SaveFinetune(ctx context.Context, task *models.Task, ft *models.Finetune) error
	LoadFinetune(ctx context.Context, path string) (*models.Finetune, error)
	GetFinetune(ctx context.Context, task *models.Task, id uuid.UUID) (*models.Finetune, error)
	ListFinetunes(ctx context.Context, task *models.Task) ([]*models.Finetune, error)
}

// KeyStore holds API keys for request authentication.
type KeyStore interface {
	Ping(ctx context.Context) error
	GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	RevokeAPIKey(ctx context.Context, id uuid.UUID) error
}
