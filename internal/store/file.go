package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/tunehub/pkg/models"
)

const (
	taskFile         = "task.json"
	datasetSplitFile = "dataset_split.json"
	finetuneFile     = "finetune.json"

	datasetSplitsDir = "dataset_splits"
	finetunesDir     = "finetunes"
)

// FileStore implements Store as JSON documents in a directory tree:
//
//	<root>/<task id>/task.json
//	<root>/<task id>/dataset_splits/<split id>/dataset_split.json
//	<root>/<task id>/finetunes/<finetune id>/finetune.json
//
// Children are always written next to their task's Path, wherever that task lives.
// Every write goes to a temp file in the target directory and is renamed into place.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

// Ping checks the root directory is present.
func (s *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", s.root)
	}
	return nil
}

// --- Tasks ---

func (s *FileStore) GetTask(_ context.Context, taskID string) (*models.Task, error) {
	if !validID(taskID) {
		return nil, ErrNotFound
	}
	path := filepath.Join(s.root, taskID, taskFile)

	var t models.Task
	if err := readJSON(path, &t); err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	t.Path = path
	return &t, nil
}

func (s *FileStore) SaveTask(_ context.Context, task *models.Task) error {
	if !validID(task.ID) {
		return fmt.Errorf("save task: invalid id %q", task.ID)
	}
	path := task.Path
	if path == "" {
		path = filepath.Join(s.root, task.ID, taskFile)
	}
	if err := writeJSON(path, task); err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	task.Path = path
	return nil
}

// --- Dataset splits ---

func (s *FileStore) GetDatasetSplit(_ context.Context, task *models.Task, id string) (*models.DatasetSplit, error) {
	dir, err := childDir(task, datasetSplitsDir)
	if err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, ErrNotFound
	}

	var ds models.DatasetSplit
	if err := readJSON(filepath.Join(dir, id, datasetSplitFile), &ds); err != nil {
		return nil, fmt.Errorf("get dataset split: %w", err)
	}
	ds.SetParentTask(task)
	return &ds, nil
}

func (s *FileStore) SaveDatasetSplit(_ context.Context, task *models.Task, ds *models.DatasetSplit) error {
	dir, err := childDir(task, datasetSplitsDir)
	if err != nil {
		return err
	}
	if !validID(ds.ID) {
		return fmt.Errorf("save dataset split: invalid id %q", ds.ID)
	}
	if err := writeJSON(filepath.Join(dir, ds.ID, datasetSplitFile), ds); err != nil {
		return fmt.Errorf("save dataset split: %w", err)
	}
	ds.SetParentTask(task)
	return nil
}

// --- Finetunes ---

// SaveFinetune writes ft under task and sets ft.Path. Saving again overwrites in place.
func (s *FileStore) SaveFinetune(_ context.Context, task *models.Task, ft *models.Finetune) error {
	dir, err := childDir(task, finetunesDir)
	if err != nil {
		return err
	}
	if ft.ID == uuid.Nil {
		return fmt.Errorf("save finetune: id is required")
	}
	path := filepath.Join(dir, ft.ID.String(), finetuneFile)
	if err := writeJSON(path, ft); err != nil {
		return fmt.Errorf("save finetune: %w", err)
	}
	ft.Path = path
	return nil
}

func (s *FileStore) LoadFinetune(_ context.Context, path string) (*models.Finetune, error) {
	var ft models.Finetune
	if err := readJSON(path, &ft); err != nil {
		return nil, fmt.Errorf("load finetune: %w", err)
	}
	ft.Path = path
	return &ft, nil
}

func (s *FileStore) GetFinetune(ctx context.Context, task *models.Task, id uuid.UUID) (*models.Finetune, error) {
	dir, err := childDir(task, finetunesDir)
	if err != nil {
		return nil, err
	}
	return s.LoadFinetune(ctx, filepath.Join(dir, id.String(), finetuneFile))
}

// ListFinetunes returns the task's records ordered by creation time.
func (s *FileStore) ListFinetunes(ctx context.Context, task *models.Task) ([]*models.Finetune, error) {
	dir, err := childDir(task, finetunesDir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []*models.Finetune{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list finetunes: %w", err)
	}

	records := make([]*models.Finetune, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		ft, err := s.LoadFinetune(ctx, filepath.Join(dir, e.Name(), finetuneFile))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, ft)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// childDir returns the directory holding kind children of a persisted task.
func childDir(task *models.Task, kind string) (string, error) {
	if task == nil || task.Path == "" {
		return "", fmt.Errorf("task has no path")
	}
	return filepath.Join(filepath.Dir(task.Path), kind), nil
}

// validID rejects ids that would escape their directory.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// writeJSON replaces path atomically: readers see the old document or the new one, never a mix.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

var _ Store = (*FileStore)(nil)
