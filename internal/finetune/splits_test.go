package finetune_test

import (
	"errors"
	"testing"

	"github.com/kiranshivaraju/tunehub/internal/finetune"
	"github.com/kiranshivaraju/tunehub/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func persistedTask() *models.Task {
	return &models.Task{ID: "task-1", Name: "Task", Path: "/data/task-1/task.json"}
}

func splitDataset(parent *models.Task, names ...string) *models.DatasetSplit {
	splits := make(map[string][]models.Example, len(names))
	for _, n := range names {
		splits[n] = []models.Example{}
	}
	return models.NewDatasetSplit(parent, "split-1", "Split", splits)
}

func TestResolveSplits_Valid(t *testing.T) {
	ds := splitDataset(persistedTask(), "train", "validation", "test")

	assert.NoError(t, finetune.ResolveSplits(ds, "train", ""))
	assert.NoError(t, finetune.ResolveSplits(ds, "train", "validation"))
}

func TestResolveSplits_TrainNotFound(t *testing.T) {
	ds := splitDataset(persistedTask(), "valid_train", "valid_test")

	err := finetune.ResolveSplits(ds, "invalid_train", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, finetune.ErrSplitNotFound)
	assert.Equal(t, "Train split invalid_train not found in dataset", err.Error())

	var se *finetune.SplitError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "invalid_train", se.Split)
}

func TestResolveSplits_ValidationNotFound(t *testing.T) {
	ds := splitDataset(persistedTask(), "valid_train", "valid_test")

	err := finetune.ResolveSplits(ds, "valid_train", "invalid_test")
	require.Error(t, err)
	assert.ErrorIs(t, err, finetune.ErrSplitNotFound)
	assert.Equal(t, "Validation split invalid_test not found in dataset", err.Error())
}

func TestResolveSplits_NoParentTask(t *testing.T) {
	ds := splitDataset(nil, "train")

	err := finetune.ResolveSplits(ds, "train", "")
	assert.ErrorIs(t, err, finetune.ErrNoParentTask)
}

func TestResolveSplits_ParentTaskWithoutPath(t *testing.T) {
	ds := splitDataset(&models.Task{ID: "unsaved"}, "train")

	err := finetune.ResolveSplits(ds, "train", "")
	assert.ErrorIs(t, err, finetune.ErrNoParentTask)
}

func TestResolveSplits_ParentCheckedBeforeSplits(t *testing.T) {
	ds := splitDataset(nil)

	err := finetune.ResolveSplits(ds, "missing", "")
	assert.ErrorIs(t, err, finetune.ErrNoParentTask)
}
