package finetune

import "github.com/kiranshivaraju/tunehub/pkg/models"

// ResolveSplits confirms the dataset is owned by a persisted task and that the named
// splits exist. An empty validation name means no validation split.
func ResolveSplits(dataset models.Dataset, train, validation string) error {
	if _, err := parentTask(dataset); err != nil {
		return err
	}

	splits := dataset.SplitContents()
	if _, ok := splits[train]; !ok {
		return &SplitError{Split: train, Role: "Train"}
	}
	if validation != "" {
		if _, ok := splits[validation]; !ok {
			return &SplitError{Split: validation, Role: "Validation"}
		}
	}
	return nil
}

func parentTask(dataset models.Dataset) (*models.Task, error) {
	task := dataset.ParentTask()
	if task == nil || task.Path == "" {
		return nil, ErrNoParentTask
	}
	return task, nil
}
