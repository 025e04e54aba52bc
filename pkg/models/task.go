package models

// Task owns datasets and finetunes. Path is the task document on disk; an empty
// Path means the task has not been persisted.
type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Instruction string `json:"instruction"`

	Path string `json:"-"`
}

// Example is one training pair in a dataset split.
type Example struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// DatasetSplit is a frozen dataset partitioned into named splits ("train", "test", ...).
type DatasetSplit struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Splits      map[string][]Example `json:"split_contents"`

	parent *Task
}

// NewDatasetSplit returns a dataset split owned by parent.
func NewDatasetSplit(parent *Task, id, name string, splits map[string][]Example) *DatasetSplit {
	return &DatasetSplit{ID: id, Name: name, Splits: splits, parent: parent}
}

func (d *DatasetSplit) DatasetID() string { return d.ID }

// ParentTask returns the owning task, or nil for a detached split.
func (d *DatasetSplit) ParentTask() *Task { return d.parent }

// SetParentTask attaches the split to its owning task after loading.
func (d *DatasetSplit) SetParentTask(t *Task) { d.parent = t }

func (d *DatasetSplit) SplitContents() map[string][]Example { return d.Splits }
