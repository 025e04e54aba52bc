package finetune

import (
	"errors"
	"fmt"
)

var (
	ErrMissingParameter = errors.New("missing required parameter")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrTypeMismatch     = errors.New("parameter type mismatch")

	ErrNoParentTask  = errors.New("dataset must have a parent task with a path")
	ErrSplitNotFound = errors.New("split not found in dataset")

	ErrUnsupportedModel = errors.New("unsupported provider model")
	ErrUnknownProvider  = errors.New("no adapter registered for provider")
)

// ParameterError reports the parameter that failed validation. Err is one of
// ErrMissingParameter, ErrUnknownParameter or ErrTypeMismatch.
type ParameterError struct {
	Name string
	Err  error
	msg  string
}

func (e *ParameterError) Error() string { return e.msg }
func (e *ParameterError) Unwrap() error { return e.Err }

func missingParameter(name string) error {
	return &ParameterError{Name: name, Err: ErrMissingParameter, msg: fmt.Sprintf("Parameter %s is required", name)}
}

func unknownParameter(name string) error {
	return &ParameterError{Name: name, Err: ErrUnknownParameter, msg: fmt.Sprintf("Parameter %s is not available", name)}
}

func typeMismatch(name, want string) error {
	return &ParameterError{Name: name, Err: ErrTypeMismatch, msg: fmt.Sprintf("Parameter %s must be %s", name, want)}
}

// SplitError names the split that could not be found.
type SplitError struct {
	Split string
	Role  string // "Train" or "Validation"
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("%s split %s not found in dataset", e.Role, e.Split)
}

func (e *SplitError) Unwrap() error { return ErrSplitNotFound }

// UnsupportedModelError names the provider/model pair missing from the catalog.
type UnsupportedModelError struct {
	Provider string
	Model    string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("Provider %s with base model %s is not available", e.Provider, e.Model)
}

func (e *UnsupportedModelError) Unwrap() error { return ErrUnsupportedModel }
