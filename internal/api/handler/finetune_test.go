package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/tunehub/internal/finetune"
	"github.com/kiranshivaraju/tunehub/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFinetuneError(t *testing.T) {
	record := &models.Finetune{ID: uuid.New()}

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no parent task", finetune.ErrNoParentTask, http.StatusUnprocessableEntity, "NO_PARENT_TASK"},
		{"split", &finetune.SplitError{Split: "train", Role: "Train"}, http.StatusUnprocessableEntity, "SPLIT_NOT_FOUND"},
		{"unsupported model", &finetune.UnsupportedModelError{Provider: "openai", Model: "gpt-99"}, http.StatusBadRequest, "UNSUPPORTED_MODEL"},
		{"unknown provider", fmt.Errorf("%w: nope", finetune.ErrUnknownProvider), http.StatusNotFound, "UNKNOWN_PROVIDER"},
		{"start failed", &finetune.StartError{Finetune: record, Err: errors.New("boom")}, http.StatusBadGateway, "PROVIDER_START_FAILED"},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeFinetuneError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var env struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
			assert.Equal(t, tt.code, env.Error.Code)
			assert.NotEmpty(t, env.Error.Message)
		})
	}
}

func TestWriteFinetuneError_NoParentTaskMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeFinetuneError(rec, fmt.Errorf("resolve: %w", finetune.ErrNoParentTask))

	assert.Contains(t, rec.Body.String(), "Dataset must have a parent task with a path")
}

func TestWriteFinetuneError_SplitMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeFinetuneError(rec, &finetune.SplitError{Split: "valid", Role: "Validation"})

	assert.Contains(t, rec.Body.String(), "Validation split valid not found in dataset")
}
