package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kiranshivaraju/tunehub/internal/api/response"
	"github.com/kiranshivaraju/tunehub/internal/finetune"
	"github.com/kiranshivaraju/tunehub/internal/store"
	"github.com/kiranshivaraju/tunehub/pkg/models"
)

// FinetuneService is the subset of finetune.Service the handlers depend on.
type FinetuneService interface {
	AvailableParameters(provider string) (models.ParameterSchema, error)
	ValidateParameters(provider string, params models.Parameters) error
	CheckValidProviderModel(provider, model string) error
	CreateAndStart(ctx context.Context, params finetune.CreateParams) (models.FinetuneAdapter, *models.Finetune, error)
	Status(ctx context.Context, record *models.Finetune) (models.FinetuneStatus, error)
}

// Finetunes serves the provider and finetune endpoints.
type Finetunes struct {
	svc   FinetuneService
	store store.Store
}

// NewFinetunes creates the finetune handlers.
func NewFinetunes(svc FinetuneService, st store.Store) *Finetunes {
	return &Finetunes{svc: svc, store: st}
}

// Parameters handles GET /api/v1/providers/{provider}/parameters.
func (h *Finetunes) Parameters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schema, err := h.svc.AvailableParameters(chi.URLParam(r, "provider"))
		if err != nil {
			writeFinetuneError(w, err)
			return
		}
		response.JSON(w, schema)
	}
}

// ValidateParameters handles POST /api/v1/providers/{provider}/parameters/validate.
func (h *Finetunes) ValidateParameters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Parameters models.Parameters `json:"parameters"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, response.CodeInvalidRequest, "Invalid JSON body", nil)
			return
		}

		if err := h.svc.ValidateParameters(chi.URLParam(r, "provider"), req.Parameters); err != nil {
			writeFinetuneError(w, err)
			return
		}
		response.JSON(w, map[string]bool{"valid": true})
	}
}

// CheckModel handles POST /api/v1/providers/{provider}/models/check.
// Model ids may contain slashes, so the model travels in the body.
func (h *Finetunes) CheckModel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, response.CodeInvalidRequest, "Invalid JSON body", nil)
			return
		}
		if req.Model == "" {
			response.Error(w, http.StatusBadRequest, response.CodeInvalidRequest, "model is required", nil)
			return
		}

		if err := h.svc.CheckValidProviderModel(chi.URLParam(r, "provider"), req.Model); err != nil {
			writeFinetuneError(w, err)
			return
		}
		response.JSON(w, map[string]bool{"supported": true})
	}
}

type createFinetuneRequest struct {
	DatasetSplitID      string            `json:"dataset_split_id"`
	Provider            string            `json:"provider"`
	BaseModelID         string            `json:"base_model_id"`
	TrainSplitName      string            `json:"train_split_name"`
	ValidationSplitName string            `json:"validation_split_name"`
	Parameters          models.Parameters `json:"parameters"`
	Name                string            `json:"name"`
	Description         string            `json:"description"`
	SystemMessage       string            `json:"system_message"`
}

// Create handles POST /api/v1/tasks/{taskID}/finetunes.
func (h *Finetunes) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFinetuneRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, response.CodeInvalidRequest, "Invalid JSON body", nil)
			return
		}

		switch {
		case req.DatasetSplitID == "":
			response.Error(w, http.StatusBadRequest, response.CodeInvalidRequest, "dataset_split_id is required", nil)
			return
		case req.Provider == "":
			response.Error(w, http.StatusBadRequest, response.CodeInvalidRequest, "provider is required", nil)
			return
		case req.BaseModelID == "":
			response.Error(w, http.StatusBadRequest, response.CodeInvalidRequest, "base_model_id is required", nil)
			return
		case req.TrainSplitName == "":
			response.Error(w, http.StatusBadRequest, response.CodeInvalidRequest, "train_split_name is required", nil)
			return
		}

		task, ok := h.task(w, r)
		if !ok {
			return
		}

		dataset, err := h.store.GetDatasetSplit(r.Context(), task, req.DatasetSplitID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, response.CodeNotFound, "Dataset split not found", nil)
				return
			}
			slog.Error("loading dataset split failed", "error", err, "dataset_split_id", req.DatasetSplitID)
			response.Error(w, http.StatusInternalServerError, response.CodeInternal, "An unexpected error occurred", nil)
			return
		}

		_, record, err := h.svc.CreateAndStart(r.Context(), finetune.CreateParams{
			Dataset:             dataset,
			ProviderID:          req.Provider,
			BaseModelID:         req.BaseModelID,
			TrainSplitName:      req.TrainSplitName,
			ValidationSplitName: req.ValidationSplitName,
			Parameters:          req.Parameters,
			Name:                req.Name,
			Description:         req.Description,
			SystemMessage:       req.SystemMessage,
		})
		if err != nil {
			writeFinetuneError(w, err)
			return
		}

		response.Created(w, record)
	}
}

// List handles GET /api/v1/tasks/{taskID}/finetunes.
func (h *Finetunes) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		task, ok := h.task(w, r)
		if !ok {
			return
		}

		records, err := h.store.ListFinetunes(r.Context(), task)
		if err != nil {
			slog.Error("listing finetunes failed", "error", err, "task_id", task.ID)
			response.Error(w, http.StatusInternalServerError, response.CodeInternal, "An unexpected error occurred", nil)
			return
		}
		response.JSON(w, records)
	}
}

// Get handles GET /api/v1/tasks/{taskID}/finetunes/{finetuneID}.
func (h *Finetunes) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := h.finetune(w, r)
		if !ok {
			return
		}
		response.JSON(w, record)
	}
}

// Status handles GET /api/v1/tasks/{taskID}/finetunes/{finetuneID}/status.
// Every call asks the provider.
func (h *Finetunes) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := h.finetune(w, r)
		if !ok {
			return
		}

		status, err := h.svc.Status(r.Context(), record)
		if err != nil {
			writeFinetuneError(w, err)
			return
		}
		response.JSON(w, status)
	}
}

func (h *Finetunes) task(w http.ResponseWriter, r *http.Request) (*models.Task, bool) {
	task, err := h.store.GetTask(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, response.CodeNotFound, "Task not found", nil)
			return nil, false
		}
		slog.Error("loading task failed", "error", err)
		response.Error(w, http.StatusInternalServerError, response.CodeInternal, "An unexpected error occurred", nil)
		return nil, false
	}
	return task, true
}

func (h *Finetunes) finetune(w http.ResponseWriter, r *http.Request) (*models.Finetune, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "finetuneID"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidRequest, "finetuneID must be a UUID", nil)
		return nil, false
	}

	task, ok := h.task(w, r)
	if !ok {
		return nil, false
	}

	record, err := h.store.GetFinetune(r.Context(), task, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, response.CodeNotFound, "Finetune not found", nil)
			return nil, false
		}
		slog.Error("loading finetune failed", "error", err, "finetune_id", id)
		response.Error(w, http.StatusInternalServerError, response.CodeInternal, "An unexpected error occurred", nil)
		return nil, false
	}
	return record, true
}

// writeFinetuneError maps service errors onto HTTP responses.
func writeFinetuneError(w http.ResponseWriter, err error) {
	var (
		paramErr *finetune.ParameterError
		splitErr *finetune.SplitError
		modelErr *finetune.UnsupportedModelError
		startErr *finetune.StartError
	)

	switch {
	case errors.As(err, &paramErr):
		code := response.CodeTypeMismatch
		switch {
		case errors.Is(err, finetune.ErrMissingParameter):
			code = response.CodeMissingParameter
		case errors.Is(err, finetune.ErrUnknownParameter):
			code = response.CodeUnknownParameter
		}
		response.Error(w, http.StatusUnprocessableEntity, code, paramErr.Error(),
			map[string]string{"parameter": paramErr.Name})
	case errors.As(err, &splitErr):
		response.Error(w, http.StatusUnprocessableEntity, response.CodeSplitNotFound, splitErr.Error(),
			map[string]string{"split": splitErr.Split})
	case errors.Is(err, finetune.ErrNoParentTask):
		response.Error(w, http.StatusUnprocessableEntity, response.CodeNoParentTask, "Dataset must have a parent task with a path", nil)
	case errors.As(err, &modelErr):
		response.Error(w, http.StatusBadRequest, response.CodeUnsupportedModel, modelErr.Error(), nil)
	case errors.Is(err, finetune.ErrUnknownProvider):
		response.Error(w, http.StatusNotFound, response.CodeUnknownProvider, "No fine-tuning adapter for this provider", nil)
	case errors.As(err, &startErr):
		response.Error(w, http.StatusBadGateway, response.CodeProviderStartFailed,
			"The finetune was saved but the provider did not start it",
			map[string]string{"finetune_id": startErr.Finetune.ID.String()})
	default:
		slog.Error("finetune request failed", "error", err)
		response.Error(w, http.StatusInternalServerError, response.CodeInternal, "An unexpected error occurred", nil)
	}
}
