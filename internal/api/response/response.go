package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error codes returned in the error envelope.
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeRateLimited         = "RATE_LIMIT_EXCEEDED"
	CodeMissingParameter    = "MISSING_PARAMETER"
	CodeUnknownParameter    = "UNKNOWN_PARAMETER"
	CodeTypeMismatch        = "TYPE_MISMATCH"
	CodeNoParentTask        = "NO_PARENT_TASK"
	CodeSplitNotFound       = "SPLIT_NOT_FOUND"
	CodeUnsupportedModel    = "UNSUPPORTED_MODEL"
	CodeUnknownProvider     = "UNKNOWN_PROVIDER"
	CodeProviderStartFailed = "PROVIDER_START_FAILED"
	CodeDegraded            = "DEGRADED"
	CodeNotImplemented      = "NOT_IMPLEMENTED"
	CodeInternal            = "INTERNAL_ERROR"
)

type envelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Data: data})
}

func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, envelope{Data: data})
}

func Error(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response failed", "error", err)
	}
}
