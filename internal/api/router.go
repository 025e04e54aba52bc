package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	mw "github.com/kiranshivaraju/tunehub/internal/api/middleware"
	"github.com/kiranshivaraju/tunehub/internal/api/response"
	"github.com/kiranshivaraju/tunehub/pkg/models"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit

	HealthHandler http.HandlerFunc

	ProviderParameters http.HandlerFunc
	ValidateParameters http.HandlerFunc
	CheckModel         http.HandlerFunc

	CreateFinetune http.HandlerFunc
	ListFinetunes  http.HandlerFunc
	GetFinetune    http.HandlerFunc
	FinetuneStatus http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.RateLimit.Limit)

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireScope(models.ScopeFinetunesRead))

			r.Get("/api/v1/providers/{provider}/parameters", orNotImplemented(deps.ProviderParameters))
			r.Post("/api/v1/providers/{provider}/parameters/validate", orNotImplemented(deps.ValidateParameters))
			r.Post("/api/v1/providers/{provider}/models/check", orNotImplemented(deps.CheckModel))

			r.Get("/api/v1/tasks/{taskID}/finetunes", orNotImplemented(deps.ListFinetunes))
			r.Get("/api/v1/tasks/{taskID}/finetunes/{finetuneID}", orNotImplemented(deps.GetFinetune))
			r.Get("/api/v1/tasks/{taskID}/finetunes/{finetuneID}/status", orNotImplemented(deps.FinetuneStatus))
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireScope(models.ScopeFinetunesWrite))

			r.Post("/api/v1/tasks/{taskID}/finetunes", orNotImplemented(deps.CreateFinetune))
		})
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, response.CodeNotImplemented, "Endpoint not yet implemented", nil)
	}
}
