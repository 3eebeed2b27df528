package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"warranty-vault/internal/handler"
	"warranty-vault/internal/middleware"
)

// Handlers bundles the HTTP handlers the router mounts.
type Handlers struct {
	Product    *handler.ProductHandler
	Dashboard  *handler.DashboardHandler
	Category   *handler.CategoryHandler
	Claim      *handler.ClaimHandler
	Profile    *handler.ProfileHandler
	Attachment *handler.AttachmentHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	// Health check endpoint (no user identity required)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.UserContext(logger))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Post("/", h.Product.Create)
			r.Get("/{id}", h.Product.Get)
			r.Put("/{id}", h.Product.Update)
			r.Delete("/{id}", h.Product.Delete)

			r.Get("/{id}/claims", h.Claim.ListByProduct)
			r.Post("/{id}/claims", h.Claim.Create)

			r.Post("/{id}/attachments/{kind}", h.Attachment.Upload)
			r.Get("/{id}/attachments/{kind}", h.Attachment.Download)
		})

		r.Put("/claims/{id}", h.Claim.Update)

		r.Get("/categories", h.Category.GetAll)
		r.Get("/dashboard", h.Dashboard.Overview)
		r.Get("/analytics", h.Dashboard.Analytics)
		r.Get("/expiring", h.Dashboard.Expiring)

		r.Get("/profile", h.Profile.Get)
		r.Put("/profile", h.Profile.Update)
	})

	return r
}
