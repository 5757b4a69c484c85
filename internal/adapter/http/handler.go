package httpadapter

import (
	"net/http"

	"serene-banners/internal/core/port"

	"github.com/go-chi/chi/v5"
	"log/slog"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds a BannerUseCase to execute business logic and a logger for
// structured logging. Routes are registered on a chi.Router for convenient
// method handling.
type Handler struct {
	svc    port.BannerUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. It accepts a
// BannerUseCase implementation and a logger. The returned Handler registers
// handlers for each endpoint on a new chi.Router.
func NewHandler(svc port.BannerUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/placement", h.handlePlacement)
		r.Post("/events/shown", h.handleShown)
		r.Post("/events/dismissed", h.handleDismissed)
		r.Post("/destination/resolve", h.handleResolveDestination)
		r.Get("/stats/overview", h.handleStatsOverview)

		r.Route("/admin/banners", func(r chi.Router) {
			r.Post("/", h.handleCreateBanner)
			r.Get("/", h.handleListBanners)
			r.Get("/{id}", h.handleGetBanner)
			r.Put("/{id}", h.handleUpdateBanner)
			r.Delete("/{id}", h.handleDeleteBanner)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
