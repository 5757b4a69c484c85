package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"serene-banners/internal/core/domain"
	"serene-banners/internal/core/port"
)

// handleCreateBanner stores a new banner. Validation failures (unknown
// enum values, destination invariant violations) produce HTTP 400 with the
// validation message.
func (h *Handler) handleCreateBanner(w http.ResponseWriter, r *http.Request) {
	var b domain.Banner
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.svc.CreateBanner(r.Context(), &b); err != nil {
		h.writeBannerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&b); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// handleListBanners returns every banner, newest first.
func (h *Handler) handleListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.svc.ListBanners(r.Context())
	if err != nil {
		h.logger.Error("list banners error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(banners); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// handleGetBanner returns one banner by the {id} path parameter.
func (h *Handler) handleGetBanner(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid banner id", http.StatusBadRequest)
		return
	}
	b, err := h.svc.GetBanner(r.Context(), id)
	if err != nil {
		h.writeBannerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(b); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// handleUpdateBanner replaces a banner identified by the {id} path
// parameter.
func (h *Handler) handleUpdateBanner(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid banner id", http.StatusBadRequest)
		return
	}
	var b domain.Banner
	if err = json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	b.ID = id
	if err = h.svc.UpdateBanner(r.Context(), &b); err != nil {
		h.writeBannerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(&b); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// handleDeleteBanner removes a banner by id.
func (h *Handler) handleDeleteBanner(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid banner id", http.StatusBadRequest)
		return
	}
	if err = h.svc.DeleteBanner(r.Context(), id); err != nil {
		h.writeBannerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeBannerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrBannerNotFound):
		http.Error(w, "banner not found", http.StatusNotFound)
	case errors.Is(err, port.ErrInvalidBanner):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("banner admin error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
