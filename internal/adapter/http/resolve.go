package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"serene-banners/internal/core/domain"
)

// handleResolveDestination resolves a destination into a label and a
// navigation target. Resolution never fails for a well-formed body: unknown
// kinds and missing lookup entries degrade inside the resolver.
func (h *Handler) handleResolveDestination(w http.ResponseWriter, r *http.Request) {
	var dest domain.Destination
	if err := json.NewDecoder(r.Body).Decode(&dest); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	resolved, err := h.svc.ResolveDestination(r.Context(), dest)
	if err != nil {
		h.logger.Error("resolve error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(resolved); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
