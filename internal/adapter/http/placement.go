package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"serene-banners/internal/core/domain"
	"serene-banners/internal/core/port"
)

// placementRequest is the JSON body for a placement evaluation. The
// optional now field lets clients evaluate against their own clock;
// absent, the server clock applies.
type placementRequest struct {
	Location   domain.DisplayLocation `json:"location"`
	UserID     string                 `json:"user_id"`
	PlaylistID string                 `json:"playlist_id,omitempty"`
	Now        *time.Time             `json:"now,omitempty"`
}

// handlePlacement evaluates the banner pipeline for one page view. On
// success it returns the winning banner with its resolved destination. When
// nothing is eligible it returns HTTP 204 No Content — "show nothing" is a
// normal outcome, not an error. Parsing errors produce HTTP 400.
func (h *Handler) handlePlacement(w http.ResponseWriter, r *http.Request) {
	var req placementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Location == "" || req.UserID == "" {
		http.Error(w, "location and user_id are required", http.StatusBadRequest)
		return
	}

	evalReq := port.PlacementRequest{
		Location:   req.Location,
		UserID:     req.UserID,
		PlaylistID: req.PlaylistID,
	}
	if req.Now != nil {
		evalReq.Now = *req.Now
	}

	placement, err := h.svc.EvaluateForLocation(r.Context(), evalReq)
	if err != nil {
		h.logger.Error("placement error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if placement == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(placement); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
