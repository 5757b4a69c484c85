package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type eventRequest struct {
	UserID   string `json:"user_id"`
	BannerID int64  `json:"banner_id"`
}

// handleShown records that a banner was actually rendered, which starts (or
// restarts) its frequency-cap window for the user. Clients treat it as
// fire-and-forget, so it answers HTTP 202 on any well-formed request; write
// failures are handled inside the usecase.
func (h *Handler) handleShown(w http.ResponseWriter, r *http.Request) {
	h.handleEvent(w, r, h.svc.RecordShown)
}

// handleDismissed records a user-initiated close. It is kept for reporting
// only and has no effect on eligibility.
func (h *Handler) handleDismissed(w http.ResponseWriter, r *http.Request) {
	h.handleEvent(w, r, h.svc.RecordDismissed)
}

func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request, record func(context.Context, string, int64, time.Time) error) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.BannerID == 0 {
		http.Error(w, "user_id and banner_id are required", http.StatusBadRequest)
		return
	}
	if err := record(r.Context(), req.UserID, req.BannerID, time.Now()); err != nil {
		// the usecase swallows collaborator failures; an error here is a
		// programming fault, not a client one
		h.logger.Error("event error", slog.Any("error", err))
	}
	w.WriteHeader(http.StatusAccepted)
}
