package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/vocastudy/backend/internal/domain"
	"github.com/vocastudy/backend/internal/service/scheduler"
)

type recordReviewRequest struct {
	ItemID   string `json:"item_id"`
	Modality string `json:"modality"`
	Outcome  string `json:"outcome"`
}

func (h *Handler) recordReview(w http.ResponseWriter, r *http.Request) {
	var req recordReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("decode body: %w", domain.ErrValidation))
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		writeError(w, domain.NewValidationError("item_id", "must be a UUID"))
		return
	}

	modality := h.svc.ActiveModality()
	if req.Modality != "" {
		modality = domain.Modality(req.Modality)
	}

	item, err := h.svc.RecordOutcome(r.Context(), scheduler.RecordOutcomeInput{
		ItemID:   itemID,
		Modality: modality,
		Outcome:  domain.ReviewOutcome(req.Outcome),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(item))
}
