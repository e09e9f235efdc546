package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vocastudy/backend/internal/domain"
	"github.com/vocastudy/backend/internal/service/scheduler"
)

func (h *Handler) getCurrentItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.svc.CurrentItem()
	if !ok {
		writeError(w, fmt.Errorf("current item: %w", domain.ErrEmptySelection))
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(item))
}

type createItemRequest struct {
	Text                 string  `json:"text"`
	Topic                *string `json:"topic"`
	RelevantTranslations *string `json:"relevant_translations"`
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("decode body: %w", domain.ErrValidation))
		return
	}

	item, err := h.svc.AddItem(r.Context(), scheduler.AddItemInput{
		Text:                 req.Text,
		Topic:                req.Topic,
		RelevantTranslations: req.RelevantTranslations,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItemDTO(item))
}
