package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vocastudy/backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error  string          `json:"error"`
	Code   string          `json:"code"`
	Fields []fieldErrorDTO `json:"fields,omitempty"`
}

type fieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeError maps domain sentinels to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var (
		status = http.StatusInternalServerError
		code   = "INTERNAL"
		fields []fieldErrorDTO
	)

	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		status, code = http.StatusBadRequest, "VALIDATION"
		for _, fe := range vErr.Errors {
			fields = append(fields, fieldErrorDTO{Field: fe.Field, Message: fe.Message})
		}
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmptySelection):
		status, code = http.StatusNotFound, "EMPTY_SELECTION"
	case errors.Is(err, domain.ErrAlreadyExists):
		status, code = http.StatusConflict, "ALREADY_EXISTS"
	case errors.Is(err, domain.ErrStaleGeneration):
		status, code = http.StatusConflict, "STALE_GENERATION"
	case errors.Is(err, domain.ErrGeneration):
		status, code = http.StatusBadGateway, "GENERATION_FAILED"
	case errors.Is(err, domain.ErrSynthesis):
		status, code = http.StatusBadGateway, "SYNTHESIS_FAILED"
	case errors.Is(err, domain.ErrPersistence):
		status, code = http.StatusServiceUnavailable, "PERSISTENCE"
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code, Fields: fields})
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type scheduleEntryDTO struct {
	Status       string     `json:"status"`
	Checkpoint   int        `json:"checkpoint"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
}

type itemDTO struct {
	ID                   string                      `json:"id"`
	Text                 string                      `json:"text"`
	Topic                *string                     `json:"topic,omitempty"`
	RelevantTranslations *string                     `json:"relevant_translations,omitempty"`
	Schedule             map[string]scheduleEntryDTO `json:"schedule"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

func toItemDTO(item *domain.VocabularyItem) itemDTO {
	sched := make(map[string]scheduleEntryDTO, len(item.Schedule))
	for mode, entry := range item.Schedule {
		sched[mode.String()] = scheduleEntryDTO{
			Status:       entry.Status.String(),
			Checkpoint:   entry.Checkpoint,
			LastReviewed: entry.LastReviewed,
		}
	}
	return itemDTO{
		ID:                   item.ID.String(),
		Text:                 item.Text,
		Topic:                item.Topic,
		RelevantTranslations: item.RelevantTranslations,
		Schedule:             sched,
		CreatedAt:            item.CreatedAt,
		UpdatedAt:            item.UpdatedAt,
	}
}

func toItemDTOs(items []*domain.VocabularyItem) []itemDTO {
	out := make([]itemDTO, len(items))
	for i, item := range items {
		out[i] = toItemDTO(item)
	}
	return out
}
