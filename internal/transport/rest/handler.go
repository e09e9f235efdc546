// Package rest exposes the scheduler over a small JSON API.
package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vocastudy/backend/internal/domain"
	"github.com/vocastudy/backend/internal/provider"
	"github.com/vocastudy/backend/internal/service/scheduler"
)

// schedulerService is the slice of the scheduler the transport needs.
type schedulerService interface {
	DueWorkingSet() ([]*domain.VocabularyItem, int)
	CurrentItem() (*domain.VocabularyItem, bool)
	AdvanceCursor(ctx context.Context) error
	MakeNextSelection(ctx context.Context) error
	RecordOutcome(ctx context.Context, input scheduler.RecordOutcomeInput) (*domain.VocabularyItem, error)
	AddItem(ctx context.Context, input scheduler.AddItemInput) (*domain.VocabularyItem, error)
	ActiveModality() domain.Modality
	SetActiveModality(mode domain.Modality) error
	GenerateExercise(ctx context.Context) (*provider.ExercisePayload, error)
	SynthesizeSpeech(ctx context.Context, text string) (*provider.SpeechResult, error)
}

// Handler serves the scheduler API.
type Handler struct {
	svc schedulerService
	log *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(svc schedulerService, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, log: logger.With("transport", "rest")}
}

// Register mounts all API routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/working-set", h.getWorkingSet)
	mux.HandleFunc("POST /api/v1/working-set/advance", h.advanceWorkingSet)
	mux.HandleFunc("POST /api/v1/working-set/reselect", h.reselectWorkingSet)
	mux.HandleFunc("GET /api/v1/items/current", h.getCurrentItem)
	mux.HandleFunc("POST /api/v1/items", h.createItem)
	mux.HandleFunc("POST /api/v1/reviews", h.recordReview)
	mux.HandleFunc("POST /api/v1/exercises", h.generateExercise)
	mux.HandleFunc("POST /api/v1/speech", h.synthesizeSpeech)
}
