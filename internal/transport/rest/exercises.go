package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vocastudy/backend/internal/domain"
)

type generateExerciseRequest struct {
	// Modality, when set, switches the active modality before generating.
	Modality string `json:"modality"`
}

type exerciseResponse struct {
	Modality        string   `json:"modality"`
	FullSentence    string   `json:"full_sentence"`
	DisplaySentence string   `json:"display_sentence,omitempty"`
	Translation     string   `json:"translation"`
	CorrectForm     string   `json:"correct_form"`
	Options         []string `json:"options,omitempty"`
	Hint            *string  `json:"hint,omitempty"`
}

func (h *Handler) generateExercise(w http.ResponseWriter, r *http.Request) {
	var req generateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, fmt.Errorf("decode body: %w", domain.ErrValidation))
		return
	}

	if req.Modality != "" && domain.Modality(req.Modality) != h.svc.ActiveModality() {
		if err := h.svc.SetActiveModality(domain.Modality(req.Modality)); err != nil {
			writeError(w, err)
			return
		}
		if err := h.svc.MakeNextSelection(r.Context()); err != nil {
			writeError(w, err)
			return
		}
	}

	payload, err := h.svc.GenerateExercise(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exerciseResponse{
		Modality:        h.svc.ActiveModality().String(),
		FullSentence:    payload.FullSentence,
		DisplaySentence: payload.DisplaySentence,
		Translation:     payload.Translation,
		CorrectForm:     payload.CorrectForm,
		Options:         payload.Options,
		Hint:            payload.Hint,
	})
}

type synthesizeSpeechRequest struct {
	Text string `json:"text"`
}

func (h *Handler) synthesizeSpeech(w http.ResponseWriter, r *http.Request) {
	var req synthesizeSpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("decode body: %w", domain.ErrValidation))
		return
	}

	res, err := h.svc.SynthesizeSpeech(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", res.MIMEType)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Audio) //nolint:errcheck
}
