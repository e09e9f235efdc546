package scheduler

import (
	"context"
	"fmt"

	"github.com/vocastudy/backend/internal/domain"
	"github.com/vocastudy/backend/internal/provider"
)

// GenerateExercise produces an exercise payload for the item under the
// cursor in the active modality. The provider call runs without the store
// lock so outcomes can be recorded while a generation is in flight; if the
// current item changes before the call returns, the result is discarded with
// ErrStaleGeneration and the caller fetches a fresh one.
func (s *Service) GenerateExercise(ctx context.Context) (*provider.ExercisePayload, error) {
	s.mu.Lock()
	item, ok := s.currentItemLocked()
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("generate exercise: %w", domain.ErrEmptySelection)
	}
	seq := s.generationSeq
	mode := s.activeMode
	req := provider.ExerciseRequest{
		Text:                 item.Text,
		Topic:                item.Topic,
		RelevantTranslations: item.RelevantTranslations,
	}
	s.mu.Unlock()

	payload, err := s.generator.GenerateExercise(ctx, mode, req)
	if err != nil {
		return nil, fmt.Errorf("generate exercise for %s: %w", item.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generationSeq != seq {
		return nil, fmt.Errorf("exercise for %s: %w", item.ID, domain.ErrStaleGeneration)
	}
	return payload, nil
}

// SynthesizeSpeech converts a sentence to audio via the speech provider.
func (s *Service) SynthesizeSpeech(ctx context.Context, text string) (*provider.SpeechResult, error) {
	if text == "" {
		return nil, fmt.Errorf("synthesize speech: %w", domain.NewValidationError("text", "must not be empty"))
	}
	res, err := s.speech.SynthesizeSpeech(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	return res, nil
}
