package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vocastudy/backend/internal/domain"
)

// RecordOutcome applies a recall outcome to the item's schedule in the given
// modality and persists it. An item already reviewed today keeps its
// checkpoint regardless of outcome; otherwise AGAIN regresses one rung and
// REVIEW advances one rung, clamped to the ladder ends. On success the
// working-set cursor advances, wrapping into a fresh selection when the set
// is exhausted. On persistence failure the in-memory item and the cursor are
// both left untouched.
func (s *Service) RecordOutcome(ctx context.Context, input RecordOutcomeInput) (*domain.VocabularyItem, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("record outcome: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.findItemLocked(input.ItemID)
	if !ok {
		return nil, fmt.Errorf("record outcome for %s: %w", input.ItemID, domain.ErrNotFound)
	}

	entry := item.Entry(input.Modality)
	idx, ok := s.ladder.IndexOf(entry.Checkpoint)
	if !ok {
		return nil, fmt.Errorf("record outcome: checkpoint %d not on ladder: %w",
			entry.Checkpoint, domain.ErrValidation)
	}

	now := s.clock.Now()
	next := entry.Checkpoint
	if entry.LastReviewed == nil || !sameCalendarDay(*entry.LastReviewed, now, s.localZone) {
		switch input.Outcome {
		case domain.ReviewOutcomeAgain:
			next = s.ladder.Previous(idx)
		case domain.ReviewOutcomeReview:
			next = s.ladder.Next(idx)
		}
	}

	upd := domain.ScheduleUpdate{
		Status:       input.Outcome.Status(),
		Checkpoint:   next,
		LastReviewed: &now,
	}
	confirmed, err := s.repo.UpdateSchedule(ctx, item.ID, input.Modality, upd)
	if err != nil {
		return nil, fmt.Errorf("persist outcome for %s: %w", item.ID, err)
	}
	applyConfirmed(item, confirmed)

	s.log.InfoContext(ctx, "outcome recorded",
		slog.String("item_id", item.ID.String()),
		slog.String("modality", input.Modality.String()),
		slog.String("outcome", input.Outcome.String()),
		slog.Int("checkpoint", next),
	)

	if err := s.advanceCursorLocked(ctx); err != nil {
		return item, fmt.Errorf("advance after outcome: %w", err)
	}
	return item, nil
}
