package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vocastudy/backend/internal/domain"
)

// sweepLocked reclassifies items whose review window has elapsed in the
// active modality: their status becomes MISSED and their checkpoint regresses
// one rung. Items that are NEW, already MISSED, or never reviewed are
// skipped, so a second pass with no elapsed time is a no-op.
//
// Each demotion is written through to persistence before the in-memory store
// is updated; a persistence failure aborts the pass and leaves the remaining
// items untouched.
func (s *Service) sweepLocked(ctx context.Context) error {
	now := s.clock.Now()
	mode := s.activeMode

	for _, item := range s.items {
		entry, ok := item.Schedule[mode]
		if !ok || entry.LastReviewed == nil {
			continue
		}
		if entry.Status == domain.ReviewStatusNew || entry.Status == domain.ReviewStatusMissed {
			continue
		}

		threshold, ok := s.ladder.ThresholdFor(entry.Checkpoint)
		if !ok {
			s.log.WarnContext(ctx, "checkpoint not on ladder, skipping",
				slog.String("item_id", item.ID.String()),
				slog.Int("checkpoint", entry.Checkpoint),
			)
			continue
		}

		elapsed := calendarDaysBetween(now, *entry.LastReviewed, s.localZone)
		if elapsed <= threshold {
			continue
		}

		idx, _ := s.ladder.IndexOf(entry.Checkpoint)
		demoted := s.ladder.Previous(idx)

		upd := domain.ScheduleUpdate{
			Status:       domain.ReviewStatusMissed,
			Checkpoint:   demoted,
			LastReviewed: entry.LastReviewed,
		}
		confirmed, err := s.repo.UpdateSchedule(ctx, item.ID, mode, upd)
		if err != nil {
			return fmt.Errorf("persist missed item %s: %w", item.ID, err)
		}
		applyConfirmed(item, confirmed)

		s.log.DebugContext(ctx, "item marked missed",
			slog.String("item_id", item.ID.String()),
			slog.Int("days_elapsed", elapsed),
			slog.Int("checkpoint", demoted),
		)
	}
	return nil
}
