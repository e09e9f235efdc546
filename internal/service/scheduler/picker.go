package scheduler

import (
	"github.com/google/uuid"

	"github.com/vocastudy/backend/internal/domain"
)

// dueTier describes one reviewed-N-days-ago priority tier of the picker.
// The tiers are derived from the ladder: every rung after the first
// contributes a tier matching items reviewed exactly thresholdDays ago at
// that rung's checkpoint. The first derived tier matches any checkpoint at
// or below its rung, covering items that regressed to the ladder floor.
type dueTier struct {
	daysAgo    int
	checkpoint int
	atMost     bool
}

func dueTiers(l *domain.CheckpointLadder) []dueTier {
	tiers := make([]dueTier, 0, l.Len()-1)
	for i := 1; i < l.Len(); i++ {
		rung := l.At(i)
		tiers = append(tiers, dueTier{
			daysAgo:    rung.ThresholdDays,
			checkpoint: rung.Checkpoint,
			atMost:     i == 1,
		})
	}
	return tiers
}

// pickLocked builds today's selection from the item store in priority order:
// the first missed item, one item per due tier, a batch of new items, and an
// item answered AGAIN earlier today (today in the fixed reference zone). Each
// item appears at most once even when it satisfies several tiers. An empty
// selection is valid.
func (s *Service) pickLocked() []*domain.VocabularyItem {
	now := s.clock.Now()
	mode := s.activeMode

	var picked []*domain.VocabularyItem
	seen := make(map[uuid.UUID]struct{})

	add := func(item *domain.VocabularyItem) {
		if _, dup := seen[item.ID]; dup {
			return
		}
		seen[item.ID] = struct{}{}
		picked = append(picked, item)
	}

	if missed := s.firstWithStatus(mode, domain.ReviewStatusMissed); missed != nil {
		add(missed)
	}

	for _, tier := range dueTiers(s.ladder) {
		for _, item := range s.items {
			entry, ok := item.Schedule[mode]
			if !ok || entry.LastReviewed == nil || entry.Status == domain.ReviewStatusMissed {
				continue
			}
			if tier.atMost && entry.Checkpoint > tier.checkpoint {
				continue
			}
			if !tier.atMost && entry.Checkpoint != tier.checkpoint {
				continue
			}
			if calendarDaysBetween(now, *entry.LastReviewed, s.localZone) != tier.daysAgo {
				continue
			}
			add(item)
			break
		}
	}

	fresh := 0
	for _, item := range s.items {
		if fresh == s.newPerSelection {
			break
		}
		entry, ok := item.Schedule[mode]
		if !ok || entry.Status == domain.ReviewStatusNew {
			add(item)
			fresh++
		}
	}

	for _, item := range s.items {
		entry, ok := item.Schedule[mode]
		if !ok || entry.Status != domain.ReviewStatusAgain || entry.LastReviewed == nil {
			continue
		}
		if sameCalendarDay(*entry.LastReviewed, now, s.refZone) {
			add(item)
			break
		}
	}

	return picked
}

func (s *Service) firstWithStatus(mode domain.Modality, status domain.ReviewStatus) *domain.VocabularyItem {
	for _, item := range s.items {
		if entry, ok := item.Schedule[mode]; ok && entry.Status == status {
			return item
		}
	}
	return nil
}
