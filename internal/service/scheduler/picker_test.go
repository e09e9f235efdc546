package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vocastudy/backend/internal/domain"
)

func texts(items []*domain.VocabularyItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

func TestPick_MissedThenNewBatch(t *testing.T) {
	t.Parallel()

	items := []*domain.VocabularyItem{
		newItem("new1"),
		scheduledItem("missed", domain.ReviewStatusMissed, 1, daysAgo(4)),
		newItem("new2"),
		newItem("new3"),
		newItem("new4"),
	}
	svc := newTestService(t, &mockItemRepo{}, items)

	got := svc.pickLocked()

	assert.Equal(t, []string{"missed", "new1", "new2", "new3"}, texts(got),
		"one missed item first, then at most three new items in collection order")
}

func TestPick_DueTiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item *domain.VocabularyItem
		want bool
	}{
		{"reviewed yesterday at checkpoint 0", scheduledItem("w", domain.ReviewStatusReview, 0, daysAgo(1)), true},
		{"reviewed yesterday at checkpoint 1", scheduledItem("w", domain.ReviewStatusAgain, 1, daysAgo(1)), true},
		{"reviewed yesterday at checkpoint 2", scheduledItem("w", domain.ReviewStatusReview, 2, daysAgo(1)), false},
		{"reviewed 5 days ago at checkpoint 2", scheduledItem("w", domain.ReviewStatusReview, 2, daysAgo(5)), true},
		{"reviewed 4 days ago at checkpoint 2", scheduledItem("w", domain.ReviewStatusReview, 2, daysAgo(4)), false},
		{"reviewed 7 days ago at checkpoint 7", scheduledItem("w", domain.ReviewStatusReview, 7, daysAgo(7)), true},
		{"reviewed 7 days ago at checkpoint 2", scheduledItem("w", domain.ReviewStatusReview, 2, daysAgo(7)), false},
		{"reviewed 16 days ago at checkpoint 14", scheduledItem("w", domain.ReviewStatusReview, 14, daysAgo(16)), true},
		{"reviewed 16 days ago at checkpoint 7", scheduledItem("w", domain.ReviewStatusReview, 7, daysAgo(16)), false},
		{"reviewed today at checkpoint 1", scheduledItem("w", domain.ReviewStatusReview, 1, daysAgo(0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t, &mockItemRepo{}, []*domain.VocabularyItem{tt.item})
			got := svc.pickLocked()
			if tt.want {
				assert.Equal(t, []string{"w"}, texts(got))
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestPick_OneItemPerDueTier(t *testing.T) {
	t.Parallel()

	items := []*domain.VocabularyItem{
		scheduledItem("yesterday-a", domain.ReviewStatusReview, 1, daysAgo(1)),
		scheduledItem("yesterday-b", domain.ReviewStatusReview, 1, daysAgo(1)),
		scheduledItem("week-a", domain.ReviewStatusReview, 7, daysAgo(7)),
		scheduledItem("week-b", domain.ReviewStatusReview, 7, daysAgo(7)),
	}
	svc := newTestService(t, &mockItemRepo{}, items)

	got := svc.pickLocked()

	assert.Equal(t, []string{"yesterday-a", "week-a"}, texts(got),
		"each due tier takes the first match in collection order")
}

func TestPick_MissedItemsExcludedFromDueTiers(t *testing.T) {
	t.Parallel()

	// Missed yesterday at checkpoint 1: eligible for the missed tier only,
	// not additionally for the reviewed-yesterday tier.
	items := []*domain.VocabularyItem{
		scheduledItem("missed-a", domain.ReviewStatusMissed, 1, daysAgo(1)),
		scheduledItem("missed-b", domain.ReviewStatusMissed, 1, daysAgo(1)),
	}
	svc := newTestService(t, &mockItemRepo{}, items)

	got := svc.pickLocked()

	assert.Equal(t, []string{"missed-a"}, texts(got))
}

func TestPick_AgainReviewedTodayInReferenceZone(t *testing.T) {
	t.Parallel()

	kyiv, err := time.LoadLocation("Europe/Kyiv")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 22:30 UTC yesterday is already "today" in Kyiv (UTC+2). Checkpoint 2
	// keeps the item off every local-zone due tier, so only the AGAIN-today
	// tier can select it, and only when the reference zone says today.
	reviewed := time.Date(2026, time.March, 9, 22, 30, 0, 0, time.UTC)
	item := scheduledItem("again today", domain.ReviewStatusAgain, 2, &reviewed)

	svc := newTestService(t, &mockItemRepo{}, []*domain.VocabularyItem{item})
	got := svc.pickLocked()
	assert.Empty(t, got, "under a UTC reference zone the item was reviewed yesterday")

	svc.refZone = kyiv
	got = svc.pickLocked()
	assert.Equal(t, []string{"again today"}, texts(got))
}

func TestPick_NoDuplicateAcrossTiers(t *testing.T) {
	t.Parallel()

	// AGAIN at checkpoint 0 reviewed "yesterday" late enough that the
	// reference zone still counts it as today: matches the
	// reviewed-yesterday tier and the AGAIN-today tier.
	kyiv, err := time.LoadLocation("Europe/Kyiv")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	reviewed := time.Date(2026, time.March, 9, 23, 0, 0, 0, time.UTC) // March 10 in Kyiv
	item := scheduledItem("double match", domain.ReviewStatusAgain, 0, &reviewed)

	svc := newTestService(t, &mockItemRepo{}, []*domain.VocabularyItem{item})
	svc.refZone = kyiv

	got := svc.pickLocked()

	assert.Equal(t, []string{"double match"}, texts(got), "an item is selected once even when several tiers match")
}

func TestPick_EmptyStore(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &mockItemRepo{}, nil)
	assert.Empty(t, svc.pickLocked())
}

func TestPick_NothingDue(t *testing.T) {
	t.Parallel()

	items := []*domain.VocabularyItem{
		scheduledItem("settled", domain.ReviewStatusReview, 14, daysAgo(3)),
		scheduledItem("recent", domain.ReviewStatusReview, 2, daysAgo(2)),
	}
	svc := newTestService(t, &mockItemRepo{}, items)

	assert.Empty(t, svc.pickLocked(), "an empty selection is valid")
}

func TestPick_ItemWithoutActiveModalityCountsAsNew(t *testing.T) {
	t.Parallel()

	item := &domain.VocabularyItem{
		Text: "other modality only",
		Schedule: map[domain.Modality]*domain.ScheduleEntry{
			domain.ModalityFillTheGap: {Status: domain.ReviewStatusReview, Checkpoint: 7, LastReviewed: daysAgo(2)},
		},
	}
	svc := newTestService(t, &mockItemRepo{}, []*domain.VocabularyItem{item})

	got := svc.pickLocked()

	assert.Equal(t, []string{"other modality only"}, texts(got))
}
