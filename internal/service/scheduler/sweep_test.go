package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocastudy/backend/internal/domain"
)

func TestSweep_DemotesOverdueItem(t *testing.T) {
	t.Parallel()

	// Checkpoint 7 allows 7 days; 8 days elapsed means missed, regressed
	// to the previous rung (2).
	item := scheduledItem("run errands", domain.ReviewStatusReview, 7, daysAgo(8))
	repo := &mockItemRepo{}
	repo.UpdateScheduleFunc = echoUpdate([]*domain.VocabularyItem{item})
	svc := newTestService(t, repo, []*domain.VocabularyItem{item})

	require.NoError(t, svc.sweepLocked(context.Background()))

	entry := item.Schedule[testMode]
	assert.Equal(t, domain.ReviewStatusMissed, entry.Status)
	assert.Equal(t, 2, entry.Checkpoint)
	assert.Len(t, repo.updateCalls, 1, "demotion must be written through")
}

func TestSweep_TopRungBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		reviewedDays   int
		wantStatus     domain.ReviewStatus
		wantCheckpoint int
	}{
		{"15 days at checkpoint 14 is within the window", 15, domain.ReviewStatusReview, 14},
		{"17 days at checkpoint 14 regresses to 7", 17, domain.ReviewStatusMissed, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item := scheduledItem("perseverance", domain.ReviewStatusReview, 14, daysAgo(tt.reviewedDays))
			repo := &mockItemRepo{}
			repo.UpdateScheduleFunc = echoUpdate([]*domain.VocabularyItem{item})
			svc := newTestService(t, repo, []*domain.VocabularyItem{item})

			require.NoError(t, svc.sweepLocked(context.Background()))

			entry := item.Schedule[testMode]
			assert.Equal(t, tt.wantStatus, entry.Status)
			assert.Equal(t, tt.wantCheckpoint, entry.Checkpoint)
		})
	}
}

func TestSweep_LeavesItemsWithinWindowUntouched(t *testing.T) {
	t.Parallel()

	items := []*domain.VocabularyItem{
		scheduledItem("on time", domain.ReviewStatusReview, 2, daysAgo(5)),
		scheduledItem("fresh", domain.ReviewStatusAgain, 1, daysAgo(1)),
	}
	repo := &mockItemRepo{}
	svc := newTestService(t, repo, items)

	require.NoError(t, svc.sweepLocked(context.Background()))

	assert.Equal(t, domain.ReviewStatusReview, items[0].Schedule[testMode].Status)
	assert.Equal(t, 2, items[0].Schedule[testMode].Checkpoint)
	assert.Equal(t, domain.ReviewStatusAgain, items[1].Schedule[testMode].Status)
	assert.Empty(t, repo.updateCalls)
}

func TestSweep_SkipsNewAndMissed(t *testing.T) {
	t.Parallel()

	missed := scheduledItem("already missed", domain.ReviewStatusMissed, 1, daysAgo(30))
	items := []*domain.VocabularyItem{
		newItem("never reviewed"),
		missed,
	}
	repo := &mockItemRepo{}
	svc := newTestService(t, repo, items)

	require.NoError(t, svc.sweepLocked(context.Background()))

	assert.Equal(t, domain.ReviewStatusNew, items[0].Schedule[testMode].Status)
	assert.Equal(t, domain.ReviewStatusMissed, missed.Schedule[testMode].Status)
	assert.Equal(t, 1, missed.Schedule[testMode].Checkpoint, "missed items are not demoted twice")
	assert.Empty(t, repo.updateCalls)
}

func TestSweep_Idempotent(t *testing.T) {
	t.Parallel()

	item := scheduledItem("twice swept", domain.ReviewStatusReview, 2, daysAgo(9))
	repo := &mockItemRepo{}
	repo.UpdateScheduleFunc = echoUpdate([]*domain.VocabularyItem{item})
	svc := newTestService(t, repo, []*domain.VocabularyItem{item})

	require.NoError(t, svc.sweepLocked(context.Background()))
	require.NoError(t, svc.sweepLocked(context.Background()))

	entry := item.Schedule[testMode]
	assert.Equal(t, domain.ReviewStatusMissed, entry.Status)
	assert.Equal(t, 1, entry.Checkpoint, "second pass must not regress further")
	assert.Len(t, repo.updateCalls, 1)
}

func TestSweep_FloorCheckpointStaysAtFloor(t *testing.T) {
	t.Parallel()

	item := scheduledItem("floored", domain.ReviewStatusAgain, 0, daysAgo(3))
	repo := &mockItemRepo{}
	repo.UpdateScheduleFunc = echoUpdate([]*domain.VocabularyItem{item})
	svc := newTestService(t, repo, []*domain.VocabularyItem{item})

	require.NoError(t, svc.sweepLocked(context.Background()))

	entry := item.Schedule[testMode]
	assert.Equal(t, domain.ReviewStatusMissed, entry.Status)
	assert.Equal(t, 0, entry.Checkpoint)
}

func TestSweep_PersistFailureAbortsPass(t *testing.T) {
	t.Parallel()

	first := scheduledItem("first overdue", domain.ReviewStatusReview, 2, daysAgo(9))
	second := scheduledItem("second overdue", domain.ReviewStatusReview, 7, daysAgo(9))
	repo := &mockItemRepo{} // UpdateSchedule fails by default
	svc := newTestService(t, repo, []*domain.VocabularyItem{first, second})

	err := svc.sweepLocked(context.Background())
	require.Error(t, err)

	assert.Equal(t, domain.ReviewStatusReview, first.Schedule[testMode].Status, "unconfirmed demotion must not apply locally")
	assert.Equal(t, domain.ReviewStatusReview, second.Schedule[testMode].Status)
	assert.Len(t, repo.updateCalls, 1, "pass aborts at the first failure")
}

func TestSweep_IgnoresOtherModalities(t *testing.T) {
	t.Parallel()

	item := &domain.VocabularyItem{
		Text: "split schedule",
		Schedule: map[domain.Modality]*domain.ScheduleEntry{
			testMode:                     {Status: domain.ReviewStatusReview, Checkpoint: 2, LastReviewed: daysAgo(1)},
			domain.ModalityFillTheGap:    {Status: domain.ReviewStatusReview, Checkpoint: 2, LastReviewed: daysAgo(30)},
			domain.ModalityListenAndFill: {Status: domain.ReviewStatusReview, Checkpoint: 7, LastReviewed: daysAgo(30)},
		},
	}
	repo := &mockItemRepo{}
	svc := newTestService(t, repo, []*domain.VocabularyItem{item})

	require.NoError(t, svc.sweepLocked(context.Background()))

	assert.Equal(t, domain.ReviewStatusReview, item.Schedule[domain.ModalityFillTheGap].Status,
		"inactive modalities are not swept")
	assert.Empty(t, repo.updateCalls)
}
