package scheduler

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/vocastudy/backend/internal/domain"
	"github.com/vocastudy/backend/internal/provider"
)

// ===========================================================================
// Mocks (manual, function-field style)
// ===========================================================================

type mockItemRepo struct {
	FetchAllFunc       func(ctx context.Context) ([]*domain.VocabularyItem, error)
	InsertFunc         func(ctx context.Context, text string, topic, relevantTranslations *string) (*domain.VocabularyItem, error)
	UpdateScheduleFunc func(ctx context.Context, itemID uuid.UUID, mode domain.Modality, upd domain.ScheduleUpdate) (*domain.VocabularyItem, error)

	updateCalls []uuid.UUID
}

func (m *mockItemRepo) FetchAll(ctx context.Context) ([]*domain.VocabularyItem, error) {
	if m.FetchAllFunc != nil {
		return m.FetchAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockItemRepo) Insert(ctx context.Context, text string, topic, relevantTranslations *string) (*domain.VocabularyItem, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, text, topic, relevantTranslations)
	}
	return nil, domain.ErrPersistence
}

func (m *mockItemRepo) UpdateSchedule(ctx context.Context, itemID uuid.UUID, mode domain.Modality, upd domain.ScheduleUpdate) (*domain.VocabularyItem, error) {
	m.updateCalls = append(m.updateCalls, itemID)
	if m.UpdateScheduleFunc != nil {
		return m.UpdateScheduleFunc(ctx, itemID, mode, upd)
	}
	return nil, domain.ErrNotFound
}

type mockGenerator struct {
	GenerateExerciseFunc func(ctx context.Context, mode domain.Modality, req provider.ExerciseRequest) (*provider.ExercisePayload, error)
}

func (m *mockGenerator) GenerateExercise(ctx context.Context, mode domain.Modality, req provider.ExerciseRequest) (*provider.ExercisePayload, error) {
	if m.GenerateExerciseFunc != nil {
		return m.GenerateExerciseFunc(ctx, mode, req)
	}
	return &provider.ExercisePayload{}, nil
}

type mockSpeech struct {
	SynthesizeSpeechFunc func(ctx context.Context, text string) (*provider.SpeechResult, error)
}

func (m *mockSpeech) SynthesizeSpeech(ctx context.Context, text string) (*provider.SpeechResult, error) {
	if m.SynthesizeSpeechFunc != nil {
		return m.SynthesizeSpeechFunc(ctx, text)
	}
	return &provider.SpeechResult{MIMEType: "audio/mpeg"}, nil
}

// ===========================================================================
// Helpers
// ===========================================================================

const testMode = domain.ModalityTranslateSentence

// testNow is the frozen instant every test clock starts at: midday, so
// hour-level drift never crosses a calendar-day boundary.
var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, repo *mockItemRepo, items []*domain.VocabularyItem) *Service {
	t.Helper()
	return &Service{
		repo:            repo,
		generator:       &mockGenerator{},
		speech:          &mockSpeech{},
		log:             slog.Default(),
		clock:           clockwork.NewFakeClockAt(testNow),
		ladder:          domain.DefaultLadder(),
		newPerSelection: 3,
		refZone:         time.UTC,
		localZone:       time.UTC,
		activeMode:      testMode,
		items:           items,
	}
}

// echoUpdate is an UpdateScheduleFunc that applies the update to a detached
// copy of the matching item, imitating a backend that confirms the write.
func echoUpdate(items []*domain.VocabularyItem) func(ctx context.Context, itemID uuid.UUID, mode domain.Modality, upd domain.ScheduleUpdate) (*domain.VocabularyItem, error) {
	return func(_ context.Context, itemID uuid.UUID, mode domain.Modality, upd domain.ScheduleUpdate) (*domain.VocabularyItem, error) {
		for _, it := range items {
			if it.ID != itemID {
				continue
			}
			confirmed := *it
			confirmed.Schedule = make(map[domain.Modality]*domain.ScheduleEntry, len(it.Schedule))
			for m, e := range it.Schedule {
				c := *e
				confirmed.Schedule[m] = &c
			}
			confirmed.Schedule[mode] = &domain.ScheduleEntry{
				Status:       upd.Status,
				Checkpoint:   upd.Checkpoint,
				LastReviewed: upd.LastReviewed,
			}
			return &confirmed, nil
		}
		return nil, domain.ErrNotFound
	}
}

func scheduledItem(text string, status domain.ReviewStatus, checkpoint int, lastReviewed *time.Time) *domain.VocabularyItem {
	return &domain.VocabularyItem{
		ID:   uuid.New(),
		Text: text,
		Schedule: map[domain.Modality]*domain.ScheduleEntry{
			testMode: {Status: status, Checkpoint: checkpoint, LastReviewed: lastReviewed},
		},
	}
}

func newItem(text string) *domain.VocabularyItem {
	return scheduledItem(text, domain.ReviewStatusNew, 0, nil)
}

func daysAgo(n int) *time.Time {
	t := testNow.AddDate(0, 0, -n)
	return &t
}

func ptr[T any](v T) *T { return &v }
