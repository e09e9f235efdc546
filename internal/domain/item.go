package domain

import (
	"time"

	"github.com/google/uuid"
)

// VocabularyItem is one word, phrase, or pattern the learner is studying.
// Content fields are immutable after creation; scheduling state lives in
// Schedule, one entry per exercise modality, each advancing independently.
type VocabularyItem struct {
	ID                   uuid.UUID
	Text                 string
	Topic                *string
	RelevantTranslations *string
	Schedule             map[Modality]*ScheduleEntry
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ScheduleEntry is the spaced-repetition state of one item in one modality.
type ScheduleEntry struct {
	Status       ReviewStatus
	Checkpoint   int
	LastReviewed *time.Time
}

// NewScheduleEntry returns the entry every item starts with in each modality:
// never reviewed, sitting at the ladder's first checkpoint.
func NewScheduleEntry(firstCheckpoint int) *ScheduleEntry {
	return &ScheduleEntry{
		Status:     ReviewStatusNew,
		Checkpoint: firstCheckpoint,
	}
}

// Entry returns the schedule entry for the given modality, creating a NEW one
// at checkpoint 0 if the item record predates the modality.
func (v *VocabularyItem) Entry(mode Modality) *ScheduleEntry {
	if v.Schedule == nil {
		v.Schedule = make(map[Modality]*ScheduleEntry)
	}
	e, ok := v.Schedule[mode]
	if !ok {
		e = NewScheduleEntry(0)
		v.Schedule[mode] = e
	}
	return e
}

// ScheduleUpdate holds the scheduling fields written back to persistence
// after a sweep demotion or a recorded outcome.
type ScheduleUpdate struct {
	Status       ReviewStatus
	Checkpoint   int
	LastReviewed *time.Time
}
