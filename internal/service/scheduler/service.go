package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/vocastudy/backend/internal/domain"
	"github.com/vocastudy/backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type itemRepo interface {
	FetchAll(ctx context.Context) ([]*domain.VocabularyItem, error)
	Insert(ctx context.Context, text string, topic, relevantTranslations *string) (*domain.VocabularyItem, error)
	UpdateSchedule(ctx context.Context, itemID uuid.UUID, mode domain.Modality, upd domain.ScheduleUpdate) (*domain.VocabularyItem, error)
}

type exerciseGenerator interface {
	GenerateExercise(ctx context.Context, mode domain.Modality, req provider.ExerciseRequest) (*provider.ExercisePayload, error)
}

type speechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, text string) (*provider.SpeechResult, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds the scheduling parameters of the Service.
type Config struct {
	// Ladder is the checkpoint ladder; nil means domain.DefaultLadder.
	Ladder *domain.CheckpointLadder
	// NewItemsPerSelection is the NEW-tier batch size; zero means 3.
	NewItemsPerSelection int
	// ReferenceZone is the fixed zone for the AGAIN-today tier; nil means UTC.
	ReferenceZone *time.Location
	// DefaultModality is the modality active until SetActiveModality is
	// called; empty means translate-sentence.
	DefaultModality domain.Modality
}

// Service owns the in-memory item store and working set and implements the
// scheduling logic: the missed-item sweep, the next-selection picker, and the
// review-outcome applicator. All store mutation is serialized; collaborator
// calls during a mutation complete before the mutation is applied, so a
// failed persistence call leaves the store untouched.
type Service struct {
	repo      itemRepo
	generator exerciseGenerator
	speech    speechSynthesizer
	log       *slog.Logger
	clock     clockwork.Clock

	ladder          *domain.CheckpointLadder
	newPerSelection int
	refZone         *time.Location
	localZone       *time.Location

	mu         sync.Mutex
	items      []*domain.VocabularyItem
	working    workingSet
	activeMode domain.Modality
	// generationSeq increments whenever the current item changes; in-flight
	// exercise generations compare it to discard stale results.
	generationSeq uint64
}

// workingSet is the ordered day selection plus the cursor into it. Entries
// are references into the item store, not copies.
type workingSet struct {
	items  []*domain.VocabularyItem
	cursor int
}

// NewService creates a scheduler Service. The clock is injected so day
// arithmetic is testable; production callers pass clockwork.NewRealClock().
func NewService(
	log *slog.Logger,
	repo itemRepo,
	generator exerciseGenerator,
	speech speechSynthesizer,
	clock clockwork.Clock,
	cfg Config,
) (*Service, error) {
	ladder := cfg.Ladder
	if ladder == nil {
		ladder = domain.DefaultLadder()
	}

	newPer := cfg.NewItemsPerSelection
	if newPer == 0 {
		newPer = 3
	}
	if newPer < 0 {
		return nil, fmt.Errorf("scheduler: %w", domain.NewValidationError("new_items_per_selection", "must be positive"))
	}

	refZone := cfg.ReferenceZone
	if refZone == nil {
		refZone = time.UTC
	}

	mode := cfg.DefaultModality
	if mode == "" {
		mode = domain.ModalityTranslateSentence
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("scheduler: %w", domain.NewValidationError("default_modality", "unknown modality"))
	}

	return &Service{
		repo:            repo,
		generator:       generator,
		speech:          speech,
		log:             log.With("service", "scheduler"),
		clock:           clock,
		ladder:          ladder,
		newPerSelection: newPer,
		refZone:         refZone,
		localZone:       time.Local,
		activeMode:      mode,
	}, nil
}

// Load populates the item store from persistence, runs the missed-item sweep,
// and builds the first working set. It is called once at startup and may be
// called again to re-sync with the backend.
func (s *Service) Load(ctx context.Context) error {
	items, err := s.repo.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch items: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = items
	if err := s.sweepLocked(ctx); err != nil {
		return err
	}
	s.rebuildSelectionLocked()

	s.log.InfoContext(ctx, "store loaded",
		slog.Int("items", len(s.items)),
		slog.Int("selected", len(s.working.items)),
		slog.String("modality", s.activeMode.String()),
	)
	return nil
}

// ActiveModality returns the modality the working set is built for.
func (s *Service) ActiveModality() domain.Modality {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeMode
}

// SetActiveModality switches the exercise modality. The working set is not
// rebuilt automatically; callers follow up with MakeNextSelection.
func (s *Service) SetActiveModality(mode domain.Modality) error {
	if !mode.IsValid() {
		return fmt.Errorf("set modality: %w", domain.NewValidationError("modality", "unknown modality"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if mode != s.activeMode {
		s.activeMode = mode
		s.generationSeq++
	}
	return nil
}

// DueWorkingSet returns the current selection (in order) and the cursor
// position. The returned slice is a copy; the items are shared references.
func (s *Service) DueWorkingSet() ([]*domain.VocabularyItem, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.VocabularyItem, len(s.working.items))
	copy(out, s.working.items)
	return out, s.working.cursor
}

// CurrentItem returns the item under the cursor, or false when the working
// set is empty.
func (s *Service) CurrentItem() (*domain.VocabularyItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentItemLocked()
}

func (s *Service) currentItemLocked() (*domain.VocabularyItem, bool) {
	if len(s.working.items) == 0 {
		return nil, false
	}
	return s.working.items[s.working.cursor], true
}

// AdvanceCursor moves the cursor to the next item. Running off the end
// re-runs the sweep and builds a fresh selection with the cursor reset.
func (s *Service) AdvanceCursor(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceCursorLocked(ctx)
}

func (s *Service) advanceCursorLocked(ctx context.Context) error {
	s.generationSeq++

	if s.working.cursor+1 < len(s.working.items) {
		s.working.cursor++
		return nil
	}

	if err := s.sweepLocked(ctx); err != nil {
		return err
	}
	s.rebuildSelectionLocked()
	return nil
}

// MakeNextSelection discards the current working set, sweeps for missed
// reviews, and builds a fresh selection.
func (s *Service) MakeNextSelection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generationSeq++
	if err := s.sweepLocked(ctx); err != nil {
		return err
	}
	s.rebuildSelectionLocked()
	return nil
}

func (s *Service) rebuildSelectionLocked() {
	s.working = workingSet{items: s.pickLocked(), cursor: 0}
}

// findItemLocked returns the store item with the given id.
func (s *Service) findItemLocked(id uuid.UUID) (*domain.VocabularyItem, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// applyConfirmed copies the server-confirmed record into the store item in
// place, so working-set references observe the update.
func applyConfirmed(dst, src *domain.VocabularyItem) {
	dst.Text = src.Text
	dst.Topic = src.Topic
	dst.RelevantTranslations = src.RelevantTranslations
	dst.UpdatedAt = src.UpdatedAt
	if dst.Schedule == nil {
		dst.Schedule = make(map[domain.Modality]*domain.ScheduleEntry, len(src.Schedule))
	}
	for mode, entry := range src.Schedule {
		e := *entry
		dst.Schedule[mode] = &e
	}
}
