package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vocastudy/backend/internal/domain"
)

// AddItem inserts a new vocabulary item. Duplicate texts are rejected after
// normalization. The new item joins the store immediately; a selection is
// built from scratch only when the working set is currently empty, so an
// in-progress session is not reshuffled.
func (s *Service) AddItem(ctx context.Context, input AddItemInput) (*domain.VocabularyItem, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := domain.NormalizeText(input.Text)
	for _, existing := range s.items {
		if domain.NormalizeText(existing.Text) == normalized {
			return nil, fmt.Errorf("add item %q: %w", input.Text, domain.ErrAlreadyExists)
		}
	}

	item, err := s.repo.Insert(ctx, input.Text, input.Topic, input.RelevantTranslations)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	s.items = append(s.items, item)

	s.log.InfoContext(ctx, "item added", slog.String("item_id", item.ID.String()))

	if len(s.working.items) == 0 {
		s.rebuildSelectionLocked()
		s.generationSeq++
	}
	return item, nil
}
