package scheduler

import (
	"strings"

	"github.com/google/uuid"

	"github.com/vocastudy/backend/internal/domain"
)

// AddItemInput carries the fields of a new vocabulary item.
type AddItemInput struct {
	Text                 string
	Topic                *string
	RelevantTranslations *string
}

func (in *AddItemInput) Validate() error {
	var fields []domain.FieldError
	if strings.TrimSpace(in.Text) == "" {
		fields = append(fields, domain.FieldError{Field: "text", Message: "must not be empty"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// RecordOutcomeInput identifies the reviewed item and the recall outcome.
type RecordOutcomeInput struct {
	ItemID   uuid.UUID
	Modality domain.Modality
	Outcome  domain.ReviewOutcome
}

func (in *RecordOutcomeInput) Validate() error {
	var fields []domain.FieldError
	if in.ItemID == uuid.Nil {
		fields = append(fields, domain.FieldError{Field: "item_id", Message: "must not be empty"})
	}
	if !in.Modality.IsValid() {
		fields = append(fields, domain.FieldError{Field: "modality", Message: "unknown modality"})
	}
	if !in.Outcome.IsValid() {
		fields = append(fields, domain.FieldError{Field: "outcome", Message: "must be AGAIN or REVIEW"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}
