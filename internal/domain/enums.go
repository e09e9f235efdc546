package domain

// ReviewStatus represents the scheduling state of an item within one modality.
type ReviewStatus string

const (
	ReviewStatusNew    ReviewStatus = "NEW"
	ReviewStatusAgain  ReviewStatus = "AGAIN"
	ReviewStatusReview ReviewStatus = "REVIEW"
	ReviewStatusMissed ReviewStatus = "MISSED"
)

func (s ReviewStatus) String() string { return string(s) }

func (s ReviewStatus) IsValid() bool {
	switch s {
	case ReviewStatusNew, ReviewStatusAgain, ReviewStatusReview, ReviewStatusMissed:
		return true
	}
	return false
}

// ReviewOutcome is the learner's recall judgment for the presented item.
type ReviewOutcome string

const (
	ReviewOutcomeAgain  ReviewOutcome = "AGAIN"
	ReviewOutcomeReview ReviewOutcome = "REVIEW"
)

func (o ReviewOutcome) String() string { return string(o) }

func (o ReviewOutcome) IsValid() bool {
	switch o {
	case ReviewOutcomeAgain, ReviewOutcomeReview:
		return true
	}
	return false
}

// Status returns the ReviewStatus recorded on an item after this outcome.
func (o ReviewOutcome) Status() ReviewStatus {
	if o == ReviewOutcomeAgain {
		return ReviewStatusAgain
	}
	return ReviewStatusReview
}

// Modality identifies one exercise type with its own independent
// scheduling state per item.
type Modality string

const (
	ModalityTranslateSentence Modality = "TRANSLATE_SENTENCE"
	ModalityFillTheGap        Modality = "FILL_THE_GAP"
	ModalityListenAndFill     Modality = "LISTEN_AND_FILL"
)

func (m Modality) String() string { return string(m) }

func (m Modality) IsValid() bool {
	switch m {
	case ModalityTranslateSentence, ModalityFillTheGap, ModalityListenAndFill:
		return true
	}
	return false
}

// Modalities lists every supported modality. Each item carries one schedule
// entry per element of this list.
func Modalities() []Modality {
	return []Modality{ModalityTranslateSentence, ModalityFillTheGap, ModalityListenAndFill}
}
