package provider

// ExerciseRequest carries the content fields of a vocabulary item to the
// generation provider. Topic and translations are optional context.
type ExerciseRequest struct {
	Text                 string
	Topic                *string
	RelevantTranslations *string
}

// ExercisePayload is the structured exercise produced by a generation
// provider for one item and one modality. Fields are populated per modality:
// translate-sentence fills the sentence pair and UsedForm; fill-the-gap adds
// Options; listen-and-fill fills CorrectForm for the audio sentence.
type ExercisePayload struct {
	// FullSentence is the complete example sentence in the target language.
	FullSentence string
	// DisplaySentence is the sentence shown to the learner. For gap
	// exercises it contains a single "____" gap.
	DisplaySentence string
	// Translation is the learner-language rendering of the full sentence.
	Translation string
	// CorrectForm is the exact form that fills the gap (gap exercises) or
	// the form of the studied item used in the sentence (translation).
	CorrectForm string
	// Options holds the correct answer plus distractors, pre-shuffled.
	// Empty for modalities without multiple choice.
	Options []string
	// Hint is an optional learner-language hint.
	Hint *string
}

// SpeechResult is synthesized audio for a sentence.
type SpeechResult struct {
	// Audio is the raw encoded audio stream.
	Audio []byte
	// MIMEType describes the encoding, e.g. "audio/mpeg".
	MIMEType string
}
