package openai

import (
	"fmt"
	"strings"

	"github.com/vocastudy/backend/internal/domain"
	"github.com/vocastudy/backend/internal/provider"
)

// inputBlock renders the shared INPUT section of every prompt. Topic and
// relevant translations are included only when set.
func inputBlock(req provider.ExerciseRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "INPUT:\n- Word/phrase/pattern: %q\n", req.Text)
	if req.Topic != nil && *req.Topic != "" {
		fmt.Fprintf(&sb, "- Topic: %q\n", *req.Topic)
	}
	if req.RelevantTranslations != nil && *req.RelevantTranslations != "" {
		fmt.Fprintf(&sb, "- Relevant translations: %s\n", *req.RelevantTranslations)
	}
	return sb.String()
}

func buildPrompt(mode domain.Modality, req provider.ExerciseRequest) (prompt string, temperature float64, err error) {
	switch mode {
	case domain.ModalityTranslateSentence:
		return translatePrompt(req), 0.6, nil
	case domain.ModalityFillTheGap:
		return fillTheGapPrompt(req), 0.7, nil
	case domain.ModalityListenAndFill:
		return listenAndFillPrompt(req), 0.7, nil
	default:
		return "", 0, fmt.Errorf("openai: no prompt for modality %q", mode)
	}
}

func translatePrompt(req provider.ExerciseRequest) string {
	return `Generate a JSON object for an English word/phrase/pattern.

` + inputBlock(req) + `
OUTPUT STRUCTURE:
{
    "example_ukr": "Natural Ukrainian sentence using this word/phrase/pattern",
    "example_eng": "The same sentence in English",
    "used_form": "the exact form of word/phrase/pattern you used in example_eng"
}

REQUIREMENTS:
1. Create ONE example sentence for English learners (BEGINNER Level - A1-A2)
2. As Ukrainian example as English example must sound native and natural - DO NOT translate word-by-word
3. Reference Cambridge, Oxford, Collins, or YouGlish for usage guidance
4. If the input contains relevant translations - use them as translation examples and don't translate the word/phrase/pattern by yourself
5. Return ONLY valid JSON, no markdown, no explanations

A GOOD EXAMPLE FOR A VERB PHRASE:

INPUT:
- Word/phrase/pattern: "To pay for"

OUTPUT:
{
    "example_ukr": "Я заплачу за квартиру завтра",
    "example_eng": "I will pay for the apartment tomorrow",
    "used_form": "will pay for"
}

A GOOD EXAMPLE FOR A PATTERN:

INPUT:
- Word/phrase/pattern: "On {month} {ordinal numeral}"
- Topic: "Time & Dates"
- Relevant translations: "Восьмого грудня"

OUTPUT:
{
    "example_ukr": "Моя відпустка починається п'ятого липня",
    "example_eng": "My vacation starts on July 5th",
    "used_form": "on July 5th"
}`
}

func fillTheGapPrompt(req provider.ExerciseRequest) string {
	return `Generate a sentence completion exercise for an English word/phrase/pattern.

` + inputBlock(req) + `
OUTPUT STRUCTURE:
{
    "audioSentence": "Complete English sentence with the word/phrase",
    "displaySentence": "Same sentence with ____ instead of the word/phrase",
    "sentenceTranslation": "Ukrainian translation of the complete sentence",
    "correctAnswer": "the exact word/phrase that was removed",
    "options": ["correctAnswer", "distractor1", "distractor2", "distractor3"],
    "hint": "optional hint in Ukrainian (only if needed)"
}

REQUIREMENTS:
1. Create a sentence for BEGINNER level (A1-A2) English learners
2. The sentence must sound natural and native-like
3. Generate 3 plausible distractors (wrong answers) that are similar in meaning or form
4. Shuffle the options array so correct answer is not always first
5. The displaySentence should have exactly one ____ where the word was removed
6. Reference Cambridge, Oxford, Collins, or YouGlish for usage guidance
7. Return ONLY valid JSON, no markdown, no explanations

EXAMPLE:

INPUT:
- Word/phrase/pattern: "pay for"

OUTPUT:
{
    "audioSentence": "I will pay for the apartment tomorrow",
    "displaySentence": "I will ____ the apartment tomorrow",
    "sentenceTranslation": "Я заплачу за квартиру завтра",
    "correctAnswer": "pay for",
    "options": ["pay for", "pay to", "pay at", "pay with"],
    "hint": null
}`
}

func listenAndFillPrompt(req provider.ExerciseRequest) string {
	return `Generate a listening comprehension exercise for an English word/phrase/pattern.

` + inputBlock(req) + `
OUTPUT STRUCTURE:
{
    "audioSentence": "Complete English sentence with the word/phrase",
    "displaySentence": "Same sentence with ____ instead of the word/phrase",
    "sentenceTranslation": "Ukrainian translation of the complete sentence",
    "correctForm": "the exact word/phrase/form that was used in the sentence",
    "hint": "optional hint in Ukrainian (only if needed)"
}

REQUIREMENTS:
1. Create a sentence for BEGINNER level (A1-A2) English learners
2. The sentence must sound natural and native-like
3. The displaySentence should have exactly one ____ where the word was removed
4. The correctForm should be the EXACT form used in the sentence (not the base form)
   - For example, if sentence uses "paid", correctForm should be "paid" not "pay"
   - If sentence uses "running", correctForm should be "running" not "run"
5. The sentence should be clear when heard (avoid ambiguous words that sound like others)
6. Reference Cambridge, Oxford, Collins, or YouGlish for usage guidance
7. Return ONLY valid JSON, no markdown, no explanations

EXAMPLE 1:

INPUT:
- Word/phrase/pattern: "pay for"

OUTPUT:
{
    "audioSentence": "I will pay for the apartment tomorrow",
    "displaySentence": "I will ____ the apartment tomorrow",
    "sentenceTranslation": "Я заплачу за квартиру завтра",
    "correctForm": "pay for",
    "hint": null
}

EXAMPLE 2:

INPUT:
- Word/phrase/pattern: "run"

OUTPUT:
{
    "audioSentence": "She runs every morning in the park",
    "displaySentence": "She ____ every morning in the park",
    "sentenceTranslation": "Вона бігає кожного ранку в парку",
    "correctForm": "runs",
    "hint": null
}`
}
