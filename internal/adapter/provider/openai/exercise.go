package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vocastudy/backend/internal/domain"
	"github.com/vocastudy/backend/internal/provider"
)

// responsesRequest is the body of POST /responses.
type responsesRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Input       string  `json:"input"`
}

// responsesBody is the subset of the Responses API reply we read: the
// concatenated output_text blocks.
type responsesBody struct {
	Output []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

func (b *responsesBody) outputText() string {
	var sb strings.Builder
	for _, out := range b.Output {
		for _, c := range out.Content {
			if c.Type == "output_text" {
				sb.WriteString(c.Text)
			}
		}
	}
	return sb.String()
}

// translatePayload is the model's reply for a translate-sentence exercise.
type translatePayload struct {
	ExampleUkr string `json:"example_ukr"`
	ExampleEng string `json:"example_eng"`
	UsedForm   string `json:"used_form"`
}

// gapPayload is the model's reply for fill-the-gap and listen-and-fill
// exercises. Fill-the-gap replies carry correct_answer plus options;
// listen-and-fill replies carry correctForm only.
type gapPayload struct {
	AudioSentence       string   `json:"audioSentence"`
	DisplaySentence     string   `json:"displaySentence"`
	SentenceTranslation string   `json:"sentenceTranslation"`
	CorrectAnswer       string   `json:"correctAnswer"`
	CorrectForm         string   `json:"correctForm"`
	Options             []string `json:"options"`
	Hint                *string  `json:"hint"`
}

// GenerateExercise asks the model for one exercise payload in the given
// modality.
func (p *Provider) GenerateExercise(ctx context.Context, mode domain.Modality, req provider.ExerciseRequest) (*provider.ExercisePayload, error) {
	prompt, temperature, err := buildPrompt(mode, req)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(responsesRequest{
		Model:       p.model,
		Temperature: temperature,
		Input:       prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	p.log.DebugContext(ctx, "exercise request",
		slog.String("modality", mode.String()),
		slog.String("text", req.Text),
	)

	resp, err := p.postJSON(ctx, p.httpClient, "/responses", body)
	if err != nil {
		return nil, fmt.Errorf("openai: request failed: %v: %w", err, domain.ErrGeneration)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: unexpected status %d: %w", resp.StatusCode, domain.ErrGeneration)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read body: %w", err)
	}

	var reply responsesBody
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("openai: decode response envelope: %w", err)
	}

	jsonStr, err := extractJSON(reply.outputText())
	if err != nil {
		return nil, fmt.Errorf("openai: %v: %w", err, domain.ErrGeneration)
	}

	payload, err := parsePayload(mode, jsonStr)
	if err != nil {
		return nil, fmt.Errorf("openai: %v: %w", err, domain.ErrGeneration)
	}
	return payload, nil
}

func parsePayload(mode domain.Modality, jsonStr string) (*provider.ExercisePayload, error) {
	if mode == domain.ModalityTranslateSentence {
		var tp translatePayload
		if err := json.Unmarshal([]byte(jsonStr), &tp); err != nil {
			return nil, fmt.Errorf("decode exercise json: %w", err)
		}
		if tp.ExampleEng == "" || tp.ExampleUkr == "" || tp.UsedForm == "" {
			return nil, fmt.Errorf("incomplete translate payload")
		}
		return &provider.ExercisePayload{
			FullSentence: tp.ExampleEng,
			Translation:  tp.ExampleUkr,
			CorrectForm:  tp.UsedForm,
		}, nil
	}

	var gp gapPayload
	if err := json.Unmarshal([]byte(jsonStr), &gp); err != nil {
		return nil, fmt.Errorf("decode exercise json: %w", err)
	}
	correct := gp.CorrectForm
	if correct == "" {
		correct = gp.CorrectAnswer
	}
	if gp.AudioSentence == "" || gp.DisplaySentence == "" || correct == "" {
		return nil, fmt.Errorf("incomplete %s payload", strings.ToLower(mode.String()))
	}
	if !strings.Contains(gp.DisplaySentence, "____") {
		return nil, fmt.Errorf("display sentence has no gap")
	}
	if mode == domain.ModalityFillTheGap && len(gp.Options) < 2 {
		return nil, fmt.Errorf("fill-the-gap payload needs answer options")
	}
	return &provider.ExercisePayload{
		FullSentence:    gp.AudioSentence,
		DisplaySentence: gp.DisplaySentence,
		Translation:     gp.SentenceTranslation,
		CorrectForm:     correct,
		Options:         gp.Options,
		Hint:            gp.Hint,
	}, nil
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	out := s[start : end+1]
	if !json.Valid([]byte(out)) {
		return "", fmt.Errorf("response does not contain valid JSON")
	}
	return out, nil
}
