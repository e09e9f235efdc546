package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vocastudy/backend/internal/domain"
	"github.com/vocastudy/backend/internal/provider"
)

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

// SynthesizeSpeech converts a sentence to MP3 audio via the Speech endpoint.
func (p *Provider) SynthesizeSpeech(ctx context.Context, text string) (*provider.SpeechResult, error) {
	body, err := json.Marshal(speechRequest{
		Model: p.speechModel,
		Voice: p.speechVoice,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal speech request: %w", err)
	}

	p.log.DebugContext(ctx, "speech request", slog.Int("chars", len(text)))

	resp, err := p.postJSON(ctx, p.speechClient, "/audio/speech", body)
	if err != nil {
		return nil, fmt.Errorf("openai: speech request failed: %v: %w", err, domain.ErrSynthesis)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: speech status %d: %w", resp.StatusCode, domain.ErrSynthesis)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("openai: empty audio: %w", domain.ErrSynthesis)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "audio/mpeg"
	}
	return &provider.SpeechResult{Audio: audio, MIMEType: mime}, nil
}
