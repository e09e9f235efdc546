// Package openai implements exercise generation and speech synthesis on the
// OpenAI REST API (the Responses endpoint for text, the Speech endpoint for
// audio).
package openai

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vocastudy/backend/internal/config"
)

// Provider calls the OpenAI API for exercise generation and TTS.
type Provider struct {
	baseURL     string
	apiKey      string
	model       string
	speechModel string
	speechVoice string

	httpClient   *http.Client
	speechClient *http.Client
	log          *slog.Logger
}

// New creates a Provider from OpenAIConfig.
func New(cfg config.OpenAIConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		speechModel:  cfg.SpeechModel,
		speechVoice:  cfg.SpeechVoice,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		speechClient: &http.Client{Timeout: cfg.SpeechTimeout},
		log:          logger.With("adapter", "openai"),
	}
}

// postJSON sends one JSON request with a single retry on 5xx or network
// errors. The body is rebuilt per attempt.
func (p *Provider) postJSON(ctx context.Context, client *http.Client, path string, body []byte) (*http.Response, error) {
	do := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
		req.Header.Set("Content-Type", "application/json")
		return client.Do(req)
	}

	resp, err := do()

	shouldRetry := err != nil || resp.StatusCode >= 500
	if !shouldRetry {
		return resp, nil
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		if err != nil {
			return nil, err
		}
		return resp, nil
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	p.log.WarnContext(ctx, "openai retry", slog.String("path", path), slog.String("reason", reason))

	time.Sleep(500 * time.Millisecond)

	return do()
}
