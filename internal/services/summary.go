// Summarization implementation of [Summarizer]
//
// Targets any chat-completions compatible endpoint; the model name comes from
// configuration.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/lectern/internal/shared"
)

const summaryPrompt = "Summarize the following lecture transcript into a concise study summary. Keep the key concepts and definitions."

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// SummaryService implements [Summarizer] over a chat-completions API.
type SummaryService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewSummaryService creates a summarization client from the provider configuration.
func NewSummaryService(cfg shared.SummaryConfig) (*SummaryService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: providers.summary.api_key", shared.ErrMissingConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: providers.summary.base_url", shared.ErrMissingConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: providers.summary.model", shared.ErrMissingConfig)
	}

	return &SummaryService{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: http.DefaultClient,
	}, nil
}

// Summarize sends the lecture text to the model and returns the completion.
func (s *SummaryService) Summarize(ctx context.Context, text string) (string, error) {
	payload := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: summaryPrompt},
			{Role: "user", Content: text},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: summary API status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", shared.ErrServiceUnavailable)
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

var _ Summarizer = (*SummaryService)(nil)
