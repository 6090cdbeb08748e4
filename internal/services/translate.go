// Translation implementation of [Translator]
//
// Request and response shapes follow https://cloud.google.com/translate/docs/reference/rest/v2/translate
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/lectern/internal/shared"
)

type translateRequest struct {
	Q      string `json:"q"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translation struct {
	TranslatedText string `json:"translatedText"`
}

type translateData struct {
	Translations []translation `json:"translations"`
}

type translateResponse struct {
	Data translateData `json:"data"`
}

// TranslateService implements [Translator] against the Translate v2 endpoint,
// authenticated by API key.
type TranslateService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewTranslateService creates a translation client from the provider configuration.
func NewTranslateService(cfg shared.TranslateConfig) (*TranslateService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: providers.translate.api_key", shared.ErrMissingConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: providers.translate.base_url", shared.ErrMissingConfig)
	}

	return &TranslateService{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: http.DefaultClient,
	}, nil
}

// Translate renders the text into the target language.
func (s *TranslateService) Translate(ctx context.Context, text, target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("%w: target language", shared.ErrMissingField)
	}

	payload := translateRequest{Q: text, Target: target, Format: "text"}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"?key="+s.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: translate API status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}

	var result translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data.Translations) == 0 {
		return "", fmt.Errorf("%w: empty translation", shared.ErrServiceUnavailable)
	}

	return result.Data.Translations[0].TranslatedText, nil
}

var _ Translator = (*TranslateService)(nil)
