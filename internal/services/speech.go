// Speech-to-text implementation of [Transcriber]
//
// Request and response shapes follow https://cloud.google.com/speech-to-text/docs/reference/rest/v1/speech/recognize
package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/lectern/internal/shared"
)

const (
	speechEncoding   = "AMR_WB"
	speechSampleRate = 16000
)

type recognitionConfig struct {
	Encoding        string `json:"encoding"`
	SampleRateHertz int    `json:"sampleRateHertz"`
	LanguageCode    string `json:"languageCode"`
}

type recognitionAudio struct {
	Content string `json:"content"`
}

type recognizeRequest struct {
	Config recognitionConfig `json:"config"`
	Audio  recognitionAudio  `json:"audio"`
}

type recognizeAlternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

type recognizeResult struct {
	Alternatives []recognizeAlternative `json:"alternatives"`
}

type recognizeResponse struct {
	Results []recognizeResult `json:"results"`
}

// SpeechService implements [Transcriber] against the Cloud Speech recognize
// endpoint, authenticated by API key.
type SpeechService struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

// NewSpeechService creates a speech client from the provider configuration.
func NewSpeechService(cfg shared.SpeechConfig) (*SpeechService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: providers.speech.api_key", shared.ErrMissingConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: providers.speech.base_url", shared.ErrMissingConfig)
	}

	language := cfg.Language
	if language == "" {
		language = "en-US"
	}

	return &SpeechService{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		language:   language,
		httpClient: http.DefaultClient,
	}, nil
}

// Transcribe sends the captured audio for recognition and returns the top
// alternative of the first result. An empty result set means the provider
// heard nothing usable and maps to [shared.ErrNoTranscription].
func (s *SpeechService) Transcribe(ctx context.Context, audio []byte) (string, error) {
	payload := recognizeRequest{
		Config: recognitionConfig{
			Encoding:        speechEncoding,
			SampleRateHertz: speechSampleRate,
			LanguageCode:    s.language,
		},
		Audio: recognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
	}

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
		return "", fmt.Errorf("%w: speech API status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}

	var result recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Results) == 0 || len(result.Results[0].Alternatives) == 0 {
		return "", shared.ErrNoTranscription
	}

	return result.Results[0].Alternatives[0].Transcript, nil
}

var _ Transcriber = (*SpeechService)(nil)
