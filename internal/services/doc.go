// Package services defines the external provider clients: speech-to-text,
// summarization, and translation.
//
// Each provider sits behind a single-method interface so the rest of the app
// can be tested against doubles. The concrete clients take their base URL from
// configuration, which also lets the tests point them at an httptest server.
//
// Key Implementations:
//   - [SpeechService] : Google Cloud Speech recognize endpoint
//   - [SummaryService] : OpenAI-compatible chat completions endpoint
//   - [TranslateService] : Google Translate v2 endpoint
package services
