package stt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/audio"
)

// ErrUnintelligible means audio was captured but could not be mapped to text.
var ErrUnintelligible = errors.New("could not understand the audio")

// ErrServiceUnavailable means the recognition service could not be reached or
// rejected the request for a transport/auth reason.
var ErrServiceUnavailable = errors.New("speech recognition service unavailable")

// GoogleClient recognizes speech through the Google Cloud Speech-to-Text
// REST endpoint (synchronous recognize, LINEAR16 input).
type GoogleClient struct {
	HTTPClient *http.Client
	APIKey     string
	Endpoint   string
	SampleRate int
}

func NewGoogleClient(apiKey string) *GoogleClient {
	return &GoogleClient{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		APIKey:     apiKey,
		Endpoint:   "https://speech.googleapis.com/v1/speech:recognize",
		SampleRate: audio.SampleRate,
	}
}

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

// Transcribe sends one WAV clip for synchronous recognition and returns the
// top transcript. A 2xx response with no results maps to ErrUnintelligible;
// transport faults and auth/rate/server statuses map to ErrServiceUnavailable.
func (c *GoogleClient) Transcribe(ctx context.Context, wavAudio []byte, language string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("google speech api key missing: %w", ErrServiceUnavailable)
	}

	reqBody, _ := json.Marshal(recognizeRequest{
		Config: recognitionConfig{
			Encoding:        "LINEAR16",
			SampleRateHertz: c.SampleRate,
			LanguageCode:    language,
		},
		Audio: recognitionAudio{Content: base64.StdEncoding.EncodeToString(wavAudio)},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+"?key="+c.APIKey, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech request failed: %v: %w", err, ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= 500:
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("speech error: status=%d body=%s: %w", resp.StatusCode, string(b), ErrServiceUnavailable)
	default:
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("speech error: status=%d body=%s", resp.StatusCode, string(b))
	}

	var rr recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return "", fmt.Errorf("speech response decode failed: %w", err)
	}
	if len(rr.Results) == 0 || len(rr.Results[0].Alternatives) == 0 {
		return "", ErrUnintelligible
	}
	transcript := strings.TrimSpace(rr.Results[0].Alternatives[0].Transcript)
	if transcript == "" {
		return "", ErrUnintelligible
	}
	return transcript, nil
}
