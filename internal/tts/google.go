package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// GoogleClient synthesizes speech through the Google Cloud Text-to-Speech REST
// endpoint. Output is LINEAR16 so the clip can be played back directly as WAV.
type GoogleClient struct {
	HTTPClient   *http.Client
	APIKey       string
	Endpoint     string
	LanguageCode string
	VoiceGender  string
}

func NewGoogleClient(apiKey, languageCode string) *GoogleClient {
	if languageCode == "" {
		languageCode = "hi-IN"
	}
	return &GoogleClient{
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		APIKey:       apiKey,
		Endpoint:     "https://texttospeech.googleapis.com/v1/text:synthesize",
		LanguageCode: languageCode,
		VoiceGender:  "MALE",
	}
}

type synthesisInput struct {
	Text string `json:"text"`
}

type voiceSelection struct {
	LanguageCode string `json:"languageCode"`
	SSMLGender   string `json:"ssmlGender"`
}

type audioConfig struct {
	AudioEncoding string `json:"audioEncoding"`
}

type synthesizeRequest struct {
	Input       synthesisInput `json:"input"`
	Voice       voiceSelection `json:"voice"`
	AudioConfig audioConfig    `json:"audioConfig"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize converts text to speech and writes the audio to a temp WAV file,
// returning its path. The caller owns the file and removes it after playback.
func (c *GoogleClient) Synthesize(ctx context.Context, text string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("google tts api key missing")
	}

	reqBody, _ := json.Marshal(synthesizeRequest{
		Input:       synthesisInput{Text: text},
		Voice:       voiceSelection{LanguageCode: c.LanguageCode, SSMLGender: c.VoiceGender},
		AudioConfig: audioConfig{AudioEncoding: "LINEAR16"},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+"?key="+c.APIKey, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("tts error: status=%d body=%s", resp.StatusCode, string(b))
	}

	var sr synthesizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("tts response decode failed: %w", err)
	}
	audio, err := base64.StdEncoding.DecodeString(sr.AudioContent)
	if err != nil {
		return "", fmt.Errorf("tts audio decode failed: %w", err)
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("tts: empty audio content")
	}

	out, err := os.CreateTemp("", "reply-*.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	if _, err := out.Write(audio); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	return out.Name(), nil
}
