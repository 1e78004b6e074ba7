package stt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/audio"
)

func newTestClient(srv *httptest.Server) *GoogleClient {
	c := NewGoogleClient("key")
	c.Endpoint = srv.URL
	c.HTTPClient = &http.Client{Timeout: time.Second}
	return c
}

func TestTranscribe_NoKey(t *testing.T) {
	c := NewGoogleClient("")
	_, err := c.Transcribe(context.Background(), []byte{1, 2}, "hi-IN")
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestTranscribe_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"results":[{"alternatives":[{"transcript":" mujhe thoda time do ","confidence":0.9}]}]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv).Transcribe(context.Background(), []byte{1, 2}, "hi-IN")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if got != "mujhe thoda time do" {
		t.Fatalf("unexpected transcript: %q", got)
	}
}

func TestTranscribe_SampleRateMatchesCapture(t *testing.T) {
	var got recognizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"results":[{"alternatives":[{"transcript":"ok"}]}]}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).Transcribe(context.Background(), []byte{1, 2}, "hi-IN"); err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if got.Config.SampleRateHertz != audio.SampleRate {
		t.Fatalf("recognize config rate %d does not match capture rate %d", got.Config.SampleRateHertz, audio.SampleRate)
	}
}

func TestTranscribe_EmptyResultsIsUnintelligible(t *testing.T) {
	cases := []string{
		`{"results":[]}`,
		`{}`,
		`{"results":[{"alternatives":[{"transcript":"  "}]}]}`,
	}
	for _, body := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(200)
			_, _ = w.Write([]byte(body))
		}))
		c := newTestClient(srv)
		_, err := c.Transcribe(context.Background(), []byte{1, 2}, "hi-IN")
		srv.Close()
		if !errors.Is(err, ErrUnintelligible) {
			t.Fatalf("body %s: expected ErrUnintelligible, got %v", body, err)
		}
	}
}

func TestTranscribe_StatusMapping(t *testing.T) {
	cases := []struct {
		status      int
		unavailable bool
	}{
		{500, true},
		{429, true},
		{403, true},
		{400, false},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte("oops"))
		}))
		c := newTestClient(srv)
		_, err := c.Transcribe(context.Background(), []byte{1, 2}, "hi-IN")
		srv.Close()
		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		if got := errors.Is(err, ErrServiceUnavailable); got != tc.unavailable {
			t.Fatalf("status %d: ErrServiceUnavailable=%v want %v (%v)", tc.status, got, tc.unavailable, err)
		}
	}
}
