package tts

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func TestSynthesize_NoKey(t *testing.T) {
	c := NewGoogleClient("", "hi-IN")
	if _, err := c.Synthesize(context.Background(), "namaste"); err == nil {
		t.Fatalf("expected error with missing key")
	}
}

func TestSynthesize_WritesAudioFile(t *testing.T) {
	audio := []byte("RIFFfakewavdata")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"audioContent":"` + base64.StdEncoding.EncodeToString(audio) + `"}`))
	}))
	defer srv.Close()

	c := NewGoogleClient("key", "hi-IN")
	c.Endpoint = srv.URL
	c.HTTPClient = &http.Client{Timeout: time.Second}

	path, err := c.Synthesize(context.Background(), "namaste")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	defer os.Remove(path)

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read audio file: %v", err)
	}
	if string(got) != string(audio) {
		t.Fatalf("audio content mismatch")
	}
}

func TestSynthesize_Failures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status_non_2xx", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(500); _, _ = w.Write([]byte("oops")) }},
		{"bad_json", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("not-json")) }},
		{"empty_audio", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(200)
			_, _ = w.Write([]byte(`{"audioContent":""}`))
		}},
		{"bad_base64", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(200)
			_, _ = w.Write([]byte(`{"audioContent":"!!!"}`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			c := NewGoogleClient("key", "hi-IN")
			c.Endpoint = srv.URL
			c.HTTPClient = &http.Client{Timeout: time.Second}
			if _, err := c.Synthesize(context.Background(), "namaste"); err == nil {
				t.Fatalf("expected error; got nil")
			}
		})
	}
}
