package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBook_NoToken(t *testing.T) {
	c := NewGoogleClient("", "primary")
	_, err := c.Book(context.Background(), "a@b.com", time.Now(), time.Now().Add(time.Hour), "demo")
	if err == nil {
		t.Fatalf("expected error with missing token")
	}
}

func TestBook_SendsEventAndReturnsLink(t *testing.T) {
	var got eventRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing bearer token")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode event: %v", err)
		}
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"id":"ev1","htmlLink":"https://cal/ev1"}`))
	}))
	defer srv.Close()

	c := NewGoogleClient("tok", "primary")
	c.Endpoint = srv.URL
	c.HTTPClient = &http.Client{Timeout: time.Second}

	start := time.Date(2026, 8, 30, 15, 0, 0, 0, time.Local)
	link, err := c.Book(context.Background(), "a@b.com", start, start.Add(time.Hour), "Demo session for our ERP system product.")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if link != "https://cal/ev1" {
		t.Fatalf("unexpected link: %q", link)
	}
	if got.Summary != "AI Demo Session" {
		t.Fatalf("unexpected summary: %q", got.Summary)
	}
	if len(got.Attendees) != 1 || got.Attendees[0].Email != "a@b.com" {
		t.Fatalf("unexpected attendees: %+v", got.Attendees)
	}
	if got.Start.TimeZone != "Asia/Kolkata" {
		t.Fatalf("unexpected timezone: %q", got.Start.TimeZone)
	}
	if got.Reminders.UseDefault || len(got.Reminders.Overrides) != 2 {
		t.Fatalf("unexpected reminders: %+v", got.Reminders)
	}
}

func TestBook_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
		_, _ = w.Write([]byte("denied"))
	}))
	defer srv.Close()

	c := NewGoogleClient("tok", "primary")
	c.Endpoint = srv.URL
	c.HTTPClient = &http.Client{Timeout: time.Second}
	if _, err := c.Book(context.Background(), "a@b.com", time.Now(), time.Now().Add(time.Hour), "demo"); err == nil {
		t.Fatalf("expected error; got nil")
	}
}
