package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/scenario"
)

type bookingCall struct {
	contact     string
	start, end  time.Time
	description string
}

type fakeBooker struct {
	calls []bookingCall
	err   error
}

func (f *fakeBooker) Book(ctx context.Context, contact string, start, end time.Time, description string) (string, error) {
	f.calls = append(f.calls, bookingCall{contact: contact, start: start, end: end, description: description})
	if f.err != nil {
		return "", f.err
	}
	return "https://cal/ev1", nil
}

type fakeTurnLogger struct {
	turns []Turn
	err   error
}

func (f *fakeTurnLogger) LogTurn(t Turn) error {
	f.turns = append(f.turns, t)
	return f.err
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 29, 11, 0, 0, 0, time.Local)
}

func newTestRouter(booker *fakeBooker, logger *fakeTurnLogger) *Router {
	r := NewRouter(booker, logger)
	r.now = fixedNow
	return r
}

func TestRoute_TriggerPhraseBooksOnce(t *testing.T) {
	for _, reply := range []string{
		"Bilkul! Scheduling Meeting kal ke liye.",
		"ठीक है, स्केड्यूलिंग मीटिंग done.",
	} {
		booker := &fakeBooker{}
		logger := &fakeTurnLogger{}
		r := newTestRouter(booker, logger)

		got := r.Route(context.Background(), scenario.DemoScheduling, "a@b.com", "haan kal demo", reply)
		if got != reply {
			t.Fatalf("reply must pass through unchanged, got %q", got)
		}
		if len(booker.calls) != 1 {
			t.Fatalf("reply %q: expected exactly one booking, got %d", reply, len(booker.calls))
		}
		call := booker.calls[0]
		if call.contact != "a@b.com" {
			t.Fatalf("unexpected contact: %q", call.contact)
		}
		wantStart := time.Date(2026, 8, 30, 15, 0, 0, 0, time.Local)
		if !call.start.Equal(wantStart) {
			t.Fatalf("unexpected start: %v want %v", call.start, wantStart)
		}
		if !call.end.Equal(wantStart.Add(time.Hour)) {
			t.Fatalf("unexpected end: %v", call.end)
		}
		if len(logger.turns) != 1 {
			t.Fatalf("expected one log line, got %d", len(logger.turns))
		}
	}
}

func TestRoute_NoTriggerNoBooking(t *testing.T) {
	booker := &fakeBooker{}
	logger := &fakeTurnLogger{}
	r := newTestRouter(booker, logger)

	r.Route(context.Background(), scenario.DemoScheduling, "a@b.com", "sochenge", "Theek hai, baad mein baat karte hain.")
	if len(booker.calls) != 0 {
		t.Fatalf("expected zero bookings, got %d", len(booker.calls))
	}
	if len(logger.turns) != 1 {
		t.Fatalf("expected one log line, got %d", len(logger.turns))
	}
}

func TestRoute_TriggerIgnoredOutsideDemoScheduling(t *testing.T) {
	booker := &fakeBooker{}
	logger := &fakeTurnLogger{}
	r := newTestRouter(booker, logger)

	r.Route(context.Background(), scenario.CandidateInterviewing, "candidate@example.com", "hello", "Scheduling Meeting")
	if len(booker.calls) != 0 {
		t.Fatalf("trigger must only fire for demo scheduling")
	}
}

func TestRoute_PaymentFollowupLogsTurn(t *testing.T) {
	booker := &fakeBooker{}
	logger := &fakeTurnLogger{}
	r := newTestRouter(booker, logger)

	reply := r.Route(context.Background(), scenario.PaymentFollowup, "cust@x.com", "mujhe thoda time do", "Koi baat nahi ji.")
	if reply != "Koi baat nahi ji." {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if len(booker.calls) != 0 {
		t.Fatalf("expected no booking for payment followup")
	}
	if len(logger.turns) != 1 {
		t.Fatalf("expected one log line, got %d", len(logger.turns))
	}
	turn := logger.turns[0]
	if turn.Scenario != scenario.PaymentFollowup || turn.Contact != "cust@x.com" {
		t.Fatalf("unexpected turn: %+v", turn)
	}
	if turn.Utterance != "mujhe thoda time do" || !strings.Contains(turn.Reply, "Koi baat nahi") {
		t.Fatalf("unexpected turn content: %+v", turn)
	}
	if !turn.When.Equal(fixedNow()) {
		t.Fatalf("unexpected timestamp: %v", turn.When)
	}
}

func TestRoute_SideEffectFaultsDoNotBlockReply(t *testing.T) {
	booker := &fakeBooker{err: errors.New("calendar down")}
	logger := &fakeTurnLogger{err: errors.New("disk full")}
	r := newTestRouter(booker, logger)

	got := r.Route(context.Background(), scenario.DemoScheduling, "a@b.com", "haan", "Scheduling Meeting pakka.")
	if got != "Scheduling Meeting pakka." {
		t.Fatalf("reply must survive side-effect faults, got %q", got)
	}
	if len(booker.calls) != 1 || len(logger.turns) != 1 {
		t.Fatalf("side effects must still be attempted")
	}
}
