package agent

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/record"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/scenario"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/stt"
)

// Loop drives one scenario end to end: greeting, then repeated
// record -> transcribe -> generate -> route -> speak turns until an exit
// phrase or cancellation. All collaborator calls except the recognition
// worker run on the caller's goroutine, one turn at a time.
type Loop struct {
	control    ControlSurface
	newSession func() Recorder
	generator  *Generator
	router     *Router
	tts        Synthesizer
	player     Player

	// PollInterval and MaxWait bound the wait for a recognition result.
	PollInterval time.Duration
	MaxWait      time.Duration
}

func NewLoop(control ControlSurface, newSession func() Recorder, generator *Generator, router *Router, tts Synthesizer, player Player) *Loop {
	return &Loop{
		control:      control,
		newSession:   newSession,
		generator:    generator,
		router:       router,
		tts:          tts,
		player:       player,
		PollInterval: 100 * time.Millisecond,
		MaxWait:      3 * time.Second,
	}
}

// Run executes the conversation for one scenario and contact. It returns nil
// when the user speaks an exit phrase and the context error when cancelled.
// Capture and transcription faults never escalate out of the loop; they
// produce a notice and the loop re-offers the record control.
func (l *Loop) Run(ctx context.Context, sc scenario.Scenario, contact string) error {
	entry := scenario.Lookup(sc)
	l.control.RenderTurn("Agent", entry.Greeting)
	l.speak(ctx, entry.Greeting)

	for {
		if err := l.control.AwaitStart(ctx); err != nil {
			return err
		}

		rec := l.newSession()
		if err := rec.Start(ctx); err != nil {
			l.control.Notify("Could not start recording: " + err.Error())
			continue
		}

		if err := l.control.AwaitStop(ctx); err != nil {
			rec.Stop()
			return err
		}
		rec.Stop()

		res := l.awaitResult(ctx, rec)
		if res.Err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.control.Notify(failureNotice(res.Err))
			continue
		}

		utterance := strings.TrimSpace(res.Transcript)
		if utterance == "" {
			l.control.Notify(failureNotice(stt.ErrUnintelligible))
			continue
		}
		l.control.RenderTurn("You", utterance)

		if scenario.IsExitPhrase(utterance) {
			return nil
		}

		reply := l.generator.Generate(ctx, utterance, sc)
		reply = l.router.Route(ctx, sc, contact, utterance, reply)
		l.control.RenderTurn("Agent", reply)
		l.speak(ctx, reply)
	}
}

// awaitResult polls the session in short increments so the caller stays
// responsive, giving up after MaxWait.
func (l *Loop) awaitResult(ctx context.Context, rec Recorder) record.Result {
	deadline := time.Now().Add(l.MaxWait)
	for {
		if r, ok := rec.Poll(); ok {
			return r
		}
		if time.Now().After(deadline) {
			return record.Result{Err: record.ErrTimeout}
		}
		select {
		case <-ctx.Done():
			return record.Result{Err: ctx.Err()}
		case <-time.After(l.PollInterval):
		}
	}
}

// speak synthesizes and plays one reply. Synthesis or playback faults degrade
// to a diagnostic; the conversation continues.
func (l *Loop) speak(ctx context.Context, text string) {
	path, err := l.tts.Synthesize(ctx, text)
	if err != nil {
		log.Printf("speech synthesis failed: %v", err)
		l.control.Notify("Audio output unavailable.")
		return
	}
	defer os.Remove(path)
	if err := l.player.Play(path); err != nil {
		log.Printf("audio playback failed: %v", err)
	}
}

func failureNotice(err error) string {
	switch {
	case errors.Is(err, stt.ErrUnintelligible):
		return "Could not understand the audio. Please try again."
	case errors.Is(err, stt.ErrServiceUnavailable):
		return "Speech recognition service unavailable. Please try again."
	case errors.Is(err, record.ErrNoAudioCaptured):
		return "No audio was recorded. Please try again."
	case errors.Is(err, record.ErrTimeout):
		return "Processing took too long. Please try again."
	default:
		return "Something went wrong: " + err.Error()
	}
}
