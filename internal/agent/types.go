package agent

import (
	"context"
	"time"

	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/record"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/scenario"
)

// LLM generates a reply for one system prompt + utterance exchange.
type LLM interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Synthesizer converts reply text into a playable audio file and returns its path.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// Player plays one audio file, blocking until playback completes.
type Player interface {
	Play(path string) error
}

// Booker inserts a calendar event for the contact and returns a confirmation link.
type Booker interface {
	Book(ctx context.Context, contact string, start, end time.Time, description string) (string, error)
}

// Turn is one utterance-in, reply-out exchange. It exists only long enough for
// the router to derive a log line from it.
type Turn struct {
	Scenario  scenario.Scenario
	Contact   string
	Utterance string
	Reply     string
	When      time.Time
}

// TurnLogger appends one interaction record per turn.
type TurnLogger interface {
	LogTurn(t Turn) error
}

// Recorder is one capture-and-transcribe session under manual control.
type Recorder interface {
	Start(ctx context.Context) error
	Stop()
	Poll() (record.Result, bool)
}

// ControlSurface abstracts the front-end driving the loop: it supplies the
// record start/stop signals and renders turns and notices. Await methods
// return the context error when the user quits.
type ControlSurface interface {
	AwaitStart(ctx context.Context) error
	AwaitStop(ctx context.Context) error
	Notify(text string)
	RenderTurn(speaker, text string)
}
