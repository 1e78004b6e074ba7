package agent

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/scenario"
)

const (
	// NoInputApology is returned when there is no utterance to answer.
	NoInputApology = "I didn't catch that. Please try again."
	// ServiceApology is returned once reply generation has exhausted its retries.
	ServiceApology = "I'm having trouble processing your request right now. Please try again later."
)

// maxBackoff caps the inter-attempt delay so a misconfigured attempt count
// cannot grow the wait unboundedly.
const maxBackoff = 30 * time.Second

// Generator produces one reply per utterance from the scenario's system
// prompt. The model service is the least reliable collaborator, so failures
// are retried with exponential backoff and finally absorbed into a fixed
// apology; Generate never returns an error.
type Generator struct {
	llm         LLM
	maxAttempts int
	sleep       func(time.Duration)
}

func NewGenerator(llm LLM) *Generator {
	return &Generator{llm: llm, maxAttempts: 3, sleep: time.Sleep}
}

// Generate runs one stateless system+user exchange for the scenario.
func (g *Generator) Generate(ctx context.Context, utterance string, sc scenario.Scenario) string {
	if strings.TrimSpace(utterance) == "" {
		return NoInputApology
	}

	systemPrompt := scenario.Lookup(sc).SystemPrompt
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		reply, err := g.llm.Complete(ctx, systemPrompt, utterance)
		if err == nil {
			return reply
		}
		log.Printf("reply generation failed (attempt %d/%d): %v", attempt+1, g.maxAttempts, err)
		if attempt < g.maxAttempts-1 {
			delay := time.Duration(1<<uint(attempt)) * time.Second
			if delay > maxBackoff {
				delay = maxBackoff
			}
			g.sleep(delay)
		}
	}
	return ServiceApology
}
