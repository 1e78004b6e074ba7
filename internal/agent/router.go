package agent

import (
	"context"
	"log"
	"time"

	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/scenario"
)

const demoDescription = "Demo session for our ERP system product."

// Router applies per-scenario side effects to a generated reply: a calendar
// booking when a demo-scheduling reply carries the trigger phrase, and one
// interaction-log line for every turn. Side-effect faults are reported and
// swallowed so the caller always gets the reply back for playback.
type Router struct {
	booker Booker
	logger TurnLogger
	now    func() time.Time
}

func NewRouter(booker Booker, logger TurnLogger) *Router {
	return &Router{booker: booker, logger: logger, now: time.Now}
}

// Route returns reply unchanged after applying side effects.
func (r *Router) Route(ctx context.Context, sc scenario.Scenario, contact, utterance, reply string) string {
	if sc == scenario.DemoScheduling && scenario.ContainsTrigger(reply) {
		start := r.defaultSlot()
		link, err := r.booker.Book(ctx, contact, start, start.Add(time.Hour), demoDescription)
		if err != nil {
			log.Printf("demo booking failed: %v", err)
		} else {
			log.Printf("demo scheduled: %s", link)
		}
	}

	turn := Turn{
		Scenario:  sc,
		Contact:   contact,
		Utterance: utterance,
		Reply:     reply,
		When:      r.now(),
	}
	if err := r.logger.LogTurn(turn); err != nil {
		log.Printf("interaction log failed: %v", err)
	}
	return reply
}

// defaultSlot is the booking time used when the reply carries no explicit
// slot: next calendar day at 15:00 local, one hour long.
func (r *Router) defaultSlot() time.Time {
	tomorrow := r.now().AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 15, 0, 0, 0, tomorrow.Location())
}
