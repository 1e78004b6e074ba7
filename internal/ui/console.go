// Package ui provides the terminal front-end for the conversation loop.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Console gates recording on ENTER presses and prints turns and notices. In
// auto mode both waits return immediately: capture begins as soon as the
// agent finishes speaking and silence detection ends it.
type Console struct {
	out   io.Writer
	lines chan string
	auto  bool
}

// NewConsole starts a reader goroutine on in. The goroutine exits when in
// reaches EOF, after which both waits report io.EOF.
func NewConsole(in io.Reader, out io.Writer, auto bool) *Console {
	c := &Console{out: out, lines: make(chan string, 8), auto: auto}
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			c.lines <- sc.Text()
		}
		close(c.lines)
	}()
	return c
}

// AwaitStart blocks until the user asks to record.
func (c *Console) AwaitStart(ctx context.Context) error {
	if c.auto {
		fmt.Fprintln(c.out, "\nListening...")
		return ctx.Err()
	}
	fmt.Fprint(c.out, "\nPress ENTER to start recording (Ctrl+C to quit): ")
	return c.awaitLine(ctx)
}

// AwaitStop blocks until the user ends the recording.
func (c *Console) AwaitStop(ctx context.Context) error {
	if c.auto {
		return ctx.Err()
	}
	fmt.Fprint(c.out, "Recording... press ENTER to stop: ")
	return c.awaitLine(ctx)
}

func (c *Console) awaitLine(ctx context.Context) error {
	// Presses queued while the agent was busy speaking are not commands; only
	// input after the prompt counts.
drain:
	for {
		select {
		case _, ok := <-c.lines:
			if !ok {
				return io.EOF
			}
		default:
			break drain
		}
	}

	select {
	case _, ok := <-c.lines:
		if !ok {
			return io.EOF
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Console) Notify(text string) {
	fmt.Fprintln(c.out, text)
}

func (c *Console) RenderTurn(speaker, text string) {
	fmt.Fprintf(c.out, "%s: %s\n", speaker, text)
}
