package mock

import (
	"context"
	"sync"
)

// Generator is a test double for ai.Generator.
// It replays a scripted sequence of responses, or delegates to
// CompleteFunc if set, and records every prompt pair it receives.
type Generator struct {
	// CompleteFunc is called by Complete if set.
	CompleteFunc func(ctx context.Context, system, user string) (string, error)

	mu        sync.Mutex
	responses []response
	next      int
	calls     []Call
}

type response struct {
	text string
	err  error
}

// Call records one prompt pair passed to Complete.
type Call struct {
	System string
	User   string
}

// NewGenerator creates a mock generator with no scripted responses.
// Without a script or CompleteFunc, Complete returns "{}".
func NewGenerator() *Generator {
	return &Generator{}
}

// Respond appends a successful response to the script.
func (g *Generator) Respond(text string) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses = append(g.responses, response{text: text})
	return g
}

// Fail appends an error response to the script.
func (g *Generator) Fail(err error) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses = append(g.responses, response{err: err})
	return g
}

// Complete replays the next scripted response. When the script is
// exhausted the last entry repeats.
func (g *Generator) Complete(ctx context.Context, system, user string) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, Call{System: system, User: user})
	fn := g.CompleteFunc
	var r response
	var scripted bool
	if len(g.responses) > 0 {
		idx := g.next
		if idx >= len(g.responses) {
			idx = len(g.responses) - 1
		}
		r = g.responses[idx]
		g.next++
		scripted = true
	}
	g.mu.Unlock()

	if fn != nil {
		return fn(ctx, system, user)
	}
	if scripted {
		return r.text, r.err
	}
	return "{}", nil
}

// CallCount returns the number of times Complete was called.
func (g *Generator) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// Calls returns a copy of the recorded prompt pairs.
func (g *Generator) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Call, len(g.calls))
	copy(out, g.calls)
	return out
}

// Reset clears the script, recorded calls, and CompleteFunc.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses = nil
	g.next = 0
	g.calls = nil
	g.CompleteFunc = nil
}
