// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/poiesic/listera/ai"
	"github.com/poiesic/listera/ai/openai"
	"github.com/poiesic/listera/core"
)

// Client turns a bare product name/brand/price into a fully-described
// ProductDraft by calling the generative service with bounded corrective
// retries. It is stateless across calls; the only state is the per-call
// accumulation of correction notes.
type Client struct {
	gen        ai.Generator
	maxRetries int
	maxTags    int
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithMaxRetries sets the corrective retry budget. A budget of n allows
// n+1 total attempts. Default is 2.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithMaxTags sets the tag cap applied during normalization.
// Default is core.MaxTags.
func WithMaxTags(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxTags = n
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a structured generation client around the given
// generator.
func NewClient(gen ai.Generator, opts ...Option) (*Client, error) {
	if gen == nil {
		return nil, ErrGeneratorRequired
	}

	c := &Client{
		gen:        gen,
		maxRetries: 2,
		maxTags:    core.MaxTags,
		logger:     slog.Default().With("component", "generate"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DraftRequest carries the caller-supplied product facts. Price and
// Stock are authoritative: whatever the model generates for them is
// overwritten with these values.
type DraftRequest struct {
	Name  string
	Brand string
	Price int64
	Stock int
}

// outcomeKind tags the result of a single generation attempt. The retry
// loop inspects the tag instead of matching heterogeneous error types.
type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	// outcomeTransport: service unreachable or API error. Retried with
	// an unchanged prompt; re-raised as-is on the final attempt.
	outcomeTransport
	// outcomeRetryable: malformed or invalid content. Retried with a
	// corrective note appended to the prompt.
	outcomeRetryable
)

type attemptOutcome struct {
	kind  outcomeKind
	draft *core.ProductDraft
	note  string
	err   error
}

// Draft generates validated product content. On content failures each
// retry re-sends the base prompt plus every correction note collected so
// far, so the model sees the context of its prior mistakes. After
// maxRetries+1 attempts the call fails with a *GenerationError, except
// that a transport failure on the final attempt propagates unchanged.
func (c *Client) Draft(ctx context.Context, req DraftRequest) (*core.ProductDraft, error) {
	base := buildDraftPrompt(req)
	var notes []string

	var lastErr error
	lastKind := outcomeRetryable

	attempts := c.maxRetries + 1
	c.logger.Info("generating product draft", "name", req.Name, "brand", req.Brand)

	for attempt := 1; attempt <= attempts; attempt++ {
		out := c.attemptDraft(ctx, assemblePrompt(base, notes), req)

		switch out.kind {
		case outcomeSuccess:
			c.logger.Info("draft generated", "name", req.Name, "attempt", attempt)
			return out.draft, nil
		case outcomeTransport:
			c.logger.Error("generative service error",
				"attempt", attempt, "maxAttempts", attempts, "err", out.err)
		case outcomeRetryable:
			c.logger.Warn("draft attempt rejected",
				"attempt", attempt, "maxAttempts", attempts, "err", out.err)
			if out.note != "" {
				notes = append(notes, out.note)
			}
		}

		lastErr = out.err
		lastKind = out.kind
	}

	if lastKind == outcomeTransport {
		return nil, lastErr
	}
	return nil, &GenerationError{Attempts: attempts, Err: lastErr}
}

// attemptDraft performs one generate-parse-normalize-validate pass.
func (c *Client) attemptDraft(ctx context.Context, user string, req DraftRequest) attemptOutcome {
	text, err := c.gen.Complete(ctx, draftSystemPrompt, user)
	if err != nil {
		return attemptOutcome{kind: outcomeTransport, err: err}
	}

	text = openai.RepairJSON(text)

	if !json.Valid([]byte(text)) {
		return attemptOutcome{
			kind: outcomeRetryable,
			note: noteStrictJSONOnly,
			err:  fmt.Errorf("%w: %s", ErrMalformedOutput, truncate(text, 300)),
		}
	}

	var payload draftPayload
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return attemptOutcome{
			kind: outcomeRetryable,
			note: fmt.Sprintf(noteFixValidation, truncate(err.Error(), 900)),
			err:  fmt.Errorf("%w: %w", ErrSchemaViolation, err),
		}
	}

	draft, err := c.normalizeDraft(&payload)
	if err != nil {
		// A normalization failure consumes a retry exactly like a
		// schema violation.
		return attemptOutcome{
			kind: outcomeRetryable,
			note: noteFixStructure,
			err:  fmt.Errorf("%w: %w", ErrSchemaViolation, err),
		}
	}

	if err := core.ValidateDraft(draft); err != nil {
		return attemptOutcome{
			kind: outcomeRetryable,
			note: fmt.Sprintf(noteFixValidation, truncate(err.Error(), 900)),
			err:  fmt.Errorf("%w: %w", ErrSchemaViolation, err),
		}
	}

	c.warnIfNoCyrillic(draft, req.Name)

	// Caller values are authoritative; the generated ones are advisory.
	draft.Price = req.Price
	draft.Stock = req.Stock

	return attemptOutcome{kind: outcomeSuccess, draft: draft}
}

// truncate shortens s to at most n bytes without splitting a rune.
// Validator summaries quote generated text, which is mostly Cyrillic.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
