// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"log/slog"
)

// Task distinguishes the resource a fallback run consumes, for usage
// accounting and observability events.
type Task string

const (
	TaskText  Task = "text"
	TaskImage Task = "image"
)

// Attempt records one provider try within a fallback run. Attempts are
// ephemeral observability data, never persisted.
type Attempt struct {
	Provider string
	Err      error
}

// Event signals which provider actually served a request, so the operator
// can see the backend behind a given generation.
type Event struct {
	Provider string
	Task     Task
}

// Notifier receives an Event after every successful provider call.
type Notifier func(Event)

// RecordFunc increments the usage counter for a task after a successful
// call. tokens is the estimated token cost for text tasks, zero otherwise.
type RecordFunc func(ctx context.Context, task Task, tokens int)

// estTextTokens is the rough token cost booked per text completion.
const estTextTokens = 1500

// TextResult is the outcome of a text fallback run: the generated text and
// the identity of the provider that produced it. Callers must not assume
// which provider ran without inspecting Provider.
type TextResult struct {
	Text     string
	Provider string
}

// ImageResult is the outcome of an image fallback run.
type ImageResult struct {
	DataURI  string
	Provider string
}

// ExhaustedError aggregates a fallback run in which every provider failed.
// It wraps the last provider's error and keeps the full attempt list.
type ExhaustedError struct {
	Task     Task
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	last := e.Attempts[len(e.Attempts)-1]
	return fmt.Sprintf("ai: all %d %s providers failed, last (%s): %v",
		len(e.Attempts), e.Task, last.Provider, last.Err)
}

// Unwrap exposes the last provider's error for errors.Is/As chains, so
// rate-limit classification still works on the aggregate.
func (e *ExhaustedError) Unwrap() error {
	return e.Attempts[len(e.Attempts)-1].Err
}

// Engine tries providers in priority order and returns the first success.
// The default order front-loads the fast free-tier backends; a caller
// preference moves one provider to the head without disturbing the relative
// order of the rest. Engines are immutable after construction and safe for
// concurrent use.
type Engine struct {
	text   []TextProvider
	image  []ImageProvider
	record RecordFunc
	notify Notifier
}

// Option configures optional engine hooks.
type Option func(*Engine)

// WithUsageRecorder books usage counters after successful calls.
func WithUsageRecorder(fn RecordFunc) Option {
	return func(e *Engine) { e.record = fn }
}

// WithNotifier emits provider-used events after successful calls.
func WithNotifier(fn Notifier) Option {
	return func(e *Engine) { e.notify = fn }
}

// NewEngine creates a fallback engine over the given priority-ordered
// provider lists.
func NewEngine(text []TextProvider, image []ImageProvider, opts ...Option) *Engine {
	e := &Engine{text: text, image: image}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TextProviders returns the names of the configured text providers in
// default priority order.
func (e *Engine) TextProviders() []string {
	names := make([]string, len(e.text))
	for i, p := range e.text {
		names[i] = p.Name()
	}
	return names
}

// GenerateText attempts each text provider in order until one returns a
// result. A non-empty preferred name is tried first; the remaining providers
// keep their default relative order. The first success short-circuits the
// run, no further providers are tried.
func (e *Engine) GenerateText(ctx context.Context, prompt, systemPrompt, preferred string) (TextResult, error) {
	if len(e.text) == 0 {
		return TextResult{}, fmt.Errorf("ai: no text providers configured")
	}

	providers := orderText(e.text, preferred)
	var attempts []Attempt

	for _, p := range providers {
		if err := ctx.Err(); err != nil {
			return TextResult{}, err
		}

		text, err := p.Generate(ctx, systemPrompt, prompt)
		if err != nil {
			slog.Warn("text provider failed, trying next", "provider", p.Name(), "error", err)
			attempts = append(attempts, Attempt{Provider: p.Name(), Err: err})
			continue
		}

		if e.record != nil {
			e.record(ctx, TaskText, estTextTokens)
		}
		if e.notify != nil {
			e.notify(Event{Provider: p.Name(), Task: TaskText})
		}
		slog.Debug("text generated", "provider", p.Name())
		return TextResult{Text: text, Provider: p.Name()}, nil
	}

	return TextResult{}, &ExhaustedError{Task: TaskText, Attempts: attempts}
}

// GenerateImage runs the same fallback discipline over the image provider
// list. There is no preference override for images; the fixed order reflects
// quality and cost trade-offs.
func (e *Engine) GenerateImage(ctx context.Context, prompt string) (ImageResult, error) {
	if len(e.image) == 0 {
		return ImageResult{}, fmt.Errorf("ai: no image providers configured")
	}

	var attempts []Attempt

	for _, p := range e.image {
		if err := ctx.Err(); err != nil {
			return ImageResult{}, err
		}

		uri, err := p.GenerateImage(ctx, prompt)
		if err != nil {
			slog.Warn("image provider failed, trying next", "provider", p.Name(), "error", err)
			attempts = append(attempts, Attempt{Provider: p.Name(), Err: err})
			continue
		}

		if e.record != nil {
			e.record(ctx, TaskImage, 0)
		}
		if e.notify != nil {
			e.notify(Event{Provider: p.Name(), Task: TaskImage})
		}
		slog.Debug("image generated", "provider", p.Name())
		return ImageResult{DataURI: uri, Provider: p.Name()}, nil
	}

	return ImageResult{}, &ExhaustedError{Task: TaskImage, Attempts: attempts}
}

// orderText builds the attempt order: [preferred, defaults minus preferred]
// when a known preference is supplied, the default order otherwise.
func orderText(defaults []TextProvider, preferred string) []TextProvider {
	if preferred == "" {
		return defaults
	}

	var head TextProvider
	rest := make([]TextProvider, 0, len(defaults))
	for _, p := range defaults {
		if p.Name() == preferred {
			head = p
			continue
		}
		rest = append(rest, p)
	}
	if head == nil {
		// Unknown preference: fall back to the default order.
		return defaults
	}
	return append([]TextProvider{head}, rest...)
}
