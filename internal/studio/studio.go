// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package studio holds the structured-content generators: caption, template
// fields, carousel, weekly plan and image analysis. Every generator follows
// the same discipline: ask the primary structured-output provider first,
// fall back to the ordered engine, repair and validate the JSON, and where
// a deterministic default exists, return it instead of failing.
package studio

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"sustudio/internal/ai"
	"sustudio/internal/models"
)

// PrimaryProvider is the structured-output backend tried before the
// fallback engine. Gemini implements it; tests inject scripted fakes.
type PrimaryProvider interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	GenerateVision(ctx context.Context, mimeType, imageBase64, prompt string) (string, error)
}

// PrimaryFactory builds a primary provider from the brand's stored
// credential. It is called per generation so a settings change takes
// effect immediately.
type PrimaryFactory func(brand *models.BrandProfile) (PrimaryProvider, error)

// GeminiFactory returns the production factory: a fresh Gemini client per
// call, keyed by the brand profile.
func GeminiFactory() PrimaryFactory {
	return func(brand *models.BrandProfile) (PrimaryProvider, error) {
		var key string
		if brand != nil {
			key = brand.GeminiAPIKey
		}
		return ai.NewGemini(ai.ProviderConfig{APIKey: key})
	}
}

// TextEngine is the fallback surface the studio needs from the provider
// engine.
type TextEngine interface {
	GenerateText(ctx context.Context, prompt, systemPrompt, preferred string) (ai.TextResult, error)
	GenerateImage(ctx context.Context, prompt string) (ai.ImageResult, error)
}

// Metrics counts defaulted generations, split by cause. A parse default
// means providers answered but the payload never became valid JSON of the
// right shape; a failure default means no provider answered at all.
type Metrics struct {
	ParseDefaults   atomic.Int64
	FailureDefaults atomic.Int64
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() (parse, failure int64) {
	return m.ParseDefaults.Load(), m.FailureDefaults.Load()
}

// Studio runs the structured-content generators.
type Studio struct {
	primary   PrimaryFactory
	engine    TextEngine
	validate  *validator.Validate
	metrics   *Metrics
	record    ai.RecordFunc
	notify    ai.Notifier
	fetchPage func(ctx context.Context, url string) string
}

// Option configures optional studio hooks.
type Option func(*Studio)

// WithUsageRecorder books usage for successful primary-provider calls.
// Fallback-engine calls are booked by the engine itself.
func WithUsageRecorder(fn ai.RecordFunc) Option {
	return func(s *Studio) { s.record = fn }
}

// WithNotifier emits a provider-used event when the primary provider
// serves a request.
func WithNotifier(fn ai.Notifier) Option {
	return func(s *Studio) { s.notify = fn }
}

// New creates a studio over the given primary factory and fallback engine.
func New(primary PrimaryFactory, engine TextEngine, opts ...Option) *Studio {
	s := &Studio{
		primary:   primary,
		engine:    engine,
		validate:  validator.New(),
		metrics:   &Metrics{},
		fetchPage: fetchPageText,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Metrics exposes the default counters for the usage endpoint.
func (s *Studio) Metrics() *Metrics { return s.metrics }

// generateStructured runs the shared two-stage flow: primary provider
// first, then the fallback engine with the brand's preferred backend at
// the head. The returned text is raw model output; callers repair and
// decode it.
func (s *Studio) generateStructured(ctx context.Context, brand *models.BrandProfile, systemPrompt, prompt string) (string, error) {
	var primaryErr error

	client, err := s.primary(brand)
	if err != nil {
		primaryErr = err
	} else {
		text, err := client.GenerateJSON(ctx, systemPrompt, prompt)
		if err == nil {
			if s.record != nil {
				s.record(ctx, ai.TaskText, 1500)
			}
			if s.notify != nil {
				s.notify(ai.Event{Provider: "gemini", Task: ai.TaskText})
			}
			return text, nil
		}
		primaryErr = err
		slog.Warn("primary provider failed, using fallback", "error", err)
	}

	var preferred string
	if brand != nil {
		preferred = brand.PreferredProvider
	}

	result, err := s.engine.GenerateText(ctx, prompt, systemPrompt, preferred)
	if err != nil {
		return "", fmt.Errorf("generation failed after fallback (primary: %v): %w", primaryErr, err)
	}
	slog.Debug("fallback served structured generation", "provider", result.Provider)
	return result.Text, nil
}
