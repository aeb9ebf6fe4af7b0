// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides the adapters for the external text, image and speech
// generation backends plus the ordered-fallback engine that tries them in
// priority order until one succeeds. Each adapter handles its own HTTP
// communication and normalizes its response into the shared return shape;
// the engine is schema-agnostic and only cares about success or failure.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// TextProvider is a text-completion backend. systemPrompt sets the model's
// behaviour; userPrompt is the task. Implementations must return an error on
// any non-2xx status, malformed body or network failure.
type TextProvider interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Name() string
}

// ImageProvider is an image-generation backend. The result is a data URI
// (data:image/png;base64,...) ready for storage or download.
type ImageProvider interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
	Name() string
}

// SpeechProvider synthesizes narration audio from text. The result is a
// data URI with an audio/mpeg payload.
type SpeechProvider interface {
	GenerateSpeech(ctx context.Context, text, voiceID string) (string, error)
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// MissingKeyError reports that a provider has no credential configured.
// It is raised before any network attempt so the operator gets a distinct,
// actionable message.
type MissingKeyError struct {
	Provider string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("ai: no API key configured for %s, add it in settings", e.Provider)
}

// IsMissingKey reports whether err is a missing-credential error.
func IsMissingKey(err error) bool {
	var mk *MissingKeyError
	return errors.As(err, &mk)
}

// rateLimitSignatures are the substrings providers use to signal quota
// exhaustion. Gemini uses RESOURCE_EXHAUSTED, the OpenAI-compatible APIs
// return a 429 status line.
var rateLimitSignatures = []string{
	"429",
	"rate limit",
	"rate_limit",
	"RESOURCE_EXHAUSTED",
}

// IsRateLimited reports whether the failure signature indicates quota
// exhaustion, so callers can show a "try again later" message instead of a
// generic failure.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, sig := range rateLimitSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
