// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"

	"sustudio/internal/slug"
)

// BrandProfile is the single brand identity steering every generation call.
// Created once during onboarding, updated in place via settings, read by all
// structured-content generators as contextual grounding.
type BrandProfile struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Website           string    `json:"website,omitempty"`
	Instagram         string    `json:"instagram,omitempty"`
	Description       string    `json:"description"`
	Colors            []string  `json:"colors"`
	ToneOfVoice       string    `json:"toneOfVoice"`
	Niche             string    `json:"niche"`
	TargetAudience    string    `json:"targetAudience"`
	GeminiAPIKey      string    `json:"-"`
	ElevenLabsAPIKey  string    `json:"-"`
	PreferredProvider string    `json:"preferredProvider,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Slug returns the brand name as a filename-safe token used in artifact names.
func (b *BrandProfile) Slug() string {
	if b == nil || b.Name == "" {
		return "studio"
	}
	return slug.Generate(b.Name)
}
