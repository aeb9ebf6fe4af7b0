// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"sustudio/internal/models"
	"sustudio/internal/studio"
)

// BrandStore persists the singleton brand profile.
type BrandStore interface {
	Get(ctx context.Context) (*models.BrandProfile, error)
	Save(ctx context.Context, b *models.BrandProfile) (*models.BrandProfile, error)
}

// IdentityAnalyzer drafts a brand profile from public web presence.
type IdentityAnalyzer interface {
	AnalyzeBrandIdentity(ctx context.Context, brand *models.BrandProfile, website, extraLink, instagram string) *studio.IdentityDraft
}

// Brand groups the brand profile HTTP handlers.
type Brand struct {
	brands   BrandStore
	analyzer IdentityAnalyzer
}

// NewBrand creates the brand handler group.
func NewBrand(brands BrandStore, analyzer IdentityAnalyzer) *Brand {
	return &Brand{brands: brands, analyzer: analyzer}
}

// Get returns the brand profile, or 404 before onboarding.
func (h *Brand) Get(w http.ResponseWriter, r *http.Request) {
	brand, err := h.brands.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load brand profile.")
		return
	}
	if brand == nil {
		writeError(w, http.StatusNotFound, "No brand profile yet.")
		return
	}
	writeJSON(w, http.StatusOK, brand)
}

// brandRequest is the body of PUT /api/brand. Provider keys are accepted
// here and never echoed back in responses.
type brandRequest struct {
	Name              string   `json:"name"`
	Website           string   `json:"website"`
	Instagram         string   `json:"instagram"`
	Description       string   `json:"description"`
	Colors            []string `json:"colors"`
	ToneOfVoice       string   `json:"toneOfVoice"`
	Niche             string   `json:"niche"`
	TargetAudience    string   `json:"targetAudience"`
	GeminiAPIKey      string   `json:"geminiApiKey"`
	ElevenLabsAPIKey  string   `json:"elevenLabsApiKey"`
	PreferredProvider string   `json:"preferredProvider"`
}

// Save creates or updates the brand profile.
func (h *Brand) Save(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateBrand(req.Name, req.Website, req.Description); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	// Keep existing credentials when the request leaves them blank, so
	// editing the profile never silently wipes keys.
	existing, err := h.brands.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load brand profile.")
		return
	}
	brand := &models.BrandProfile{
		Name:              req.Name,
		Website:           req.Website,
		Instagram:         req.Instagram,
		Description:       req.Description,
		Colors:            req.Colors,
		ToneOfVoice:       req.ToneOfVoice,
		Niche:             req.Niche,
		TargetAudience:    req.TargetAudience,
		GeminiAPIKey:      req.GeminiAPIKey,
		ElevenLabsAPIKey:  req.ElevenLabsAPIKey,
		PreferredProvider: req.PreferredProvider,
	}
	if existing != nil {
		if brand.GeminiAPIKey == "" {
			brand.GeminiAPIKey = existing.GeminiAPIKey
		}
		if brand.ElevenLabsAPIKey == "" {
			brand.ElevenLabsAPIKey = existing.ElevenLabsAPIKey
		}
	}

	saved, err := h.brands.Save(r.Context(), brand)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not save brand profile.")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// analyzeRequest is the body of POST /api/brand/analyze.
type analyzeRequest struct {
	Website   string `json:"website"`
	ExtraLink string `json:"extraLink"`
	Instagram string `json:"instagram"`
}

// Analyze drafts a brand identity from the given links. Always succeeds:
// the analyzer falls back to a sensible default profile on any failure.
func (h *Brand) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	brand, err := h.brands.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load brand profile.")
		return
	}

	draft := h.analyzer.AnalyzeBrandIdentity(r.Context(), brand, req.Website, req.ExtraLink, req.Instagram)
	writeJSON(w, http.StatusOK, draft)
}
