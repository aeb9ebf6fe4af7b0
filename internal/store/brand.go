// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"sustudio/internal/cache"
	"sustudio/internal/models"
)

// BrandStore persists the singleton brand profile. Reads fall back to the
// Valkey object cache when the database is unreachable.
type BrandStore struct {
	db    *sql.DB
	cache *cache.ObjectCache
}

// NewBrandStore creates a BrandStore. The cache may be nil.
func NewBrandStore(db *sql.DB, oc *cache.ObjectCache) *BrandStore {
	return &BrandStore{db: db, cache: oc}
}

const brandColumns = `id, name, website, instagram, description, colors,
       tone_of_voice, niche, target_audience, gemini_api_key,
       elevenlabs_api_key, preferred_provider, created_at, updated_at`

func scanBrand(row *sql.Row) (*models.BrandProfile, error) {
	b := &models.BrandProfile{}
	var colors []byte
	err := row.Scan(
		&b.ID, &b.Name, &b.Website, &b.Instagram, &b.Description, &colors,
		&b.ToneOfVoice, &b.Niche, &b.TargetAudience, &b.GeminiAPIKey,
		&b.ElevenLabsAPIKey, &b.PreferredProvider, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	scanStrings(colors, &b.Colors)
	return b, nil
}

// Get returns the brand profile, or nil if onboarding has not run yet.
// A database failure is served from the cache when possible.
func (s *BrandStore) Get(ctx context.Context) (*models.BrandProfile, error) {
	b, err := scanBrand(s.db.QueryRowContext(ctx, `
		SELECT `+brandColumns+`
		FROM brands ORDER BY created_at ASC LIMIT 1
	`))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		cached := &models.BrandProfile{}
		if s.cache.GetJSON(ctx, cache.BrandKey(), cached) {
			slog.Warn("brand read served from cache", "error", err)
			return cached, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}

	s.cache.SetJSON(ctx, cache.BrandKey(), b)
	return b, nil
}

// Save inserts the brand profile, or updates the existing row in place when
// one already exists. The cache is refreshed on success.
func (s *BrandStore) Save(ctx context.Context, b *models.BrandProfile) (*models.BrandProfile, error) {
	existing, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	var row *sql.Row
	if existing == nil {
		row = s.db.QueryRowContext(ctx, `
			INSERT INTO brands (name, website, instagram, description, colors,
			                    tone_of_voice, niche, target_audience,
			                    gemini_api_key, elevenlabs_api_key, preferred_provider)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING `+brandColumns+`
		`, b.Name, b.Website, b.Instagram, b.Description, jsonStrings(b.Colors),
			b.ToneOfVoice, b.Niche, b.TargetAudience,
			b.GeminiAPIKey, b.ElevenLabsAPIKey, b.PreferredProvider)
	} else {
		row = s.db.QueryRowContext(ctx, `
			UPDATE brands SET
				name = $1, website = $2, instagram = $3, description = $4,
				colors = $5, tone_of_voice = $6, niche = $7, target_audience = $8,
				gemini_api_key = $9, elevenlabs_api_key = $10,
				preferred_provider = $11, updated_at = NOW()
			WHERE id = $12
			RETURNING `+brandColumns+`
		`, b.Name, b.Website, b.Instagram, b.Description, jsonStrings(b.Colors),
			b.ToneOfVoice, b.Niche, b.TargetAudience,
			b.GeminiAPIKey, b.ElevenLabsAPIKey, b.PreferredProvider, existing.ID)
	}

	saved, err := scanBrand(row)
	if err != nil {
		return nil, fmt.Errorf("save brand: %w", err)
	}

	s.cache.SetJSON(ctx, cache.BrandKey(), saved)
	return saved, nil
}
