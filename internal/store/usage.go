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

// usageColumn maps a resource to the counter it increments. The column
// names are fixed; anything unknown falls back to the text counter.
func usageColumn(resource models.UsageResource) string {
	switch resource {
	case models.UsageImage:
		return "image_requests"
	case models.UsageVideo:
		return "video_requests"
	case models.UsageAudio:
		return "audio_requests"
	default:
		return "text_requests"
	}
}

// UsageStore persists per-day API usage counters. The day's row is created
// lazily on its first increment; counters advance with atomic SQL updates
// so concurrent generation cycles never lose counts.
type UsageStore struct {
	db    *sql.DB
	cache *cache.ObjectCache
}

// NewUsageStore creates a UsageStore. The cache may be nil.
func NewUsageStore(db *sql.DB, oc *cache.ObjectCache) *UsageStore {
	return &UsageStore{db: db, cache: oc}
}

// Increment bumps one resource counter and adds tokens for the given date,
// creating the row if the day is new.
func (s *UsageStore) Increment(ctx context.Context, date string, resource models.UsageResource, tokens int) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO api_usage (usage_date) VALUES ($1)
		ON CONFLICT (usage_date) DO NOTHING
	`, date); err != nil {
		return fmt.Errorf("usage row for %s: %w", date, err)
	}

	col := usageColumn(resource)
	if _, err := s.db.ExecContext(ctx, `
		UPDATE api_usage
		SET `+col+` = `+col+` + 1, tokens_used = tokens_used + $2
		WHERE usage_date = $1
	`, date, tokens); err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}

	s.cache.Invalidate(ctx, cache.UsageKey(date))
	return nil
}

// Get returns the counters for a date. A missing row reads as all zeros;
// a database failure is served from the cache when possible.
func (s *UsageStore) Get(ctx context.Context, date string) (*models.UsageCounters, error) {
	u := &models.UsageCounters{Date: date}
	err := s.db.QueryRowContext(ctx, `
		SELECT text_requests, image_requests, video_requests, audio_requests, tokens_used
		FROM api_usage WHERE usage_date = $1
	`, date).Scan(
		&u.TextRequests, &u.ImageRequests, &u.VideoRequests,
		&u.AudioRequests, &u.TokensUsed,
	)
	if err == sql.ErrNoRows {
		return u, nil
	}
	if err != nil {
		cached := &models.UsageCounters{}
		if s.cache.GetJSON(ctx, cache.UsageKey(date), cached) {
			slog.Warn("usage read served from cache", "date", date, "error", err)
			return cached, nil
		}
		return nil, fmt.Errorf("get usage: %w", err)
	}

	s.cache.SetJSON(ctx, cache.UsageKey(date), u)
	return u, nil
}

// Reset zeroes the counters for a date.
func (s *UsageStore) Reset(ctx context.Context, date string) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE api_usage
		SET text_requests = 0, image_requests = 0, video_requests = 0,
		    audio_requests = 0, tokens_used = 0
		WHERE usage_date = $1
	`, date); err != nil {
		return fmt.Errorf("reset usage: %w", err)
	}
	s.cache.Invalidate(ctx, cache.UsageKey(date))
	return nil
}
