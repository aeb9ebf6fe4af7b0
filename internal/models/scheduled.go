// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus is the lifecycle state of a scheduled post. Transitions are
// monotonic suggested, draft, ready, posted; once posted a post never
// regresses.
type PostStatus string

const (
	PostStatusSuggested PostStatus = "suggested"
	PostStatusDraft     PostStatus = "draft"
	PostStatusReady     PostStatus = "ready"
	PostStatusPosted    PostStatus = "posted"
)

// ScheduledPost is one calendar day's planned content. At most one post
// exists per date. ImageAssets holds the captured slide rasters as PNG data
// URIs, in slide order.
type ScheduledPost struct {
	ID          uuid.UUID     `json:"id"`
	Date        string        `json:"scheduled_date"` // YYYY-MM-DD calendar key
	Topic       string        `json:"topic"`
	Platform    Platform      `json:"platform"`
	ContentType ContentType   `json:"content_type"`
	Caption     string        `json:"caption"`
	Hashtags    []string      `json:"hashtags"`
	ImageAssets []string      `json:"image_urls"`
	Style       CarouselStyle `json:"carousel_style"`
	Status      PostStatus    `json:"status"`
	PostedAt    *time.Time    `json:"posted_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// HistoryItem is one entry of the generation history, persisted after every
// successful creation cycle regardless of whether anything was downloaded.
type HistoryItem struct {
	ID          uuid.UUID   `json:"id"`
	Topic       string      `json:"topic"`
	Platform    Platform    `json:"platform"`
	ContentType ContentType `json:"content_type"`
	Caption     string      `json:"caption"`
	Hashtags    []string    `json:"hashtags"`
	ImagePrompt string      `json:"image_prompt,omitempty"`
	IsFavorite  bool        `json:"is_favorite"`
	CreatedAt   time.Time   `json:"created_at"`
}
