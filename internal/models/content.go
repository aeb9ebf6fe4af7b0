// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the domain types shared across the studio:
// brand profile, generated content shapes, scheduled posts and usage counters.
package models

// ContentType selects which generation path the creator runs.
type ContentType string

const (
	ContentTypePostText     ContentType = "POST_TEXT"
	ContentTypeImage        ContentType = "IMAGE"
	ContentTypeTemplateHD   ContentType = "TEMPLATE_HD"
	ContentTypeCarouselHD   ContentType = "CAROUSEL_HD"
	ContentTypeUploadVision ContentType = "UPLOAD_VISION"
	ContentTypeVoiceVideo   ContentType = "VOICE_VIDEO"
)

// Valid reports whether the content type is one the creator can dispatch.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypePostText, ContentTypeImage, ContentTypeTemplateHD,
		ContentTypeCarouselHD, ContentTypeUploadVision, ContentTypeVoiceVideo:
		return true
	}
	return false
}

// Platform is the social network a caption is written for. Platform-specific
// writing tips are baked into the caption generator's prompt.
type Platform string

const (
	PlatformInstagram Platform = "INSTAGRAM"
	PlatformTikTok    Platform = "TIKTOK"
	PlatformLinkedIn  Platform = "LINKEDIN"
	PlatformTwitter   Platform = "TWITTER"
)

// TextResult is the normalized output of the caption generator. Hashtags
// carry no leading '#'; the caption is plain text plus emoji (the generation
// contract forbids markdown because the target platforms render it literally).
type TextResult struct {
	Caption              string          `json:"caption"`
	Hashtags             []string        `json:"hashtags"`
	SuggestedImagePrompt string          `json:"suggestedImagePrompt"`
	ExtractedTemplate    *TemplateFields `json:"extractedTemplateData,omitempty"`
}

// TemplateFields is the text content of a single-post visual template.
type TemplateFields struct {
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body" validate:"required"`
	Highlight string `json:"highlight,omitempty"`
	Footer    string `json:"footer,omitempty"`
	IconName  string `json:"iconName,omitempty"`
}

// TemplateStyle selects the visual layout of a single-post template.
type TemplateStyle string

const (
	TemplateStyleEducational TemplateStyle = "EDUCATIONAL"
	TemplateStyleQuote       TemplateStyle = "QUOTE"
	TemplateStyleMinimalDark TemplateStyle = "MINIMAL_DARK"
)

// SlideKind partitions carousel slides into cover, content and call-to-action.
type SlideKind string

const (
	SlideCover   SlideKind = "COVER"
	SlideContent SlideKind = "CONTENT"
	SlideCTA     SlideKind = "CTA"
)

// CarouselLen is the fixed slide count of every carousel.
const CarouselLen = 5

// CarouselSlide is one slide of the fixed 5-slide carousel. Slides are
// immutable once generated; an edit is a new generation cycle.
type CarouselSlide struct {
	Kind       SlideKind `json:"type" validate:"required,oneof=COVER CONTENT CTA"`
	Title      string    `json:"title" validate:"required"`
	Body       string    `json:"body" validate:"required"`
	PageNumber int       `json:"pageNumber" validate:"min=1,max=5"`
	TotalPages int       `json:"totalPages" validate:"eq=5"`
}

// CarouselStyle selects the color scheme of the carousel renderer.
type CarouselStyle string

const (
	CarouselStyleLight   CarouselStyle = "LIGHT"
	CarouselStyleDark    CarouselStyle = "DARK"
	CarouselStyleVibrant CarouselStyle = "VIBRANT"
)

// WeeklyPlanEntry is one weekday suggestion of the generated content plan.
type WeeklyPlanEntry struct {
	Day   string `json:"day" validate:"required"`
	Topic string `json:"topic" validate:"required"`
	Type  string `json:"type" validate:"required"`
}
