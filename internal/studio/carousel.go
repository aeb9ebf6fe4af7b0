// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"context"
	"encoding/json"
	"log/slog"

	"sustudio/internal/models"
)

const (
	slideBodyMinWords = 8
	slideBodyMaxWords = 15
)

// GenerateCarousel produces the 5-slide educational carousel for a topic.
// The result always has exactly 5 slides with page numbers 1..5: when the
// model answer cannot be repaired into that shape, or no provider answers
// at all, the deterministic default carousel for the topic is returned.
// Carousel generation never fails; the caller can always render something.
func (s *Studio) GenerateCarousel(ctx context.Context, brand *models.BrandProfile, topic string) []models.CarouselSlide {
	text, err := s.generateStructured(ctx, brand, carouselFallbackSystem, carouselPrompt(topic))
	if err != nil {
		slog.Warn("carousel generation failed, using default", "topic", topic, "error", err)
		s.metrics.FailureDefaults.Add(1)
		return defaultCarousel(topic)
	}

	slides, ok := decodeCarousel(text)
	if !ok {
		slog.Warn("carousel response malformed, using default", "topic", topic)
		s.metrics.ParseDefaults.Add(1)
		return defaultCarousel(topic)
	}
	if !s.carouselValid(slides) {
		slog.Warn("carousel response out of shape, using default", "topic", topic)
		s.metrics.ParseDefaults.Add(1)
		return defaultCarousel(topic)
	}
	return slides
}

// decodeCarousel repairs and unmarshals a model answer into slides.
func decodeCarousel(text string) ([]models.CarouselSlide, bool) {
	repaired := extractArray(repairJSON(text))

	var slides []models.CarouselSlide
	if err := json.Unmarshal([]byte(repaired), &slides); err != nil {
		return nil, false
	}
	return slides, true
}

// carouselValid enforces the fixed shape: 5 slides, COVER first, CTA last,
// CONTENT between, page numbers 1..5, and CONTENT/CTA bodies inside the
// 8-15 word window. The word window is enforced here rather than trusted
// from the prompt.
func (s *Studio) carouselValid(slides []models.CarouselSlide) bool {
	if len(slides) != models.CarouselLen {
		return false
	}
	for i, slide := range slides {
		if err := s.validate.Struct(&slide); err != nil {
			return false
		}
		if slide.PageNumber != i+1 {
			return false
		}

		var wantKind models.SlideKind
		switch i {
		case 0:
			wantKind = models.SlideCover
		case models.CarouselLen - 1:
			wantKind = models.SlideCTA
		default:
			wantKind = models.SlideContent
		}
		if slide.Kind != wantKind {
			return false
		}

		if slide.Kind != models.SlideCover {
			if n := wordCount(slide.Body); n < slideBodyMinWords || n > slideBodyMaxWords {
				return false
			}
		}
	}
	return true
}

// defaultCarousel is the deterministic carousel used when generation fails.
// The cover title is the requested topic; the rest is fixed copy.
func defaultCarousel(topic string) []models.CarouselSlide {
	return []models.CarouselSlide{
		{Kind: models.SlideCover, Title: topic, Body: "Dicas práticas para você", PageNumber: 1, TotalPages: 5},
		{Kind: models.SlideContent, Title: "Dica 1", Body: "Anote todos os seus gastos diariamente", PageNumber: 2, TotalPages: 5},
		{Kind: models.SlideContent, Title: "Dica 2", Body: "Separe 10% do salário assim que receber", PageNumber: 3, TotalPages: 5},
		{Kind: models.SlideContent, Title: "Dica 3", Body: "Evite compras por impulso, espere 24h", PageNumber: 4, TotalPages: 5},
		{Kind: models.SlideCTA, Title: "Assine a SU Controle", Body: "Organize suas finanças de forma simples", PageNumber: 5, TotalPages: 5},
	}
}
