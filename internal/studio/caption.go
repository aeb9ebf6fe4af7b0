// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sustudio/internal/models"
)

// GenerateCaption produces the post text for a topic and platform. history
// carries snippets of recent posts so the model avoids repeating themes.
// Hashtags come back without a leading '#'.
func (s *Studio) GenerateCaption(ctx context.Context, brand *models.BrandProfile, topic string, platform models.Platform, history []string) (*models.TextResult, error) {
	system := captionSystemPrompt(brand)
	prompt := captionPrompt(brand, topic, platform, history)

	text, err := s.generateStructured(ctx, brand, system, prompt)
	if err != nil {
		return nil, fmt.Errorf("caption generation: %w", err)
	}

	var result models.TextResult
	if err := json.Unmarshal([]byte(extractObject(repairJSON(text))), &result); err != nil {
		return nil, fmt.Errorf("caption response is not valid JSON: %w", err)
	}
	if result.Caption == "" {
		return nil, fmt.Errorf("caption response missing caption text")
	}

	normalizeHashtags(&result)
	return &result, nil
}

// normalizeHashtags strips leading '#' characters; downstream rendering
// adds them back when displaying.
func normalizeHashtags(r *models.TextResult) {
	for i, tag := range r.Hashtags {
		r.Hashtags[i] = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	}
}

// GenerateImage creates an on-brand social image for the given prompt. The
// styling suffix keeps outputs inside the brand palette regardless of what
// the caption generator suggested.
func (s *Studio) GenerateImage(ctx context.Context, prompt string) (string, error) {
	result, err := s.engine.GenerateImage(ctx, enhancedImagePrompt(prompt))
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}
	return result.DataURI, nil
}
