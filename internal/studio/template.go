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

const (
	templateTitleMaxWords = 7
	templateBodyMaxWords  = 15
)

// GenerateTemplate produces the text fields for a single visual post in the
// given style. Over-long fields are trimmed to the word budget instead of
// failing the generation; the layout depends on those limits.
func (s *Studio) GenerateTemplate(ctx context.Context, brand *models.BrandProfile, topic string, style models.TemplateStyle) (*models.TemplateFields, error) {
	text, err := s.generateStructured(ctx, brand, "", templatePrompt(topic, style))
	if err != nil {
		return nil, fmt.Errorf("template generation: %w", err)
	}

	var fields models.TemplateFields
	if err := json.Unmarshal([]byte(extractObject(repairJSON(text))), &fields); err != nil {
		return nil, fmt.Errorf("template response is not valid JSON: %w", err)
	}
	if err := s.validate.Struct(&fields); err != nil {
		return nil, fmt.Errorf("template response out of shape: %w", err)
	}

	fields.Title = truncateWords(fields.Title, templateTitleMaxWords)
	fields.Body = truncateWords(fields.Body, templateBodyMaxWords)
	return &fields, nil
}

// wordCount counts whitespace-separated words.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// truncateWords keeps the first n words of s.
func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ")
}
