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

// AnalyzeImage sends an uploaded picture to the primary provider and
// returns a caption plus the template fields remastered from whatever text
// the picture contains. Vision requires the primary provider: the fallback
// backends are text-only, so its errors surface directly.
func (s *Studio) AnalyzeImage(ctx context.Context, brand *models.BrandProfile, imageDataURI string) (*models.TextResult, error) {
	client, err := s.primary(brand)
	if err != nil {
		return nil, fmt.Errorf("image analysis: %w", err)
	}

	mimeType, payload := splitDataURI(imageDataURI)

	text, err := client.GenerateVision(ctx, mimeType, payload, visionPrompt(brand))
	if err != nil {
		return nil, fmt.Errorf("image analysis: %w", err)
	}

	var result models.TextResult
	if err := json.Unmarshal([]byte(extractObject(repairJSON(text))), &result); err != nil {
		return nil, fmt.Errorf("image analysis response is not valid JSON: %w", err)
	}
	if result.Caption == "" {
		return nil, fmt.Errorf("image analysis response missing caption")
	}

	normalizeHashtags(&result)
	return &result, nil
}

// splitDataURI separates a data URI into its MIME type and raw base64
// payload. Bare base64 input is accepted and assumed to be JPEG.
func splitDataURI(uri string) (mimeType, payload string) {
	mimeType = "image/jpeg"
	payload = uri

	if !strings.HasPrefix(uri, "data:") {
		return mimeType, payload
	}

	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return mimeType, payload
	}

	header := uri[len("data:"):comma]
	payload = uri[comma+1:]
	if semi := strings.IndexByte(header, ';'); semi >= 0 {
		header = header[:semi]
	}
	if header != "" {
		mimeType = header
	}
	return mimeType, payload
}
