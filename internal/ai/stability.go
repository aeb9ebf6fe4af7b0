// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// stabilityProvider implements ImageProvider against Stability AI's
// stable-image endpoint. The request is multipart form data; the response is
// the raw image when the Accept header asks for one.
type stabilityProvider struct {
	config ProviderConfig
	client *http.Client
}

func newStability(cfg ProviderConfig) *stabilityProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.stability.ai"
	}
	return &stabilityProvider{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *stabilityProvider) Name() string { return "stability" }

func (p *stabilityProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for field, value := range map[string]string{
		"prompt":        prompt,
		"aspect_ratio":  "1:1",
		"output_format": "png",
	} {
		if err := form.WriteField(field, value); err != nil {
			return "", fmt.Errorf("stability form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("stability form close: %w", err)
	}

	url := p.config.BaseURL + "/v2beta/stable-image/generate/sd3"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", fmt.Errorf("stability request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	req.Header.Set("Accept", "image/*")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("stability http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("stability read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stability API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return encodeDataURI(contentType, respBody), nil
}
