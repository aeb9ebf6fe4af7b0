// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	hfTextModel  = "mistralai/Mixtral-8x7B-Instruct-v0.1"
	hfImageModel = "stabilityai/stable-diffusion-xl-base-1.0"
)

// hfProvider implements TextProvider and ImageProvider against the Hugging
// Face inference API. The text endpoint takes an instruct-formatted single
// string; the image endpoint returns raw image bytes.
type hfProvider struct {
	config ProviderConfig
	client *http.Client
}

// newHuggingFace creates the Hugging Face provider. Free-tier models make it
// the last resort in both the text and image fallback orders.
func newHuggingFace(cfg ProviderConfig) *hfProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-inference.huggingface.co"
	}
	return &hfProvider{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *hfProvider) Name() string { return "huggingface" }

// Generate sends an instruct-formatted prompt to the hosted Mixtral model.
func (p *hfProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body := hfTextRequest{
		Inputs: fmt.Sprintf("<s>[INST] %s\n\n%s [/INST]", systemPrompt, userPrompt),
		Parameters: hfTextParameters{
			MaxNewTokens:   2000,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("huggingface marshal: %w", err)
	}

	url := p.config.BaseURL + "/models/" + hfTextModel
	respBody, err := p.post(ctx, url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	var result []hfTextResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("huggingface unmarshal: %w", err)
	}
	if len(result) == 0 || result[0].GeneratedText == "" {
		return "", fmt.Errorf("huggingface: empty generation")
	}
	return result[0].GeneratedText, nil
}

// GenerateImage runs the hosted Stable Diffusion XL model. The inference API
// answers with the PNG bytes directly.
func (p *hfProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return "", fmt.Errorf("huggingface image marshal: %w", err)
	}

	url := p.config.BaseURL + "/models/" + hfImageModel
	respBody, err := p.post(ctx, url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	return encodeDataURI("image/png", respBody), nil
}

// post performs an authenticated POST and returns the response body,
// treating any non-2xx status as a failure.
func (p *hfProvider) post(ctx context.Context, url, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("huggingface request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("huggingface read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("huggingface API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

type hfTextParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfTextRequest struct {
	Inputs     string           `json:"inputs"`
	Parameters hfTextParameters `json:"parameters"`
}

type hfTextResponse struct {
	GeneratedText string `json:"generated_text"`
}
