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

// GeminiClient is the primary structured-output provider. Unlike the
// fallback backends it supports a JSON response MIME type natively, so the
// structured-content generators try it directly before touching the generic
// fallback list. The credential comes from the brand profile, so clients are
// constructed per call-site instead of held in a shared singleton, a
// configuration change simply produces a new client.
type GeminiClient struct {
	config ProviderConfig
	client *http.Client
}

// NewGemini builds a client for the given credential. A missing key fails
// immediately with a MissingKeyError, before any network attempt.
func NewGemini(cfg ProviderConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, &MissingKeyError{Provider: "gemini"}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	return &GeminiClient{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (g *GeminiClient) Name() string { return "gemini" }

// Generate sends a generateContent request and returns the first candidate's
// text. Satisfies TextProvider so the client can be injected into test
// harnesses alongside the fallback backends.
func (g *GeminiClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: userPrompt}}},
		},
	}
	if systemPrompt != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}}
	}
	return g.generate(ctx, req)
}

// GenerateJSON asks for a strict-JSON response. The model still occasionally
// wraps the payload, so callers run the result through the JSON repair pass.
func (g *GeminiClient) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: userPrompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{ResponseMIMEType: "application/json"},
	}
	if systemPrompt != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}}
	}
	return g.generate(ctx, req)
}

// GenerateVision sends an inline image plus an instruction and returns the
// JSON answer. Used by the photo-remix path.
func (g *GeminiClient) GenerateVision(ctx context.Context, mimeType, imageBase64, prompt string) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{
				{InlineData: &geminiInlineData{MIMEType: mimeType, Data: imageBase64}},
				{Text: prompt},
			}},
		},
		GenerationConfig: &geminiGenerationConfig{ResponseMIMEType: "application/json"},
	}
	return g.generate(ctx, req)
}

func (g *GeminiClient) generate(ctx context.Context, body geminiRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("gemini marshal: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.config.BaseURL, g.config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.config.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("gemini unmarshal: %w", err)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}

	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", fmt.Errorf("gemini: no text in response")
}

// --- Gemini API types ---

type geminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}
