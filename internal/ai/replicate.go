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

// replicateProvider implements ImageProvider against Replicate's prediction
// API. Replicate is a polling-based job API: a POST creates the prediction,
// then the status URL is polled until it reaches a terminal state.
type replicateProvider struct {
	config       ProviderConfig
	client       *http.Client
	pollInterval time.Duration
}

// newReplicate creates the Replicate provider running FLUX schnell.
func newReplicate(cfg ProviderConfig) *replicateProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.replicate.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "black-forest-labs/flux-schnell"
	}
	return &replicateProvider{
		config:       cfg,
		client:       &http.Client{Timeout: 60 * time.Second},
		pollInterval: time.Second,
	}
}

func (p *replicateProvider) Name() string { return "replicate" }

// GenerateImage creates a prediction and polls it to completion. The context
// bounds the whole run including the poll loop.
func (p *replicateProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	body := replicateCreateRequest{
		Version: p.config.Model,
		Input: replicateInput{
			Prompt:       prompt,
			AspectRatio:  "1:1",
			OutputFormat: "png",
			NumOutputs:   1,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("replicate marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/predictions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("replicate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+p.config.APIKey)

	pred, err := p.doPrediction(req)
	if err != nil {
		return "", err
	}

	// Poll until the job settles. Replicate exposes the poll endpoint in the
	// prediction's own urls.get field.
	for pred.Status != "succeeded" && pred.Status != "failed" && pred.Status != "canceled" {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(p.pollInterval):
		}

		pollReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pred.URLs.Get, nil)
		if err != nil {
			return "", fmt.Errorf("replicate poll request: %w", err)
		}
		pollReq.Header.Set("Authorization", "Token "+p.config.APIKey)

		pred, err = p.doPrediction(pollReq)
		if err != nil {
			return "", err
		}
	}

	if pred.Status != "succeeded" {
		return "", fmt.Errorf("replicate: prediction %s (%s)", pred.Status, pred.Error)
	}
	if len(pred.Output) == 0 {
		return "", fmt.Errorf("replicate: no output in succeeded prediction")
	}

	return fetchDataURI(ctx, p.client, pred.Output[0], "image/png")
}

func (p *replicateProvider) doPrediction(req *http.Request) (*replicatePrediction, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("replicate http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("replicate read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("replicate API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var pred replicatePrediction
	if err := json.Unmarshal(respBody, &pred); err != nil {
		return nil, fmt.Errorf("replicate unmarshal: %w", err)
	}
	return &pred, nil
}

type replicateInput struct {
	Prompt       string `json:"prompt"`
	AspectRatio  string `json:"aspect_ratio"`
	OutputFormat string `json:"output_format"`
	NumOutputs   int    `json:"num_outputs"`
}

type replicateCreateRequest struct {
	Version string         `json:"version"`
	Input   replicateInput `json:"input"`
}

type replicatePrediction struct {
	Status string   `json:"status"`
	Error  string   `json:"error"`
	Output []string `json:"output"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}
