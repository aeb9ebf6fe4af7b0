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

// falProvider implements ImageProvider against fal.ai's synchronous FLUX
// endpoint. Best quality-to-latency ratio of the image backends, so it heads
// the default image order.
type falProvider struct {
	config ProviderConfig
	client *http.Client
}

func newFal(cfg ProviderConfig) *falProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://fal.run"
	}
	return &falProvider{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *falProvider) Name() string { return "fal" }

func (p *falProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(falRequest{
		Prompt:    prompt,
		ImageSize: "square",
		NumImages: 1,
	})
	if err != nil {
		return "", fmt.Errorf("fal marshal: %w", err)
	}

	url := p.config.BaseURL + "/fal-ai/flux/schnell"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("fal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fal http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fal read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fal API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result falResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("fal unmarshal: %w", err)
	}
	if len(result.Images) == 0 || result.Images[0].URL == "" {
		return "", fmt.Errorf("fal: no image in response")
	}

	return fetchDataURI(ctx, p.client, result.Images[0].URL, "image/png")
}

type falRequest struct {
	Prompt    string `json:"prompt"`
	ImageSize string `json:"image_size"`
	NumImages int    `json:"num_images"`
}

type falResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}
