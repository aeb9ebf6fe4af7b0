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

// chatClient is a client for the OpenAI chat-completions wire format, shared
// by the OpenAI, Groq, OpenRouter and Mistral providers. name is the
// provider identity reported to the fallback engine; jsonMode asks for a
// strict-JSON response where the backend supports response_format.
type chatClient struct {
	name     string
	config   ProviderConfig
	client   *http.Client
	jsonMode bool
	headers  map[string]string
}

func (c *chatClient) Name() string { return c.name }

// Generate sends a chat completion request and returns the assistant's text.
func (c *chatClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	}
	if c.jsonMode {
		body.ResponseFormat = &chatResponseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%s marshal: %w", c.name, err)
	}

	url := c.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%s request: %w", c.name, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s http: %w", c.name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s read body: %w", c.name, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s API error (status %d): %s", c.name, resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%s unmarshal: %w", c.name, err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", c.name)
	}

	return result.Choices[0].Message.Content, nil
}

// newOpenAI creates the OpenAI provider (gpt-4o-mini by default, the
// cheapest of the paid fallbacks, so it sits late in the priority list).
func newOpenAI(cfg ProviderConfig) *chatClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &chatClient{
		name:     "openai",
		config:   cfg,
		client:   &http.Client{Timeout: 60 * time.Second},
		jsonMode: true,
	}
}

// newGroq creates the Groq provider. Fastest backend with a generous free
// tier, so it heads the default text order.
func newGroq(cfg ProviderConfig) *chatClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "llama-3.3-70b-versatile"
	}
	return &chatClient{
		name:     "groq",
		config:   cfg,
		client:   &http.Client{Timeout: 60 * time.Second},
		jsonMode: true,
	}
}

// newOpenRouter creates the OpenRouter provider. OpenRouter wants a referer
// header identifying the calling app and does not support response_format,
// so JSON extraction happens downstream.
func newOpenRouter(cfg ProviderConfig) *chatClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "meta-llama/llama-3.3-70b-instruct"
	}
	return &chatClient{
		name:   "openrouter",
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
		headers: map[string]string{
			"HTTP-Referer": "https://sustudio.app",
		},
	}
}

// newMistral creates the Mistral provider. Mistral's API is
// OpenAI-compatible at a different base URL.
func newMistral(cfg ProviderConfig) *chatClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "mistral-large-latest"
	}
	return &chatClient{
		name:     "mistral",
		config:   cfg,
		client:   &http.Client{Timeout: 60 * time.Second},
		jsonMode: true,
	}
}

// --- OpenAI-compatible request/response types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []chatMessage       `json:"messages"`
	Temperature    float64             `json:"temperature,omitempty"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}
