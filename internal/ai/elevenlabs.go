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

// DefaultVoiceID is used when the caller does not pick a narrator voice.
const DefaultVoiceID = "pFZP5JQG7iQjIQuC4Bku"

// Voice is a selectable narrator voice.
type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Voices lists the curated narrator voices offered in the studio.
func Voices() []Voice {
	return []Voice{
		{ID: "pFZP5JQG7iQjIQuC4Bku", Name: "Lily (Feminina, Suave)"},
		{ID: "onwK4e9ZLuTAKqWW03F9", Name: "Daniel (Masculina, Profunda)"},
		{ID: "EXAVITQu4vr4xnSDxMaL", Name: "Sarah (Feminina, Jovem)"},
		{ID: "JBFqnCBsd6RMkjVDRZzb", Name: "George (Masculina, Britânica)"},
	}
}

// ElevenLabsClient converts narration text to speech. Like the Gemini
// client the key comes from the brand profile, so clients are built per
// call.
type ElevenLabsClient struct {
	config ProviderConfig
	client *http.Client
}

// NewElevenLabs builds a speech client, failing fast when no key is
// configured.
func NewElevenLabs(cfg ProviderConfig) (*ElevenLabsClient, error) {
	if cfg.APIKey == "" {
		return nil, &MissingKeyError{Provider: "elevenlabs"}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.elevenlabs.io"
	}
	if cfg.Model == "" {
		cfg.Model = "eleven_multilingual_v2"
	}
	return &ElevenLabsClient{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (e *ElevenLabsClient) Name() string { return "elevenlabs" }

// GenerateSpeech synthesizes the text with the given voice and returns the
// MP3 payload as a data URI. An empty voiceID selects the default narrator.
func (e *ElevenLabsClient) GenerateSpeech(ctx context.Context, text, voiceID string) (string, error) {
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}

	payload, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: e.config.Model,
		VoiceSettings: ttsVoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return "", fmt.Errorf("elevenlabs marshal: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", e.config.BaseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("elevenlabs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", e.config.APIKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("elevenlabs http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("elevenlabs read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("elevenlabs API error (status %d): %s", resp.StatusCode, string(body))
	}
	if len(body) == 0 {
		return "", fmt.Errorf("elevenlabs: empty audio response")
	}

	return encodeDataURI("audio/mpeg", body), nil
}

// Quota reports character usage on the account, used to warn before long
// narrations.
func (e *ElevenLabsClient) Quota(ctx context.Context) (used, limit int, err error) {
	url := e.config.BaseURL + "/v1/user/subscription"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("elevenlabs request: %w", err)
	}
	req.Header.Set("xi-api-key", e.config.APIKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("elevenlabs http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, 0, fmt.Errorf("elevenlabs API error (status %d): %s", resp.StatusCode, string(body))
	}

	var sub struct {
		CharacterCount int `json:"character_count"`
		CharacterLimit int `json:"character_limit"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return 0, 0, fmt.Errorf("elevenlabs unmarshal: %w", err)
	}
	return sub.CharacterCount, sub.CharacterLimit, nil
}

type ttsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type ttsRequest struct {
	Text          string           `json:"text"`
	ModelID       string           `json:"model_id"`
	VoiceSettings ttsVoiceSettings `json:"voice_settings"`
}
