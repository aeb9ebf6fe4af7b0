// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package capture

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"sustudio/internal/models"
	"sustudio/internal/render"
)

// SpeechProvider turns a narration script into an audio data URI.
// internal/ai's ElevenLabs client satisfies this.
type SpeechProvider interface {
	GenerateSpeech(ctx context.Context, text, voiceID string) (string, error)
}

// VoiceResult pairs the narration audio with the slide images it narrates.
type VoiceResult struct {
	Audio  Artifact
	Images CarouselResult
}

// pronunciations fixes words the speech models mangle. Keys are replaced
// case-sensitively before the script is sent out.
var pronunciations = [][2]string{
	{"SU Controle", "súcontrole"},
	{"R$", "reais "},
}

// NarrationScript builds the voice-over text for a carousel: the cover
// speaks its title alone, every other slide speaks "title. body", all
// joined with a spoken pause.
func NarrationScript(slides []models.CarouselSlide) string {
	parts := make([]string, 0, len(slides))
	for _, s := range slides {
		if s.Kind == models.SlideCover {
			parts = append(parts, s.Title)
			continue
		}
		parts = append(parts, s.Title+". "+s.Body)
	}
	script := strings.Join(parts, "... ")
	for _, sub := range pronunciations {
		script = strings.ReplaceAll(script, sub[0], sub[1])
	}
	return script
}

// Voice captures the slide images and narrates them through the speech
// provider. The audio and the images are separate artifacts; the caller
// assembles them client side.
func (p *Pipeline) Voice(ctx context.Context, docs []render.Document, slides []models.CarouselSlide, brandSlug, voiceID string, speech SpeechProvider) (VoiceResult, error) {
	images, err := p.Carousel(ctx, docs, brandSlug)
	if err != nil {
		return VoiceResult{}, err
	}

	uri, err := speech.GenerateSpeech(ctx, NarrationScript(slides), voiceID)
	if err != nil {
		return VoiceResult{}, fmt.Errorf("capture voice: %w", err)
	}
	audio, err := decodeDataURI(uri)
	if err != nil {
		return VoiceResult{}, fmt.Errorf("capture voice: %w", err)
	}

	return VoiceResult{
		Audio: Artifact{
			Name: p.fileName(brandSlug, "voice", "mp3"),
			MIME: "audio/mpeg",
			Data: audio,
		},
		Images: images,
	}, nil
}

// decodeDataURI extracts the payload of a base64 data URI.
func decodeDataURI(uri string) ([]byte, error) {
	_, payload, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return nil, fmt.Errorf("not a base64 data uri")
	}
	return base64.StdEncoding.DecodeString(payload)
}
