// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync/atomic"

	"sustudio/internal/ai"
	"sustudio/internal/capture"
	"sustudio/internal/creator"
	"sustudio/internal/models"
	"sustudio/internal/render"
)

// ContentCreator is the generation state machine the studio endpoints drive.
type ContentCreator interface {
	Generate(ctx context.Context, brand *models.BrandProfile, req creator.Request) (*creator.Result, error)
	State() (creator.State, string)
	Result() *creator.Result
	Discard()
}

// CapturePipeline turns rendered documents into downloadable artifacts.
type CapturePipeline interface {
	Image(ctx context.Context, doc render.Document, brandSlug, kind string) (capture.Artifact, error)
	Carousel(ctx context.Context, docs []render.Document, brandSlug string) (capture.CarouselResult, error)
	Video(ctx context.Context, docs []render.Document, brandSlug string, enc capture.VideoEncoder, progress func(float64)) (capture.Artifact, error)
	Voice(ctx context.Context, docs []render.Document, slides []models.CarouselSlide, brandSlug, voiceID string, speech capture.SpeechProvider) (capture.VoiceResult, error)
}

// Studio groups the generation and capture HTTP handlers.
type Studio struct {
	creator  ContentCreator
	brands   BrandStore
	pipeline CapturePipeline

	// videoProgress is the percent completion the running video export
	// last reported, kept so GET /api/state can surface it.
	videoProgress atomic.Int64

	// newEncoder builds a fresh video encoder per export. Swapped in tests.
	newEncoder func() capture.VideoEncoder
	// newSpeech builds the narration provider from the brand credentials.
	newSpeech func(brand *models.BrandProfile) (capture.SpeechProvider, error)
}

// NewStudio creates the studio handler group.
func NewStudio(c ContentCreator, brands BrandStore, pipeline CapturePipeline) *Studio {
	return &Studio{
		creator:  c,
		brands:   brands,
		pipeline: pipeline,
		newEncoder: func() capture.VideoEncoder {
			return capture.NewGstEncoder()
		},
		newSpeech: func(brand *models.BrandProfile) (capture.SpeechProvider, error) {
			return ai.NewElevenLabs(ai.ProviderConfig{APIKey: brand.ElevenLabsAPIKey})
		},
	}
}

// generateRequest is the body of POST /api/generate.
type generateRequest struct {
	Topic        string             `json:"topic"`
	Platform     models.Platform    `json:"platform"`
	ContentType  models.ContentType `json:"contentType"`
	Style        string             `json:"style"`
	ImageDataURI string             `json:"imageDataUri,omitempty"`
}

// Generate runs one generation cycle and returns the finished artifacts.
func (s *Studio) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.ContentType != models.ContentTypeUploadVision {
		if msg := validateTopic(req.Topic); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	} else if msg := validateDataURI(req.ImageDataURI); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	brand, err := s.brands.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load brand profile.")
		return
	}
	if brand == nil {
		writeError(w, http.StatusConflict, "Set up your brand profile first.")
		return
	}

	result, err := s.creator.Generate(r.Context(), brand, creator.Request{
		Topic:        req.Topic,
		Platform:     req.Platform,
		ContentType:  req.ContentType,
		Style:        models.TemplateStyle(req.Style),
		ImageDataURI: req.ImageDataURI,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// State reports the creator's current state, the message of a failed
// cycle, and how far along the latest video export is.
func (s *Studio) State(w http.ResponseWriter, r *http.Request) {
	state, errMsg := s.creator.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"state":         string(state),
		"error":         errMsg,
		"videoProgress": s.videoProgress.Load(),
	})
}

// Discard drops the current session artifacts and returns to idle.
func (s *Studio) Discard(w http.ResponseWriter, r *http.Request) {
	s.creator.Discard()
	w.WriteHeader(http.StatusNoContent)
}

// artifactJSON is one captured file in a capture response.
type artifactJSON struct {
	Name    string `json:"name"`
	MIME    string `json:"mime"`
	DataURI string `json:"dataUri"`
}

func toArtifactJSON(a capture.Artifact) artifactJSON {
	return artifactJSON{
		Name:    a.Name,
		MIME:    a.MIME,
		DataURI: fmt.Sprintf("data:%s;base64,%s", a.MIME, base64.StdEncoding.EncodeToString(a.Data)),
	}
}

// captureRequest selects the visual style for a capture run.
type captureRequest struct {
	Style   string `json:"style"`
	VoiceID string `json:"voiceId,omitempty"`
}

// sessionSlides loads the current result's carousel, or replies with an
// error and returns nil when there is nothing to capture.
func (s *Studio) sessionSlides(w http.ResponseWriter) []models.CarouselSlide {
	result := s.creator.Result()
	if result == nil || len(result.Slides) == 0 {
		writeError(w, http.StatusConflict, "Generate a carousel first.")
		return nil
	}
	return result.Slides
}

func slideDocs(slides []models.CarouselSlide, style models.CarouselStyle) []render.Document {
	docs := make([]render.Document, 0, len(slides))
	for _, slide := range slides {
		docs = append(docs, render.Slide(slide, style))
	}
	return docs
}

// CaptureTemplate rasterizes the session's single-post template to a PNG
// artifact.
func (s *Studio) CaptureTemplate(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := readOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result := s.creator.Result()
	if result == nil || result.Template == nil {
		writeError(w, http.StatusConflict, "Generate a template first.")
		return
	}
	brand, err := s.brands.Get(r.Context())
	if err != nil || brand == nil {
		writeError(w, http.StatusInternalServerError, "Could not load brand profile.")
		return
	}

	doc := render.Template(*result.Template, models.TemplateStyle(req.Style))
	art, err := s.pipeline.Image(r.Context(), doc, brand.Slug(), "template")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toArtifactJSON(art))
}

// CaptureCarousel rasterizes the session's carousel to PNG artifacts.
func (s *Studio) CaptureCarousel(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := readOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	slides := s.sessionSlides(w)
	if slides == nil {
		return
	}
	brand, err := s.brands.Get(r.Context())
	if err != nil || brand == nil {
		writeError(w, http.StatusInternalServerError, "Could not load brand profile.")
		return
	}

	res, err := s.pipeline.Carousel(r.Context(), slideDocs(slides, models.CarouselStyle(req.Style)), brand.Slug())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	artifacts := make([]artifactJSON, 0, len(res.Artifacts))
	for _, a := range res.Artifacts {
		artifacts = append(artifacts, toArtifactJSON(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"artifacts": artifacts,
		"captured":  res.Captured,
		"total":     res.Total,
	})
}

// CaptureVideo composes the session's carousel into a VP9/WebM motion video.
func (s *Studio) CaptureVideo(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := readOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	slides := s.sessionSlides(w)
	if slides == nil {
		return
	}
	brand, err := s.brands.Get(r.Context())
	if err != nil || brand == nil {
		writeError(w, http.StatusInternalServerError, "Could not load brand profile.")
		return
	}

	s.videoProgress.Store(0)
	art, err := s.pipeline.Video(r.Context(), slideDocs(slides, models.CarouselStyle(req.Style)),
		brand.Slug(), s.newEncoder(), func(p float64) {
			s.videoProgress.Store(int64(p * 100))
		})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toArtifactJSON(art))
}

// CaptureVoice captures the carousel images and narrates them.
func (s *Studio) CaptureVoice(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := readOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	slides := s.sessionSlides(w)
	if slides == nil {
		return
	}
	brand, err := s.brands.Get(r.Context())
	if err != nil || brand == nil {
		writeError(w, http.StatusInternalServerError, "Could not load brand profile.")
		return
	}

	speech, err := s.newSpeech(brand)
	if err != nil {
		if ai.IsMissingKey(err) {
			writeError(w, http.StatusPreconditionFailed, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := s.pipeline.Voice(r.Context(), slideDocs(slides, models.CarouselStyle(req.Style)),
		slides, brand.Slug(), req.VoiceID, speech)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	images := make([]artifactJSON, 0, len(res.Images.Artifacts))
	for _, a := range res.Images.Artifacts {
		images = append(images, toArtifactJSON(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"audio":  toArtifactJSON(res.Audio),
		"images": images,
	})
}

// Voices lists the narration voices available for voice posts.
func (s *Studio) Voices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ai.Voices())
}
