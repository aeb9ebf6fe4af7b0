// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package creator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"sustudio/internal/models"
)

// fakeStudio scripts every generator. Call counters are guarded because
// carousel mode runs generators concurrently.
type fakeStudio struct {
	mu sync.Mutex

	caption    *models.TextResult
	captionErr error
	image      string
	imageErr   error
	template   *models.TemplateFields
	tmplErr    error
	slides     []models.CarouselSlide
	vision     *models.TextResult
	visionErr  error

	captionCalls  int
	imageCalls    int
	carouselCalls int
	lastPlatform  models.Platform
	lastHistory   []string
	lastImgPrompt string
}

func (f *fakeStudio) GenerateCaption(ctx context.Context, brand *models.BrandProfile, topic string, platform models.Platform, history []string) (*models.TextResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.captionCalls++
	f.lastPlatform = platform
	f.lastHistory = history
	return f.caption, f.captionErr
}

func (f *fakeStudio) GenerateImage(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageCalls++
	f.lastImgPrompt = prompt
	return f.image, f.imageErr
}

func (f *fakeStudio) GenerateTemplate(ctx context.Context, brand *models.BrandProfile, topic string, style models.TemplateStyle) (*models.TemplateFields, error) {
	return f.template, f.tmplErr
}

func (f *fakeStudio) GenerateCarousel(ctx context.Context, brand *models.BrandProfile, topic string) []models.CarouselSlide {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carouselCalls++
	return f.slides
}

func (f *fakeStudio) AnalyzeImage(ctx context.Context, brand *models.BrandProfile, imageDataURI string) (*models.TextResult, error) {
	return f.vision, f.visionErr
}

// fakeHistory records inserts and returns scripted snippets.
type fakeHistory struct {
	mu       sync.Mutex
	snippets []string
	insErr   error
	inserted []*models.HistoryItem
}

func (f *fakeHistory) Insert(ctx context.Context, item *models.HistoryItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insErr != nil {
		return f.insErr
	}
	f.inserted = append(f.inserted, item)
	return nil
}

func (f *fakeHistory) RecentSnippets(ctx context.Context, limit int) ([]string, error) {
	return f.snippets, nil
}

func fiveSlides(topic string) []models.CarouselSlide {
	slides := make([]models.CarouselSlide, models.CarouselLen)
	for i := range slides {
		kind := models.SlideContent
		switch i {
		case 0:
			kind = models.SlideCover
		case models.CarouselLen - 1:
			kind = models.SlideCTA
		}
		slides[i] = models.CarouselSlide{
			Kind: kind, Title: topic, Body: "corpo do slide",
			PageNumber: i + 1, TotalPages: models.CarouselLen,
		}
	}
	return slides
}

func okCaption() *models.TextResult {
	return &models.TextResult{
		Caption:              "oi pessoal, olha essa dica",
		Hashtags:             []string{"economia", "financas"},
		SuggestedImagePrompt: "minimal flat design piggy bank",
	}
}

// ---------- Full-cycle success (Scenario A shape) ----------

func TestGenerateCarouselCycle(t *testing.T) {
	studio := &fakeStudio{caption: okCaption(), slides: fiveSlides("economizar no supermercado")}
	history := &fakeHistory{snippets: []string{"Tema: luz -> Conteúdo: conta de luz..."}}
	c := New(studio, history)

	result, err := c.Generate(context.Background(), nil, Request{
		Topic:       "economizar no supermercado",
		Platform:    models.PlatformInstagram,
		ContentType: models.ContentTypeCarouselHD,
	})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}

	if state, _ := c.State(); state != StateSuccess {
		t.Errorf("state: got %q, want %q", state, StateSuccess)
	}
	if result.Text.Caption != "oi pessoal, olha essa dica" {
		t.Errorf("caption: got %q", result.Text.Caption)
	}
	if len(result.Slides) != models.CarouselLen {
		t.Errorf("len(slides): got %d, want %d", len(result.Slides), models.CarouselLen)
	}

	// Both generators ran; the caption saw the history snippets.
	if studio.captionCalls != 1 || studio.carouselCalls != 1 {
		t.Errorf("calls: caption=%d carousel=%d, want 1 1", studio.captionCalls, studio.carouselCalls)
	}
	if len(studio.lastHistory) != 1 || !strings.Contains(studio.lastHistory[0], "conta de luz") {
		t.Errorf("history context: got %v", studio.lastHistory)
	}

	// History record persisted with topic and caption.
	if len(history.inserted) != 1 {
		t.Fatalf("inserted records: got %d, want 1", len(history.inserted))
	}
	rec := history.inserted[0]
	if rec.Topic != "economizar no supermercado" || rec.Caption != result.Text.Caption {
		t.Errorf("history record: got %+v", rec)
	}
}

func TestGenerateImageCycleIsSequential(t *testing.T) {
	studio := &fakeStudio{caption: okCaption(), image: "data:image/png;base64,AAA"}
	c := New(studio, nil)

	result, err := c.Generate(context.Background(), nil, Request{
		Topic:       "tema",
		Platform:    models.PlatformInstagram,
		ContentType: models.ContentTypeImage,
	})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if result.ImageDataURI != "data:image/png;base64,AAA" {
		t.Errorf("image: got %q", result.ImageDataURI)
	}

	// The caption's suggested prompt feeds the image generator.
	if studio.lastImgPrompt != "minimal flat design piggy bank" {
		t.Errorf("image prompt: got %q, want the suggested prompt", studio.lastImgPrompt)
	}
}

func TestGenerateImageCycleFallsBackToTopicPrompt(t *testing.T) {
	studio := &fakeStudio{
		caption: &models.TextResult{Caption: "oi"},
		image:   "data:image/png;base64,AAA",
	}
	c := New(studio, nil)

	_, err := c.Generate(context.Background(), nil, Request{
		Topic: "porquinho", Platform: models.PlatformInstagram, ContentType: models.ContentTypeImage,
	})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if studio.lastImgPrompt != "porquinho" {
		t.Errorf("image prompt: got %q, want the topic", studio.lastImgPrompt)
	}
}

func TestGenerateVoiceVideoUsesTikTokCopy(t *testing.T) {
	studio := &fakeStudio{caption: okCaption(), slides: fiveSlides("tema")}
	c := New(studio, nil)

	_, err := c.Generate(context.Background(), nil, Request{
		Topic: "tema", Platform: models.PlatformInstagram, ContentType: models.ContentTypeVoiceVideo,
	})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if studio.lastPlatform != models.PlatformTikTok {
		t.Errorf("platform: got %q, want TIKTOK for narrated video", studio.lastPlatform)
	}
}

func TestGenerateVisionCycle(t *testing.T) {
	studio := &fakeStudio{vision: &models.TextResult{
		Caption:           "legenda da foto",
		ExtractedTemplate: &models.TemplateFields{Title: "Título", Body: "Corpo"},
	}}
	c := New(studio, nil)

	result, err := c.Generate(context.Background(), nil, Request{
		ContentType:  models.ContentTypeUploadVision,
		ImageDataURI: "data:image/png;base64,QUJD",
	})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if result.Template == nil || result.Template.Title != "Título" {
		t.Errorf("template: got %+v, want the extracted fields", result.Template)
	}
}

// ---------- Error handling ----------

func TestGenerateErrorStateAndRecovery(t *testing.T) {
	studio := &fakeStudio{captionErr: fmt.Errorf("all providers down")}
	c := New(studio, nil)

	_, err := c.Generate(context.Background(), nil, Request{
		Topic: "tema", Platform: models.PlatformInstagram, ContentType: models.ContentTypePostText,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// The thrown message surfaces verbatim.
	state, msg := c.State()
	if state != StateError {
		t.Errorf("state: got %q, want %q", state, StateError)
	}
	if msg != "all providers down" {
		t.Errorf("message: got %q, want the generator's error text", msg)
	}
	if c.Result() != nil {
		t.Error("result should be nil after a failed cycle")
	}

	// Error recovers by re-invoking generation.
	studio.captionErr = nil
	studio.caption = okCaption()
	if _, err := c.Generate(context.Background(), nil, Request{
		Topic: "tema", Platform: models.PlatformInstagram, ContentType: models.ContentTypePostText,
	}); err != nil {
		t.Fatalf("retry: unexpected error: %v", err)
	}
	if state, _ := c.State(); state != StateSuccess {
		t.Errorf("state after retry: got %q, want %q", state, StateSuccess)
	}
}

func TestGenerateAllOrNothing(t *testing.T) {
	// Carousel succeeds (it always does) but the caption fails: the cycle
	// discards the carousel and reports the error.
	studio := &fakeStudio{captionErr: fmt.Errorf("rate limited"), slides: fiveSlides("tema")}
	c := New(studio, nil)

	_, err := c.Generate(context.Background(), nil, Request{
		Topic: "tema", Platform: models.PlatformInstagram, ContentType: models.ContentTypeCarouselHD,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if c.Result() != nil {
		t.Error("partial results must be discarded on failure")
	}
}

func TestGenerateUnknownContentType(t *testing.T) {
	c := New(&fakeStudio{}, nil)

	_, err := c.Generate(context.Background(), nil, Request{ContentType: "BANNER"})
	if err == nil {
		t.Fatal("expected error for unknown content type, got nil")
	}
	if state, _ := c.State(); state != StateIdle {
		t.Errorf("state: got %q, want %q (invalid request never enters Generating)", state, StateIdle)
	}
}

// ---------- History persistence ----------

func TestHistoryWriteFailureDoesNotFailCycle(t *testing.T) {
	studio := &fakeStudio{caption: okCaption()}
	history := &fakeHistory{insErr: fmt.Errorf("db down")}
	c := New(studio, history)

	result, err := c.Generate(context.Background(), nil, Request{
		Topic: "tema", Platform: models.PlatformInstagram, ContentType: models.ContentTypePostText,
	})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if result == nil || result.Text == nil {
		t.Fatal("result should survive a history write failure")
	}
	if state, _ := c.State(); state != StateSuccess {
		t.Errorf("state: got %q, want %q", state, StateSuccess)
	}
}

// ---------- Session artifact clearing ----------

func TestGenerateClearsPreviousArtifacts(t *testing.T) {
	studio := &fakeStudio{caption: okCaption(), slides: fiveSlides("a")}
	c := New(studio, nil)

	if _, err := c.Generate(context.Background(), nil, Request{
		Topic: "a", Platform: models.PlatformInstagram, ContentType: models.ContentTypeCarouselHD,
	}); err != nil {
		t.Fatalf("first cycle: %v", err)
	}
	if c.Result() == nil {
		t.Fatal("first cycle should leave a result")
	}

	// Second cycle fails: the first cycle's artifacts must not leak.
	studio.captionErr = fmt.Errorf("down")
	c.Generate(context.Background(), nil, Request{
		Topic: "b", Platform: models.PlatformInstagram, ContentType: models.ContentTypeCarouselHD,
	})
	if c.Result() != nil {
		t.Error("failed cycle must clear the previous session's artifacts")
	}
}

func TestDiscardReturnsToIdle(t *testing.T) {
	studio := &fakeStudio{caption: okCaption()}
	c := New(studio, nil)

	c.Generate(context.Background(), nil, Request{
		Topic: "tema", Platform: models.PlatformInstagram, ContentType: models.ContentTypePostText,
	})
	c.Discard()

	if state, _ := c.State(); state != StateIdle {
		t.Errorf("state: got %q, want %q", state, StateIdle)
	}
	if c.Result() != nil {
		t.Error("result should be cleared by Discard")
	}
}
