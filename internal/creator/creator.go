// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package creator owns the generation cycle: it dispatches the structured
// generators per content type, tracks the Idle/Generating/Success/Error
// session state, and persists a history record after each successful cycle.
package creator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"sustudio/internal/models"
)

// State is the session generation state. Error recovers back through a new
// Generate call; Success is discarded the same way.
type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// historySnippets is how many past posts feed the anti-repetition context.
const historySnippets = 5

// Request is one generation cycle's input.
type Request struct {
	Topic        string
	Platform     models.Platform
	ContentType  models.ContentType
	Style        models.TemplateStyle
	ImageDataURI string // UPLOAD_VISION only
}

// Result carries every artifact a cycle produced. Fields irrelevant to the
// content type stay zero.
type Result struct {
	ContentType  models.ContentType
	Text         *models.TextResult
	ImageDataURI string
	Template     *models.TemplateFields
	Slides       []models.CarouselSlide
}

// ContentStudio is the generator surface the creator dispatches over.
type ContentStudio interface {
	GenerateCaption(ctx context.Context, brand *models.BrandProfile, topic string, platform models.Platform, history []string) (*models.TextResult, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	GenerateTemplate(ctx context.Context, brand *models.BrandProfile, topic string, style models.TemplateStyle) (*models.TemplateFields, error)
	GenerateCarousel(ctx context.Context, brand *models.BrandProfile, topic string) []models.CarouselSlide
	AnalyzeImage(ctx context.Context, brand *models.BrandProfile, imageDataURI string) (*models.TextResult, error)
}

// HistoryWriter persists generation history and supplies recent snippets.
type HistoryWriter interface {
	Insert(ctx context.Context, item *models.HistoryItem) error
	RecentSnippets(ctx context.Context, limit int) ([]string, error)
}

// Creator runs generation cycles. One cycle at a time: a Generate call
// while another is in flight fails immediately.
type Creator struct {
	studio  ContentStudio
	history HistoryWriter

	mu      sync.Mutex
	state   State
	lastErr string
	result  *Result
}

// New creates a creator in the Idle state. history may be nil when no
// persistence is wired (tests, dry runs).
func New(studio ContentStudio, history HistoryWriter) *Creator {
	return &Creator{studio: studio, history: history, state: StateIdle}
}

// State returns the current session state and, in the Error state, the
// surfaced message.
func (c *Creator) State() (State, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.lastErr
}

// Result returns the artifacts of the last successful cycle, nil otherwise.
func (c *Creator) Result() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Discard drops the session artifacts and returns to Idle.
func (c *Creator) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateGenerating {
		c.state = StateIdle
		c.result = nil
		c.lastErr = ""
	}
}

// Generate runs one cycle for the request. Entering the cycle clears the
// previous session's artifacts; the cycle is all-or-nothing, so a failing
// generator discards everything computed before it. On success the history
// record is persisted best-effort: a write failure is logged, not raised.
func (c *Creator) Generate(ctx context.Context, brand *models.BrandProfile, req Request) (*Result, error) {
	if !req.ContentType.Valid() {
		return nil, fmt.Errorf("creator: unknown content type %q", req.ContentType)
	}

	c.mu.Lock()
	if c.state == StateGenerating {
		c.mu.Unlock()
		return nil, fmt.Errorf("creator: generation already in progress")
	}
	c.state = StateGenerating
	c.result = nil
	c.lastErr = ""
	c.mu.Unlock()

	result, err := c.dispatch(ctx, brand, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateError
		c.lastErr = err.Error()
		return nil, err
	}

	c.state = StateSuccess
	c.result = result
	c.persistHistory(ctx, req, result)
	return result, nil
}

// dispatch selects the generator combination for the content type.
func (c *Creator) dispatch(ctx context.Context, brand *models.BrandProfile, req Request) (*Result, error) {
	result := &Result{ContentType: req.ContentType}

	switch req.ContentType {
	case models.ContentTypePostText:
		text, err := c.studio.GenerateCaption(ctx, brand, req.Topic, req.Platform, c.recentSnippets(ctx))
		if err != nil {
			return nil, err
		}
		result.Text = text

	case models.ContentTypeImage:
		// Sequential: the image prompt depends on the caption result.
		text, err := c.studio.GenerateCaption(ctx, brand, req.Topic, req.Platform, c.recentSnippets(ctx))
		if err != nil {
			return nil, err
		}
		prompt := text.SuggestedImagePrompt
		if prompt == "" {
			prompt = req.Topic
		}
		uri, err := c.studio.GenerateImage(ctx, prompt)
		if err != nil {
			return nil, err
		}
		result.Text = text
		result.ImageDataURI = uri

	case models.ContentTypeTemplateHD:
		text, fields, err := c.captionAndTemplate(ctx, brand, req)
		if err != nil {
			return nil, err
		}
		result.Text = text
		result.Template = fields

	case models.ContentTypeCarouselHD:
		text, slides, err := c.captionAndCarousel(ctx, brand, req.Topic, req.Platform)
		if err != nil {
			return nil, err
		}
		result.Text = text
		result.Slides = slides

	case models.ContentTypeUploadVision:
		text, err := c.studio.AnalyzeImage(ctx, brand, req.ImageDataURI)
		if err != nil {
			return nil, err
		}
		result.Text = text
		result.Template = text.ExtractedTemplate

	case models.ContentTypeVoiceVideo:
		// Narrated video scripts read like TikTok copy regardless of the
		// requested platform.
		text, slides, err := c.captionAndCarousel(ctx, brand, req.Topic, models.PlatformTikTok)
		if err != nil {
			return nil, err
		}
		result.Text = text
		result.Slides = slides
	}

	return result, nil
}

// captionAndCarousel runs both generators concurrently. The carousel never
// fails (it defaults), so only the caption decides the cycle's outcome.
func (c *Creator) captionAndCarousel(ctx context.Context, brand *models.BrandProfile, topic string, platform models.Platform) (*models.TextResult, []models.CarouselSlide, error) {
	history := c.recentSnippets(ctx)

	var (
		wg     sync.WaitGroup
		text   *models.TextResult
		capErr error
		slides []models.CarouselSlide
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		text, capErr = c.studio.GenerateCaption(ctx, brand, topic, platform, history)
	}()
	go func() {
		defer wg.Done()
		slides = c.studio.GenerateCarousel(ctx, brand, topic)
	}()
	wg.Wait()

	if capErr != nil {
		return nil, nil, capErr
	}
	return text, slides, nil
}

// captionAndTemplate runs the caption and template generators concurrently;
// either failure fails the cycle.
func (c *Creator) captionAndTemplate(ctx context.Context, brand *models.BrandProfile, req Request) (*models.TextResult, *models.TemplateFields, error) {
	history := c.recentSnippets(ctx)

	var (
		wg      sync.WaitGroup
		text    *models.TextResult
		capErr  error
		fields  *models.TemplateFields
		tmplErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		text, capErr = c.studio.GenerateCaption(ctx, brand, req.Topic, req.Platform, history)
	}()
	go func() {
		defer wg.Done()
		fields, tmplErr = c.studio.GenerateTemplate(ctx, brand, req.Topic, req.Style)
	}()
	wg.Wait()

	if capErr != nil {
		return nil, nil, capErr
	}
	if tmplErr != nil {
		return nil, nil, tmplErr
	}
	return text, fields, nil
}

// recentSnippets loads the anti-repetition context, best-effort.
func (c *Creator) recentSnippets(ctx context.Context) []string {
	if c.history == nil {
		return nil
	}
	snippets, err := c.history.RecentSnippets(ctx, historySnippets)
	if err != nil {
		slog.Warn("history snippets unavailable", "error", err)
		return nil
	}
	return snippets
}

// persistHistory writes the cycle's history record. Failures are logged;
// the generated result is already in hand and stays valid.
func (c *Creator) persistHistory(ctx context.Context, req Request, result *Result) {
	if c.history == nil || result.Text == nil {
		return
	}
	item := &models.HistoryItem{
		Topic:       req.Topic,
		Platform:    req.Platform,
		ContentType: req.ContentType,
		Caption:     result.Text.Caption,
		Hashtags:    result.Text.Hashtags,
		ImagePrompt: result.Text.SuggestedImagePrompt,
	}
	if err := c.history.Insert(ctx, item); err != nil {
		slog.Warn("history record not persisted", "topic", req.Topic, "error", err)
	}
}
