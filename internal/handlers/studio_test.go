// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sustudio/internal/ai"
	"sustudio/internal/capture"
	"sustudio/internal/creator"
	"sustudio/internal/models"
	"sustudio/internal/render"
)

type fakeCreator struct {
	result   *creator.Result
	genErr   error
	state    creator.State
	stateMsg string

	gotRequest creator.Request
	discarded  bool
}

func (f *fakeCreator) Generate(ctx context.Context, brand *models.BrandProfile, req creator.Request) (*creator.Result, error) {
	f.gotRequest = req
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.result, nil
}

func (f *fakeCreator) State() (creator.State, string) { return f.state, f.stateMsg }
func (f *fakeCreator) Result() *creator.Result        { return f.result }
func (f *fakeCreator) Discard()                       { f.discarded = true }

type fakePipeline struct {
	img         capture.Artifact
	imgErr      error
	carousel    capture.CarouselResult
	carouselErr error
	video       capture.Artifact
	videoErr    error
	voice       capture.VoiceResult
	voiceErr    error

	// progressSteps is replayed into the Video progress callback.
	progressSteps []float64

	gotDoc   render.Document
	gotKind  string
	gotDocs  []render.Document
	gotSlug  string
	gotVoice string
}

func (f *fakePipeline) Image(ctx context.Context, doc render.Document, brandSlug, kind string) (capture.Artifact, error) {
	f.gotDoc, f.gotSlug, f.gotKind = doc, brandSlug, kind
	return f.img, f.imgErr
}

func (f *fakePipeline) Carousel(ctx context.Context, docs []render.Document, brandSlug string) (capture.CarouselResult, error) {
	f.gotDocs, f.gotSlug = docs, brandSlug
	return f.carousel, f.carouselErr
}

func (f *fakePipeline) Video(ctx context.Context, docs []render.Document, brandSlug string, enc capture.VideoEncoder, progress func(float64)) (capture.Artifact, error) {
	f.gotDocs, f.gotSlug = docs, brandSlug
	if progress != nil {
		for _, p := range f.progressSteps {
			progress(p)
		}
	}
	return f.video, f.videoErr
}

func (f *fakePipeline) Voice(ctx context.Context, docs []render.Document, slides []models.CarouselSlide, brandSlug, voiceID string, speech capture.SpeechProvider) (capture.VoiceResult, error) {
	f.gotDocs, f.gotSlug, f.gotVoice = docs, brandSlug, voiceID
	return f.voice, f.voiceErr
}

type fakeVideoEncoder struct{}

func (fakeVideoEncoder) Start(ctx context.Context, width, height, fps int) error { return nil }
func (fakeVideoEncoder) Push(frame *image.RGBA) error                            { return nil }
func (fakeVideoEncoder) Finish() ([]byte, error)                                 { return nil, nil }
func (fakeVideoEncoder) Abort()                                                  {}

type fakeSpeech struct{}

func (fakeSpeech) GenerateSpeech(ctx context.Context, text, voiceID string) (string, error) {
	return "data:audio/mpeg;base64,AAAA", nil
}

func carouselResult() *creator.Result {
	slides := make([]models.CarouselSlide, models.CarouselLen)
	for i := range slides {
		kind := models.SlideContent
		if i == 0 {
			kind = models.SlideCover
		} else if i == len(slides)-1 {
			kind = models.SlideCTA
		}
		slides[i] = models.CarouselSlide{
			Kind:       kind,
			Title:      fmt.Sprintf("Slide %d", i+1),
			Body:       "Conteúdo do slide.",
			PageNumber: i + 1,
			TotalPages: models.CarouselLen,
		}
	}
	return &creator.Result{ContentType: models.ContentTypeCarouselHD, Slides: slides}
}

func templateResult() *creator.Result {
	return &creator.Result{
		ContentType: models.ContentTypeTemplateHD,
		Template: &models.TemplateFields{
			Title:     "Controle seus gastos",
			Body:      "Anote tudo o que você gasta por uma semana.",
			Highlight: "Dica",
			Footer:    "Assine Agora",
		},
	}
}

func newTestStudio(c *fakeCreator, brands BrandStore, p *fakePipeline) *Studio {
	s := NewStudio(c, brands, p)
	s.newEncoder = func() capture.VideoEncoder { return fakeVideoEncoder{} }
	s.newSpeech = func(brand *models.BrandProfile) (capture.SpeechProvider, error) {
		return fakeSpeech{}, nil
	}
	return s
}

// --- Generate ---

func TestGenerate_MissingTopic_Rejected(t *testing.T) {
	s := newTestStudio(&fakeCreator{}, &fakeBrands{brand: testBrand()}, &fakePipeline{})

	req := jsonRequest(t, http.MethodPost, "/api/generate", map[string]string{
		"topic":       "   ",
		"contentType": "POST_TEXT",
	})
	rec := httptest.NewRecorder()
	s.Generate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Topic is required") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestGenerate_NoBrandProfile_Conflict(t *testing.T) {
	s := newTestStudio(&fakeCreator{}, &fakeBrands{}, &fakePipeline{})

	req := jsonRequest(t, http.MethodPost, "/api/generate", map[string]string{
		"topic":       "Como economizar no mercado",
		"contentType": "CAROUSEL_HD",
	})
	rec := httptest.NewRecorder()
	s.Generate(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409", rec.Code)
	}
}

func TestGenerate_Success_PassesRequestThrough(t *testing.T) {
	c := &fakeCreator{result: carouselResult()}
	s := newTestStudio(c, &fakeBrands{brand: testBrand()}, &fakePipeline{})

	req := jsonRequest(t, http.MethodPost, "/api/generate", map[string]string{
		"topic":       "Reserva de emergência",
		"platform":    "INSTAGRAM",
		"contentType": "CAROUSEL_HD",
	})
	rec := httptest.NewRecorder()
	s.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if c.gotRequest.Topic != "Reserva de emergência" {
		t.Errorf("topic: got %q", c.gotRequest.Topic)
	}
	if c.gotRequest.ContentType != models.ContentTypeCarouselHD {
		t.Errorf("content type: got %q", c.gotRequest.ContentType)
	}
}

func TestGenerate_Vision_RequiresDataURI(t *testing.T) {
	s := newTestStudio(&fakeCreator{}, &fakeBrands{brand: testBrand()}, &fakePipeline{})

	req := jsonRequest(t, http.MethodPost, "/api/generate", map[string]string{
		"contentType": "UPLOAD_VISION",
	})
	rec := httptest.NewRecorder()
	s.Generate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Image payload is required") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestGenerate_CreatorFailure_BadGateway(t *testing.T) {
	c := &fakeCreator{genErr: fmt.Errorf("all providers exhausted")}
	s := newTestStudio(c, &fakeBrands{brand: testBrand()}, &fakePipeline{})

	req := jsonRequest(t, http.MethodPost, "/api/generate", map[string]string{
		"topic":       "Orçamento mensal",
		"contentType": "POST_TEXT",
	})
	rec := httptest.NewRecorder()
	s.Generate(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502", rec.Code)
	}
}

// --- State / Discard ---

func TestState_ReportsErrorMessage(t *testing.T) {
	c := &fakeCreator{state: creator.StateError, stateMsg: "provider unreachable"}
	s := newTestStudio(c, &fakeBrands{}, &fakePipeline{})

	rec := httptest.NewRecorder()
	s.State(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	var got struct {
		State         string `json:"state"`
		Error         string `json:"error"`
		VideoProgress int64  `json:"videoProgress"`
	}
	decodeBody(t, rec, &got)
	if got.State != "error" || got.Error != "provider unreachable" {
		t.Errorf("got %+v", got)
	}
}

func TestDiscard_ReturnsNoContent(t *testing.T) {
	c := &fakeCreator{result: carouselResult()}
	s := newTestStudio(c, &fakeBrands{}, &fakePipeline{})

	rec := httptest.NewRecorder()
	s.Discard(rec, httptest.NewRequest(http.MethodPost, "/api/discard", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", rec.Code)
	}
	if !c.discarded {
		t.Error("expected creator.Discard to be called")
	}
}

// --- Capture ---

func TestCaptureTemplate_NoSession_Conflict(t *testing.T) {
	s := newTestStudio(&fakeCreator{}, &fakeBrands{brand: testBrand()}, &fakePipeline{})

	req := jsonRequest(t, http.MethodPost, "/api/capture/template", map[string]string{"style": "QUOTE"})
	rec := httptest.NewRecorder()
	s.CaptureTemplate(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Generate a template first") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestCaptureTemplate_ReturnsArtifact(t *testing.T) {
	p := &fakePipeline{img: capture.Artifact{
		Name: "su-controle-template-1.png",
		MIME: "image/png",
		Data: []byte{1, 2, 3},
	}}
	s := newTestStudio(&fakeCreator{result: templateResult()}, &fakeBrands{brand: testBrand()}, p)

	req := jsonRequest(t, http.MethodPost, "/api/capture/template", map[string]string{"style": "MINIMAL_DARK"})
	rec := httptest.NewRecorder()
	s.CaptureTemplate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}
	if p.gotSlug != "su-controle" || p.gotKind != "template" {
		t.Errorf("captured as %q/%q", p.gotSlug, p.gotKind)
	}
	if len(p.gotDoc.SVG) == 0 || !strings.Contains(string(p.gotDoc.SVG), "Controle seus gastos") {
		t.Error("expected the rendered document to carry the template title")
	}
	var got artifactJSON
	decodeBody(t, rec, &got)
	if got.MIME != "image/png" || !strings.HasPrefix(got.DataURI, "data:image/png;base64,") {
		t.Errorf("got %+v", got)
	}
}

func TestCaptureCarousel_NoSession_Conflict(t *testing.T) {
	s := newTestStudio(&fakeCreator{}, &fakeBrands{brand: testBrand()}, &fakePipeline{})

	req := jsonRequest(t, http.MethodPost, "/api/capture/carousel", map[string]string{"style": "LIGHT"})
	rec := httptest.NewRecorder()
	s.CaptureCarousel(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Generate a carousel first") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestCaptureCarousel_ReturnsDataURIs(t *testing.T) {
	p := &fakePipeline{carousel: capture.CarouselResult{
		Artifacts: []capture.Artifact{
			{Name: "su-controle-slide-1-1.png", MIME: "image/png", Data: []byte{1, 2, 3}},
			{Name: "su-controle-slide-2-1.png", MIME: "image/png", Data: []byte{4, 5, 6}},
		},
		Captured: 2,
		Total:    5,
	}}
	s := newTestStudio(&fakeCreator{result: carouselResult()}, &fakeBrands{brand: testBrand()}, p)

	req := jsonRequest(t, http.MethodPost, "/api/capture/carousel", map[string]string{"style": "DARK"})
	rec := httptest.NewRecorder()
	s.CaptureCarousel(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}
	if p.gotSlug != "su-controle" {
		t.Errorf("slug: got %q", p.gotSlug)
	}
	if len(p.gotDocs) != models.CarouselLen {
		t.Errorf("docs: got %d, want %d", len(p.gotDocs), models.CarouselLen)
	}

	var got struct {
		Artifacts []artifactJSON `json:"artifacts"`
		Captured  int            `json:"captured"`
		Total     int            `json:"total"`
	}
	decodeBody(t, rec, &got)
	if got.Captured != 2 || got.Total != 5 {
		t.Errorf("counts: got %d/%d", got.Captured, got.Total)
	}
	for _, a := range got.Artifacts {
		if !strings.HasPrefix(a.DataURI, "data:image/png;base64,") {
			t.Errorf("artifact %s: bad data URI %q", a.Name, a.DataURI)
		}
	}
}

func TestCaptureVideo_ReturnsArtifact(t *testing.T) {
	p := &fakePipeline{video: capture.Artifact{
		Name: "su-controle-video-1.webm",
		MIME: "video/webm",
		Data: []byte("webm"),
	}}
	s := newTestStudio(&fakeCreator{result: carouselResult()}, &fakeBrands{brand: testBrand()}, p)

	req := jsonRequest(t, http.MethodPost, "/api/capture/video", map[string]string{"style": "LIGHT"})
	rec := httptest.NewRecorder()
	s.CaptureVideo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var got artifactJSON
	decodeBody(t, rec, &got)
	if got.MIME != "video/webm" || !strings.HasSuffix(got.Name, ".webm") {
		t.Errorf("got %+v", got)
	}
}

func TestCaptureVideo_ProgressVisibleInState(t *testing.T) {
	p := &fakePipeline{
		video:         capture.Artifact{Name: "su-controle-video-1.webm", MIME: "video/webm", Data: []byte("webm")},
		progressSteps: []float64{0.3, 0.65, 1.0},
	}
	s := newTestStudio(&fakeCreator{result: carouselResult()}, &fakeBrands{brand: testBrand()}, p)

	req := jsonRequest(t, http.MethodPost, "/api/capture/video", map[string]string{"style": "LIGHT"})
	rec := httptest.NewRecorder()
	s.CaptureVideo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	stateRec := httptest.NewRecorder()
	s.State(stateRec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	var got struct {
		VideoProgress int64 `json:"videoProgress"`
	}
	decodeBody(t, stateRec, &got)
	if got.VideoProgress != 100 {
		t.Errorf("videoProgress: got %d, want 100", got.VideoProgress)
	}
}

func TestCaptureCarousel_MalformedBody_Rejected(t *testing.T) {
	s := newTestStudio(&fakeCreator{result: carouselResult()}, &fakeBrands{brand: testBrand()}, &fakePipeline{})

	req := httptest.NewRequest(http.MethodPost, "/api/capture/carousel", strings.NewReader(`{"style":`))
	rec := httptest.NewRecorder()
	s.CaptureCarousel(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid request body") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestCaptureCarousel_EmptyBody_UsesDefaults(t *testing.T) {
	p := &fakePipeline{carousel: capture.CarouselResult{Captured: 5, Total: 5}}
	s := newTestStudio(&fakeCreator{result: carouselResult()}, &fakeBrands{brand: testBrand()}, p)

	req := httptest.NewRequest(http.MethodPost, "/api/capture/carousel", nil)
	rec := httptest.NewRecorder()
	s.CaptureCarousel(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}
	if len(p.gotDocs) != models.CarouselLen {
		t.Errorf("docs: got %d, want %d", len(p.gotDocs), models.CarouselLen)
	}
}

func TestCaptureVoice_MissingKey_PreconditionFailed(t *testing.T) {
	s := newTestStudio(&fakeCreator{result: carouselResult()}, &fakeBrands{brand: testBrand()}, &fakePipeline{})
	s.newSpeech = func(brand *models.BrandProfile) (capture.SpeechProvider, error) {
		return nil, &ai.MissingKeyError{Provider: "elevenlabs"}
	}

	req := jsonRequest(t, http.MethodPost, "/api/capture/voice", map[string]string{"voiceId": "alice"})
	rec := httptest.NewRecorder()
	s.CaptureVoice(rec, req)

	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("status: got %d, want 412", rec.Code)
	}
}

func TestCaptureVoice_ReturnsAudioAndImages(t *testing.T) {
	p := &fakePipeline{voice: capture.VoiceResult{
		Audio: capture.Artifact{Name: "su-controle-voice-1.mp3", MIME: "audio/mpeg", Data: []byte("mp3")},
		Images: capture.CarouselResult{
			Artifacts: []capture.Artifact{{Name: "s1.png", MIME: "image/png", Data: []byte{1}}},
			Captured:  1,
			Total:     5,
		},
	}}
	s := newTestStudio(&fakeCreator{result: carouselResult()}, &fakeBrands{brand: testBrand()}, p)

	req := jsonRequest(t, http.MethodPost, "/api/capture/voice", map[string]string{"voiceId": "rachel"})
	rec := httptest.NewRecorder()
	s.CaptureVoice(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}
	if p.gotVoice != "rachel" {
		t.Errorf("voice: got %q", p.gotVoice)
	}
	var got struct {
		Audio  artifactJSON   `json:"audio"`
		Images []artifactJSON `json:"images"`
	}
	decodeBody(t, rec, &got)
	if got.Audio.MIME != "audio/mpeg" || len(got.Images) != 1 {
		t.Errorf("got audio %+v, %d images", got.Audio, len(got.Images))
	}
}

func TestVoices_ListsNarrationVoices(t *testing.T) {
	s := newTestStudio(&fakeCreator{}, &fakeBrands{}, &fakePipeline{})

	rec := httptest.NewRecorder()
	s.Voices(rec, httptest.NewRequest(http.MethodGet, "/api/voices", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var got []ai.Voice
	decodeBody(t, rec, &got)
	if len(got) == 0 {
		t.Error("expected at least one voice")
	}
}
