// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scheduler orchestrates the posting calendar. Each date moves
// through suggested, draft, ready and posted: the weekly planner fills
// empty days with suggestions, content creation promotes a day to ready,
// and marking posted is the only terminal transition.
package scheduler

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sustudio/internal/capture"
	"sustudio/internal/models"
	"sustudio/internal/render"
)

// PostStore is the persistence surface the scheduler drives.
type PostStore interface {
	ByDateRange(ctx context.Context, from, to string) ([]models.ScheduledPost, error)
	ByDate(ctx context.Context, date string) (*models.ScheduledPost, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ScheduledPost, error)
	Create(ctx context.Context, p *models.ScheduledPost) (*models.ScheduledPost, error)
	Update(ctx context.Context, p *models.ScheduledPost) (*models.ScheduledPost, error)
	MarkPosted(ctx context.Context, id uuid.UUID) (*models.ScheduledPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Generator is the content generation surface used when a day is created.
type Generator interface {
	GenerateWeeklyPlan(ctx context.Context, brand *models.BrandProfile) []models.WeeklyPlanEntry
	GenerateCaption(ctx context.Context, brand *models.BrandProfile, topic string, platform models.Platform, history []string) (*models.TextResult, error)
	GenerateCarousel(ctx context.Context, brand *models.BrandProfile, topic string) []models.CarouselSlide
}

// Capturer rasterizes rendered slides into artifacts.
type Capturer interface {
	Carousel(ctx context.Context, docs []render.Document, brandSlug string) (capture.CarouselResult, error)
}

// Uploader pushes captured artifacts to object storage. internal/storage's
// S3 client satisfies this; when absent, assets are kept inline as data URIs.
type Uploader interface {
	Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, bucket, key string) error
	FileURL(key string) string
	PublicBucket() string
	ExtractKey(rawURL string) (string, bool)
}

// Scheduler coordinates stores, generators and capture for the calendar.
type Scheduler struct {
	posts    PostStore
	studio   Generator
	pipeline Capturer
	uploads  Uploader
}

// New creates a Scheduler. uploads may be nil.
func New(posts PostStore, studio Generator, pipeline Capturer, uploads Uploader) *Scheduler {
	return &Scheduler{posts: posts, studio: studio, pipeline: pipeline, uploads: uploads}
}

// Range lists the calendar between two YYYY-MM-DD dates inclusive.
func (s *Scheduler) Range(ctx context.Context, from, to string) ([]models.ScheduledPost, error) {
	return s.posts.ByDateRange(ctx, from, to)
}

// Plan generates a weekly content plan and writes one suggested post per
// weekday starting at weekStart (YYYY-MM-DD). Days that already hold a post
// in any state are left untouched, so re-planning never destroys work.
func (s *Scheduler) Plan(ctx context.Context, brand *models.BrandProfile, weekStart string) ([]models.ScheduledPost, error) {
	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return nil, fmt.Errorf("plan: bad week start %q: %w", weekStart, err)
	}

	entries := s.studio.GenerateWeeklyPlan(ctx, brand)
	var planned []models.ScheduledPost
	for i, entry := range entries {
		date := start.AddDate(0, 0, i).Format("2006-01-02")

		existing, err := s.posts.ByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			planned = append(planned, *existing)
			continue
		}

		contentType := models.ContentType(entry.Type)
		if !contentType.Valid() {
			contentType = models.ContentTypeCarouselHD
		}
		created, err := s.posts.Create(ctx, &models.ScheduledPost{
			Date:        date,
			Topic:       entry.Topic,
			Platform:    models.PlatformInstagram,
			ContentType: contentType,
			Style:       models.CarouselStyleLight,
			Status:      models.PostStatusSuggested,
		})
		if err != nil {
			return nil, fmt.Errorf("plan %s: %w", date, err)
		}
		planned = append(planned, *created)
	}
	return planned, nil
}

// CreateContent generates and captures a day's content, promoting the post
// to ready. The date's existing suggestion supplies the topic when none is
// given; a posted day is never regenerated.
func (s *Scheduler) CreateContent(ctx context.Context, brand *models.BrandProfile, date, topic string) (*models.ScheduledPost, error) {
	post, err := s.posts.ByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if post == nil {
		if topic == "" {
			return nil, fmt.Errorf("create content: %s is empty and no topic given", date)
		}
		post, err = s.posts.Create(ctx, &models.ScheduledPost{
			Date:        date,
			Topic:       topic,
			Platform:    models.PlatformInstagram,
			ContentType: models.ContentTypeCarouselHD,
			Style:       models.CarouselStyleLight,
			Status:      models.PostStatusDraft,
		})
		if err != nil {
			return nil, err
		}
	}
	if post.Status == models.PostStatusPosted {
		return nil, fmt.Errorf("create content: %s already posted", date)
	}
	if topic != "" {
		post.Topic = topic
	}

	text, err := s.studio.GenerateCaption(ctx, brand, post.Topic, post.Platform, nil)
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	slides := s.studio.GenerateCarousel(ctx, brand, post.Topic)

	docs := make([]render.Document, 0, len(slides))
	for _, slide := range slides {
		docs = append(docs, render.Slide(slide, post.Style))
	}
	captured, err := s.pipeline.Carousel(ctx, docs, brand.Slug())
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}

	post.Caption = text.Caption
	post.Hashtags = text.Hashtags
	post.ImageAssets = s.storeAssets(ctx, captured.Artifacts)
	post.Status = models.PostStatusReady
	return s.posts.Update(ctx, post)
}

// storeAssets uploads artifacts to object storage and returns their public
// URLs. Without an uploader, or when an upload fails, the artifact is kept
// inline as a data URI.
func (s *Scheduler) storeAssets(ctx context.Context, artifacts []capture.Artifact) []string {
	assets := make([]string, 0, len(artifacts))
	for _, art := range artifacts {
		if s.uploads != nil {
			err := s.uploads.Upload(ctx, s.uploads.PublicBucket(), art.Name, art.MIME,
				bytes.NewReader(art.Data), int64(len(art.Data)))
			if err == nil {
				assets = append(assets, s.uploads.FileURL(art.Name))
				continue
			}
			slog.Warn("asset upload failed, keeping inline", "name", art.Name, "error", err)
		}
		assets = append(assets, fmt.Sprintf("data:%s;base64,%s",
			art.MIME, base64.StdEncoding.EncodeToString(art.Data)))
	}
	return assets
}

// MarkPosted transitions a post to its terminal state. Safe to repeat.
func (s *Scheduler) MarkPosted(ctx context.Context, id uuid.UUID) (*models.ScheduledPost, error) {
	return s.posts.MarkPosted(ctx, id)
}

// Delete removes a scheduled post, returning its date to empty. Uploaded
// slide rasters are deleted from object storage best-effort; inline data
// URI assets vanish with the row.
func (s *Scheduler) Delete(ctx context.Context, id uuid.UUID) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	if post == nil || s.uploads == nil {
		return nil
	}
	for _, asset := range post.ImageAssets {
		key, ok := s.uploads.ExtractKey(asset)
		if !ok {
			continue
		}
		if err := s.uploads.Delete(ctx, s.uploads.PublicBucket(), key); err != nil {
			slog.Warn("asset cleanup failed", "key", key, "error", err)
		}
	}
	return nil
}
