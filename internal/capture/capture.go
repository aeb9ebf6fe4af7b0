// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package capture turns rendered documents into downloadable artifacts:
// canonical 1080x1080 PNGs, a VP9/WebM motion video with a slow zoom, and
// narrated voice posts. Rasterization and video encoding sit behind small
// interfaces so the pipeline is testable without vips or GStreamer.
package capture

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"sustudio/internal/imaging"
	"sustudio/internal/render"
)

// Rasterizer scales an SVG document of the given design width up to the
// canonical square output. internal/imaging provides the vips-backed
// implementation.
type Rasterizer interface {
	Rasterize(svg []byte, designWidth int) ([]byte, error)
}

// Artifact is one captured output file, named and ready for upload.
type Artifact struct {
	Name string
	MIME string
	Data []byte
}

// CarouselResult reports the slides that survived capture. Captured may be
// lower than Total when individual slides failed to rasterize.
type CarouselResult struct {
	Artifacts []Artifact
	Captured  int
	Total     int
}

// slideDelay spaces sequential slide captures out so the rasterizer is
// never hammered back to back during a carousel export.
const slideDelay = 250 * time.Millisecond

// Pipeline captures rendered documents into artifacts.
type Pipeline struct {
	raster Rasterizer
	decode func([]byte) (image.Image, error)
	delay  time.Duration
	now    func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDelay overrides the pause between sequential slide captures.
func WithDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.delay = d }
}

// WithClock overrides the timestamp source used in artifact names.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New builds a capture pipeline on top of the given rasterizer.
func New(raster Rasterizer, opts ...Option) *Pipeline {
	p := &Pipeline{
		raster: raster,
		decode: imaging.DecodePNG,
		delay:  slideDelay,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// fileName builds `{brand-slug}-{kind}-{timestamp}.{ext}`.
func (p *Pipeline) fileName(brandSlug, kind, ext string) string {
	return fmt.Sprintf("%s-%s-%d.%s", brandSlug, kind, p.now().UnixMilli(), ext)
}

// Image captures a single rendered document as one PNG artifact.
func (p *Pipeline) Image(ctx context.Context, doc render.Document, brandSlug, kind string) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	data, err := p.raster.Rasterize(doc.SVG, doc.Width)
	if err != nil {
		return Artifact{}, fmt.Errorf("capture %s: %w", kind, err)
	}
	return Artifact{
		Name: p.fileName(brandSlug, kind, "png"),
		MIME: "image/png",
		Data: data,
	}, nil
}

// Carousel captures every slide in order with a short pause between
// emissions. A slide that fails to rasterize is skipped and logged; the
// result reports how many survived. Zero surviving slides is an error, and
// context cancellation aborts the whole run with nothing returned.
func (p *Pipeline) Carousel(ctx context.Context, docs []render.Document, brandSlug string) (CarouselResult, error) {
	res := CarouselResult{Total: len(docs)}
	if len(docs) == 0 {
		return res, fmt.Errorf("capture carousel: no slides to capture")
	}

	for i, doc := range docs {
		if i > 0 && p.delay > 0 {
			select {
			case <-ctx.Done():
				return CarouselResult{}, ctx.Err()
			case <-time.After(p.delay):
			}
		}
		if err := ctx.Err(); err != nil {
			return CarouselResult{}, err
		}

		data, err := p.raster.Rasterize(doc.SVG, doc.Width)
		if err != nil {
			slog.Warn("capture: slide skipped", "slide", i+1, "error", err)
			continue
		}
		res.Artifacts = append(res.Artifacts, Artifact{
			Name: p.fileName(brandSlug, fmt.Sprintf("slide-%d", i+1), "png"),
			MIME: "image/png",
			Data: data,
		})
		res.Captured++
	}

	if res.Captured == 0 {
		return res, fmt.Errorf("capture carousel: all %d slides failed", res.Total)
	}
	if res.Captured < res.Total {
		slog.Info("capture: partial carousel", "captured", res.Captured, "total", res.Total)
	}
	return res, nil
}
