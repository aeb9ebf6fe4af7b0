// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package capture

import (
	"context"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"sustudio/internal/render"
)

const (
	videoFPS        = 30
	secondsPerSlide = 3
	framesPerSlide  = videoFPS * secondsPerSlide

	zoomStart = 1.00
	zoomEnd   = 1.05
)

// rasterProgress is the share of the total progress bar the raster phase
// occupies; frame composition fills the rest.
const rasterProgress = 0.30

// VideoEncoder receives composed RGBA frames and produces a finished
// container. Start fixes the frame geometry, Push streams frames in display
// order, Finish flushes and returns the encoded bytes. Abort releases
// encoder resources when the run is cancelled mid-stream.
type VideoEncoder interface {
	Start(ctx context.Context, width, height, fps int) error
	Push(frame *image.RGBA) error
	Finish() ([]byte, error)
	Abort()
}

// Video rasterizes every slide, composes a 30fps motion video with a slow
// push-in zoom (3 seconds per slide), and encodes it through enc. The
// progress callback, if non-nil, receives values in [0,1]: the raster phase
// covers the first 30%, composition the rest.
func (p *Pipeline) Video(ctx context.Context, docs []render.Document, brandSlug string, enc VideoEncoder, progress func(float64)) (Artifact, error) {
	if len(docs) == 0 {
		return Artifact{}, fmt.Errorf("capture video: no slides to compose")
	}
	report := func(v float64) {
		if progress != nil {
			progress(v)
		}
	}

	frames := make([]image.Image, 0, len(docs))
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return Artifact{}, err
		}
		data, err := p.raster.Rasterize(doc.SVG, doc.Width)
		if err != nil {
			return Artifact{}, fmt.Errorf("capture video: slide %d: %w", i+1, err)
		}
		img, err := p.decode(data)
		if err != nil {
			return Artifact{}, fmt.Errorf("capture video: decode slide %d: %w", i+1, err)
		}
		frames = append(frames, img)
		report(rasterProgress * float64(i+1) / float64(len(docs)))
	}

	bounds := frames[0].Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if err := enc.Start(ctx, w, h, videoFPS); err != nil {
		return Artifact{}, fmt.Errorf("capture video: %w", err)
	}

	total := len(frames) * framesPerSlide
	done := 0
	for _, src := range frames {
		for f := 0; f < framesPerSlide; f++ {
			if err := ctx.Err(); err != nil {
				enc.Abort()
				return Artifact{}, err
			}
			zoom := zoomStart + (zoomEnd-zoomStart)*float64(f)/float64(framesPerSlide-1)
			if err := enc.Push(zoomFrame(src, zoom)); err != nil {
				enc.Abort()
				return Artifact{}, fmt.Errorf("capture video: encode frame: %w", err)
			}
			done++
			report(rasterProgress + (1-rasterProgress)*float64(done)/float64(total))
		}
	}

	data, err := enc.Finish()
	if err != nil {
		return Artifact{}, fmt.Errorf("capture video: %w", err)
	}
	return Artifact{
		Name: p.fileName(brandSlug, "video", "webm"),
		MIME: "video/webm",
		Data: data,
	}, nil
}

// zoomFrame scales a centered crop of src back up to full size, so rising
// zoom values push steadily into the image.
func zoomFrame(src image.Image, zoom float64) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	cw := int(float64(w) / zoom)
	ch := int(float64(h) / zoom)
	x0 := b.Min.X + (w-cw)/2
	y0 := b.Min.Y + (h-ch)/2
	crop := image.Rect(x0, y0, x0+cw, y0+ch)

	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)
	return dst
}
