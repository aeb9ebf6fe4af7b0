// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging rasterizes SVG documents into PNG bitmaps using libvips.
// Documents are laid out at a preview design width; rasterization scales
// them up to the canonical square output resolution, so downloads come out
// at full quality regardless of the design size.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	"github.com/davidbyttow/govips/v2/vips"
)

// CanonicalSize is the square output resolution of every raster.
const CanonicalSize = 1080

// Startup initialises the libvips library. Call once at application start.
// concurrency controls the number of libvips worker threads (0 = auto).
func Startup(concurrency int) {
	cfg := &vips.Config{
		ConcurrencyLevel: concurrency,
		MaxCacheSize:     100,
		MaxCacheMem:      50 * 1024 * 1024, // 50 MB
	}
	vips.LoggingSettings(nil, vips.LogLevelWarning)
	vips.Startup(cfg)
	slog.Info("libvips started", "version", vips.Version)
}

// Shutdown releases libvips resources. Call at application shutdown.
func Shutdown() {
	vips.Shutdown()
}

// Vips rasterizes via libvips. The zero value is not usable; construct
// with NewVips after Startup.
type Vips struct {
	size int
}

// NewVips returns a rasterizer producing CanonicalSize squares.
func NewVips() *Vips {
	return &Vips{size: CanonicalSize}
}

// Rasterize renders an SVG document of the given design width into a PNG
// at the canonical resolution. The scale factor is canonical/design, the
// same uniform factor for both axes since documents are square. Alpha is
// preserved.
func (v *Vips) Rasterize(svg []byte, designWidth int) ([]byte, error) {
	if designWidth <= 0 {
		return nil, fmt.Errorf("imaging: invalid design width %d", designWidth)
	}

	img, err := vips.NewThumbnailFromBuffer(svg, v.size, v.size, vips.InterestingNone)
	if err != nil {
		return nil, fmt.Errorf("imaging: svg load failed: %w", err)
	}
	defer img.Close()

	params := vips.NewPngExportParams()
	params.StripMetadata = true

	buf, _, err := img.ExportPng(params)
	if err != nil {
		return nil, fmt.Errorf("imaging: png export failed: %w", err)
	}
	return buf, nil
}

// DecodePNG decodes a raster back into an image for frame composition.
func DecodePNG(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: png decode failed: %w", err)
	}
	return img, nil
}
