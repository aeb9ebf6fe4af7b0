// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns structured content into square SVG documents ready
// for rasterization. The SVG is laid out at a fixed design width; the
// capture pipeline scales it up to the canonical output resolution, so the
// design width here plays the role of the on-screen preview size.
package render

import (
	"fmt"
	"strings"

	"sustudio/internal/models"
)

// DesignWidth is the side length, in pixels, at which every document is
// laid out. Capture derives its scale factor from this value.
const DesignWidth = 540

// Document is a renderable visual: an SVG payload with a known pixel width.
type Document struct {
	SVG   []byte
	Width int
}

// palette is the color scheme a style token selects.
type palette struct {
	Background string
	Title      string
	Body       string
	Accent     string
}

var carouselPalettes = map[models.CarouselStyle]palette{
	models.CarouselStyleLight:   {Background: "#f0f0f0", Title: "#1a1a2e", Body: "#44475a", Accent: "#ff6e40"},
	models.CarouselStyleDark:    {Background: "#1a1a2e", Title: "#ffffff", Body: "#d0d0e0", Accent: "#ff6e40"},
	models.CarouselStyleVibrant: {Background: "#ff6e40", Title: "#ffffff", Body: "#fff3ee", Accent: "#1a1a2e"},
}

var templatePalettes = map[models.TemplateStyle]palette{
	models.TemplateStyleEducational: {Background: "#ffffff", Title: "#1a1a2e", Body: "#44475a", Accent: "#ff6e40"},
	models.TemplateStyleQuote:       {Background: "#f0f0f0", Title: "#1a1a2e", Body: "#1a1a2e", Accent: "#ff6e40"},
	models.TemplateStyleMinimalDark: {Background: "#1a1a2e", Title: "#ffffff", Body: "#d0d0e0", Accent: "#ff6e40"},
}

// Slide renders one carousel slide in the given style.
func Slide(slide models.CarouselSlide, style models.CarouselStyle) Document {
	p, ok := carouselPalettes[style]
	if !ok {
		p = carouselPalettes[models.CarouselStyleLight]
	}

	var b strings.Builder
	openSVG(&b, p.Background)

	titleSize := 34
	if slide.Kind == models.SlideCover {
		titleSize = 44
	}

	writeLines(&b, wrapText(slide.Title, 22), DesignWidth/2, 180, titleSize, p.Title, "bold")
	writeLines(&b, wrapText(slide.Body, 32), DesignWidth/2, 300, 22, p.Body, "normal")

	if slide.Kind == models.SlideCTA {
		fmt.Fprintf(&b, `<rect x="%d" y="420" width="220" height="48" rx="24" fill="%s"/>`,
			DesignWidth/2-110, p.Accent)
		fmt.Fprintf(&b, `<text x="%d" y="450" font-family="Poppins, sans-serif" font-size="18" font-weight="bold" fill="#ffffff" text-anchor="middle">ASSINE AGORA</text>`,
			DesignWidth/2)
	}

	// Page indicator, bottom right.
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="Poppins, sans-serif" font-size="16" fill="%s" text-anchor="end">%d/%d</text>`,
		DesignWidth-28, DesignWidth-28, p.Accent, slide.PageNumber, slide.TotalPages)

	b.WriteString("</svg>")
	return Document{SVG: []byte(b.String()), Width: DesignWidth}
}

// Template renders the single-post template fields in the given style.
func Template(fields models.TemplateFields, style models.TemplateStyle) Document {
	p, ok := templatePalettes[style]
	if !ok {
		p = templatePalettes[models.TemplateStyleEducational]
	}

	var b strings.Builder
	openSVG(&b, p.Background)

	if fields.Highlight != "" {
		fmt.Fprintf(&b, `<rect x="%d" y="80" width="160" height="36" rx="18" fill="%s"/>`,
			DesignWidth/2-80, p.Accent)
		fmt.Fprintf(&b, `<text x="%d" y="104" font-family="Poppins, sans-serif" font-size="16" font-weight="bold" fill="#ffffff" text-anchor="middle">%s</text>`,
			DesignWidth/2, escape(fields.Highlight))
	}

	writeLines(&b, wrapText(fields.Title, 20), DesignWidth/2, 200, 38, p.Title, "bold")
	writeLines(&b, wrapText(fields.Body, 34), DesignWidth/2, 320, 22, p.Body, "normal")

	if fields.Footer != "" {
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="Poppins, sans-serif" font-size="18" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
			DesignWidth/2, DesignWidth-60, p.Accent, escape(fields.Footer))
	}

	b.WriteString("</svg>")
	return Document{SVG: []byte(b.String()), Width: DesignWidth}
}

func openSVG(b *strings.Builder, background string) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		DesignWidth, DesignWidth, DesignWidth, DesignWidth)
	fmt.Fprintf(b, `<rect width="%d" height="%d" fill="%s"/>`, DesignWidth, DesignWidth, background)
}

// writeLines emits centered text lines starting at y with 1.4em spacing.
func writeLines(b *strings.Builder, lines []string, x, y, size int, fill, weight string) {
	lineHeight := size * 14 / 10
	for i, line := range lines {
		fmt.Fprintf(b, `<text x="%d" y="%d" font-family="Poppins, sans-serif" font-size="%d" font-weight="%s" fill="%s" text-anchor="middle">%s</text>`,
			x, y+i*lineHeight, size, weight, fill, escape(line))
	}
}

// wrapText breaks text into lines of at most maxChars characters, on word
// boundaries.
func wrapText(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > maxChars {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}

// escape makes text safe for SVG content.
func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
