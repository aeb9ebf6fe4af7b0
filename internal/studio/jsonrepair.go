// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import "strings"

// repairJSON normalizes a model answer into something json.Unmarshal can
// take: markdown code fences are stripped and raw control characters inside
// the payload are escaped or dropped. Models without a JSON response mode
// routinely emit both.
func repairJSON(text string) string {
	result := stripCodeFence(text)
	return escapeControlChars(result)
}

// stripCodeFence extracts the payload from a ```json ... ``` block when one
// is present; otherwise the text passes through unchanged.
func stripCodeFence(text string) string {
	start := strings.Index(text, "```json")
	if start < 0 {
		start = strings.Index(text, "```")
		if start < 0 {
			return text
		}
	}
	rest := text[start:]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		return text
	}
	rest = rest[nl+1:]
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// escapeControlChars escapes literal newlines, carriage returns and tabs
// inside string values and drops all other control characters there. Raw
// control bytes inside a JSON string are invalid; outside strings they are
// plain whitespace and pass through.
func escapeControlChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inString := false
	escaped := false
	for _, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
				b.WriteRune(r)
			case r == '\\':
				escaped = true
				b.WriteRune(r)
			case r == '"':
				inString = false
				b.WriteRune(r)
			case r == '\n':
				b.WriteString(`\n`)
			case r == '\r':
				b.WriteString(`\r`)
			case r == '\t':
				b.WriteString(`\t`)
			case r < 0x20 || r == 0x7F:
				// dropped
			default:
				b.WriteRune(r)
			}
			continue
		}

		if r == '"' {
			inString = true
		}
		if r != '\n' && r != '\r' && r != '\t' && (r < 0x20 || r == 0x7F) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// extractArray returns the substring spanning the first '[' through the
// last ']', for answers that wrap a JSON array in prose.
func extractArray(text string) string {
	start := strings.IndexByte(text, '[')
	end := strings.LastIndexByte(text, ']')
	if start < 0 || end <= start {
		return text
	}
	return text[start : end+1]
}

// extractObject is extractArray for a top-level JSON object.
func extractObject(text string) string {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return text
	}
	return text[start : end+1]
}
