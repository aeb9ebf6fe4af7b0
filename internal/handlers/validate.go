package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for request fields.
const (
	maxTopicLen    = 300
	maxNameLen     = 120
	maxURLLen      = 500
	maxFreeTextLen = 2_000
	maxDataURILen  = maxBodyBytes
)

// validateTopic checks a generation topic and returns the first error found.
func validateTopic(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "Topic is required."
	}
	if utf8.RuneCountInString(topic) > maxTopicLen {
		return "Topic is too long (max 300 characters)."
	}
	return ""
}

// validateBrand checks brand profile inputs and returns the first error found.
func validateBrand(name, website, description string) string {
	if strings.TrimSpace(name) == "" {
		return "Brand name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Brand name is too long (max 120 characters)."
	}
	if utf8.RuneCountInString(website) > maxURLLen {
		return "Website URL is too long (max 500 characters)."
	}
	if utf8.RuneCountInString(description) > maxFreeTextLen {
		return "Description is too long (max 2,000 characters)."
	}
	return ""
}

// validateDataURI checks an uploaded image payload.
func validateDataURI(uri string) string {
	if uri == "" {
		return "Image payload is required."
	}
	if !strings.HasPrefix(uri, "data:") {
		return "Image must be a data URI."
	}
	if len(uri) > maxDataURILen {
		return "Image is too large."
	}
	return ""
}
