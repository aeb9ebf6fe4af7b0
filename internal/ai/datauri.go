package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

// encodeDataURI wraps raw bytes into a base64 data URI for storage and
// download without a separate asset host.
func encodeDataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// fetchDataURI downloads a provider-hosted result URL and converts it into a
// data URI. Used by the image backends that answer with an output URL
// instead of inline bytes.
func fetchDataURI(ctx context.Context, client *http.Client, url, fallbackType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch image request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch image status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch image read: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = fallbackType
	}
	return encodeDataURI(contentType, data), nil
}
