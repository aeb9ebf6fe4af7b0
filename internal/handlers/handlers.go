// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON API handlers for the studio server.
// Handlers are grouped by concern (studio, brand, calendar, history, usage)
// and receive their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// maxBodyBytes caps request bodies. Vision uploads carry base64 image
// payloads, so the cap is generous.
const maxBodyBytes = 16 << 20

// errorResponse is the JSON shape of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError replies with a JSON error message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// readJSON decodes the request body into dst, enforcing the body cap and
// rejecting unknown fields so typos surface as 400s instead of silence.
func readJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// A second value means trailing garbage.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// readOptionalJSON decodes a request body that callers may omit entirely.
// An absent or empty body leaves dst at its zero value; a body that is
// present but malformed is still an error.
func readOptionalJSON(r *http.Request, dst any) error {
	if err := readJSON(r, dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
