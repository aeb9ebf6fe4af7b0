// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"time"

	"sustudio/internal/models"
)

// UsageStore reads and resets the per-day usage counters.
type UsageStore interface {
	Get(ctx context.Context, date string) (*models.UsageCounters, error)
	Reset(ctx context.Context, date string) error
}

// Usage groups the API usage HTTP handlers.
type Usage struct {
	usage UsageStore
	now   func() time.Time
}

// NewUsage creates the usage handler group.
func NewUsage(usage UsageStore) *Usage {
	return &Usage{usage: usage, now: time.Now}
}

func (h *Usage) today() string {
	return h.now().Format("2006-01-02")
}

// Get returns today's counters. A fresh day reads as all zeros.
func (h *Usage) Get(w http.ResponseWriter, r *http.Request) {
	counters, err := h.usage.Get(r.Context(), h.today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load usage counters.")
		return
	}
	writeJSON(w, http.StatusOK, counters)
}

// Reset zeroes today's counters.
func (h *Usage) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.usage.Reset(r.Context(), h.today()); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not reset usage counters.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
