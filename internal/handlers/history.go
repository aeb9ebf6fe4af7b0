// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sustudio/internal/models"
)

// defaultHistoryLimit bounds the history listing when ?limit= is absent.
const defaultHistoryLimit = 50

// HistoryStore persists generation history records.
type HistoryStore interface {
	List(ctx context.Context, limit int) ([]models.HistoryItem, error)
	ToggleFavorite(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// History groups the generation history HTTP handlers.
type History struct {
	history HistoryStore
}

// NewHistory creates the history handler group.
func NewHistory(history HistoryStore) *History {
	return &History{history: history}
}

// List returns the newest history records.
func (h *History) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	items, err := h.history.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load history.")
		return
	}
	if items == nil {
		items = []models.HistoryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// ToggleFavorite flips the favorite flag of a record.
func (h *History) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid history ID.")
		return
	}
	if err := h.history.ToggleFavorite(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a history record.
func (h *History) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid history ID.")
		return
	}
	if err := h.history.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not delete record.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
