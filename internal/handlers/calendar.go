// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sustudio/internal/models"
)

// CalendarService is the scheduling orchestrator behind the calendar API.
type CalendarService interface {
	Range(ctx context.Context, from, to string) ([]models.ScheduledPost, error)
	Plan(ctx context.Context, brand *models.BrandProfile, weekStart string) ([]models.ScheduledPost, error)
	CreateContent(ctx context.Context, brand *models.BrandProfile, date, topic string) (*models.ScheduledPost, error)
	MarkPosted(ctx context.Context, id uuid.UUID) (*models.ScheduledPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Calendar groups the scheduling HTTP handlers.
type Calendar struct {
	scheduler CalendarService
	brands    BrandStore
}

// NewCalendar creates the calendar handler group.
func NewCalendar(scheduler CalendarService, brands BrandStore) *Calendar {
	return &Calendar{scheduler: scheduler, brands: brands}
}

// parseDate validates a YYYY-MM-DD parameter.
func parseDate(s string) (string, bool) {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", false
	}
	return s, true
}

// List returns the scheduled posts between ?from= and ?to= inclusive.
func (h *Calendar) List(w http.ResponseWriter, r *http.Request) {
	from, okFrom := parseDate(r.URL.Query().Get("from"))
	to, okTo := parseDate(r.URL.Query().Get("to"))
	if !okFrom || !okTo {
		writeError(w, http.StatusBadRequest, "from and to must be YYYY-MM-DD dates.")
		return
	}

	posts, err := h.scheduler.Range(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load calendar.")
		return
	}
	if posts == nil {
		posts = []models.ScheduledPost{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// planRequest is the body of POST /api/calendar/plan.
type planRequest struct {
	WeekStart string `json:"weekStart"`
}

// Plan fills the coming week's empty days with suggested topics.
func (h *Calendar) Plan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	weekStart, ok := parseDate(req.WeekStart)
	if !ok {
		writeError(w, http.StatusBadRequest, "weekStart must be a YYYY-MM-DD date.")
		return
	}

	brand, err := h.brands.Get(r.Context())
	if err != nil || brand == nil {
		writeError(w, http.StatusConflict, "Set up your brand profile first.")
		return
	}

	planned, err := h.scheduler.Plan(r.Context(), brand, weekStart)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, planned)
}

// createRequest is the body of POST /api/calendar/{date}/create.
type createRequest struct {
	Topic string `json:"topic"`
}

// Create generates and captures a day's content, promoting it to ready.
func (h *Calendar) Create(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDate(chi.URLParam(r, "date"))
	if !ok {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD.")
		return
	}
	var req createRequest
	if err := readOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	brand, err := h.brands.Get(r.Context())
	if err != nil || brand == nil {
		writeError(w, http.StatusConflict, "Set up your brand profile first.")
		return
	}

	post, err := h.scheduler.CreateContent(r.Context(), brand, date, req.Topic)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// MarkPosted transitions a scheduled post to posted. Safe to repeat.
func (h *Calendar) MarkPosted(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post ID.")
		return
	}

	post, err := h.scheduler.MarkPosted(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete removes a scheduled post, returning its date to empty.
func (h *Calendar) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post ID.")
		return
	}
	if err := h.scheduler.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not delete post.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
