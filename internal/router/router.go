// Package router sets up all HTTP routes and middleware chains for the
// studio server. Generation and capture endpoints sit behind a rate
// limiter because each request fans out to paid provider APIs.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sustudio/internal/handlers"
	"sustudio/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(studio *handlers.Studio, brand *handlers.Brand, calendar *handlers.Calendar, history *handlers.History, usage *handlers.Usage) chi.Router {
	r := chi.NewRouter()

	// Global middleware applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Generation and capture endpoints, rate limited per client.
		r.Group(func(r chi.Router) {
			limiter := middleware.NewRateLimiter(30, time.Minute)
			r.Use(limiter.Middleware)

			r.Post("/generate", studio.Generate)
			r.Route("/capture", func(r chi.Router) {
				r.Post("/template", studio.CaptureTemplate)
				r.Post("/carousel", studio.CaptureCarousel)
				r.Post("/video", studio.CaptureVideo)
				r.Post("/voice", studio.CaptureVoice)
			})
			r.Post("/brand/analyze", brand.Analyze)
			r.Post("/calendar/plan", calendar.Plan)
			r.Post("/calendar/{date}/create", calendar.Create)
		})

		// Session state
		r.Get("/state", studio.State)
		r.Post("/discard", studio.Discard)
		r.Get("/voices", studio.Voices)

		// Brand profile
		r.Get("/brand", brand.Get)
		r.Put("/brand", brand.Save)

		// Calendar
		r.Get("/calendar", calendar.List)
		r.Post("/scheduled/{id}/posted", calendar.MarkPosted)
		r.Delete("/scheduled/{id}", calendar.Delete)

		// History
		r.Route("/history", func(r chi.Router) {
			r.Get("/", history.List)
			r.Post("/{id}/favorite", history.ToggleFavorite)
			r.Delete("/{id}", history.Delete)
		})

		// Usage counters
		r.Get("/usage", usage.Get)
		r.Post("/usage/reset", usage.Reset)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
