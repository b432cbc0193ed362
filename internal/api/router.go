package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/rowing/internal/workoutlog"
)

// maxBodyBytes bounds form and JSON request bodies.
const maxBodyBytes = 1 << 20

// NewRouter creates a chi router with all JSON API routes, meant to be
// mounted under /api. sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(log *workoutlog.Log, sseHandler http.Handler) chi.Router {
	h := NewHandler(log)

	r := chi.NewRouter()
	r.Use(LimitBody(maxBodyBytes))

	r.Get("/workouts", h.ListWorkouts)
	r.Post("/workouts", h.CreateWorkout)
	r.Get("/workouts/{id}", h.GetWorkout)
	r.Delete("/workouts/{id}", h.DeleteWorkout)
	r.Get("/summary", h.Summary)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}

// MountPages registers the HTML screens on r at the root.
func MountPages(r chi.Router, log *workoutlog.Log, repoURL string) {
	r.Group(func(g chi.Router) {
		g.Use(LimitBody(maxBodyBytes))
		NewPages(log, repoURL).Routes(g)
	})
}
