package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/rowing/internal/apperr"
	"github.com/starford/rowing/internal/models"
	"github.com/starford/rowing/internal/workoutlog"
)

// Handler holds JSON API route handlers.
type Handler struct {
	log *workoutlog.Log
}

// NewHandler creates a new Handler.
func NewHandler(log *workoutlog.Log) *Handler {
	return &Handler{log: log}
}

// ListWorkouts handles GET /api/workouts.
//
//	@Summary	List every workout, newest first
//	@Tags		workouts
//	@Produce	json
//	@Success	200	{object}	WorkoutListResponse
//	@Router		/workouts [get]
func (h *Handler) ListWorkouts(w http.ResponseWriter, _ *http.Request) {
	workouts := h.log.Workouts()
	writeJSON(w, http.StatusOK, WorkoutListResponse{
		Workouts:     workouts,
		TotalMinutes: models.TotalMinutes(workouts),
	})
}

// GetWorkout handles GET /api/workouts/{id}.
//
//	@Summary	Get a single workout
//	@Tags		workouts
//	@Produce	json
//	@Param		id	path		string	true	"Workout id"
//	@Success	200	{object}	models.Workout
//	@Failure	404	{object}	errResponse
//	@Router		/workouts/{id} [get]
func (h *Handler) GetWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wo, err := h.log.Get(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, wo)
}

// CreateWorkout handles POST /api/workouts.
//
//	@Summary	Log a workout
//	@Tags		workouts
//	@Accept		json
//	@Produce	json
//	@Param		body	body		CreateWorkoutRequest	true	"Workout draft"
//	@Success	201		{object}	models.Workout
//	@Failure	400		{object}	errResponse
//	@Failure	422		{object}	errResponse
//	@Router		/workouts [post]
func (h *Handler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	wo, err := h.log.Add(req.Draft())
	if err != nil {
		if errors.Is(err, apperr.ErrRejected) {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
			return
		}
		slog.Error("create workout failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, wo)
}

// DeleteWorkout handles DELETE /api/workouts/{id}. Unknown ids succeed.
//
//	@Summary	Delete a workout
//	@Tags		workouts
//	@Param		id	path	string	true	"Workout id"
//	@Success	204	"Workout deleted"
//	@Router		/workouts/{id} [delete]
func (h *Handler) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.log.Delete(id); err != nil {
		slog.Error("delete workout failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/summary.
//
//	@Summary	Collection size and total minutes
//	@Tags		workouts
//	@Produce	json
//	@Success	200	{object}	SummaryResponse
//	@Router		/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, _ *http.Request) {
	workouts := h.log.Workouts()
	writeJSON(w, http.StatusOK, SummaryResponse{
		Count:        len(workouts),
		TotalMinutes: models.TotalMinutes(workouts),
	})
}
