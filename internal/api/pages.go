package api

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/rowing/internal/apperr"
	"github.com/starford/rowing/internal/models"
	"github.com/starford/rowing/internal/workoutlog"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFuncs = template.FuncMap{
	"duration": func(minutes int, seconds float64) string {
		return fmt.Sprintf("%d:%02d", minutes, int(seconds))
	},
	"number": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
}

var pageTemplates = template.Must(template.New("pages").Funcs(pageFuncs).ParseFS(templateFS, "templates/*.html"))

// Pages serves the server-rendered landing and workout log screens.
type Pages struct {
	log     *workoutlog.Log
	repoURL string
}

// NewPages creates the page handlers. repoURL is the external source link on
// the landing page.
func NewPages(log *workoutlog.Log, repoURL string) *Pages {
	return &Pages{log: log, repoURL: repoURL}
}

// Routes registers the page routes on r.
func (p *Pages) Routes(r chi.Router) {
	r.Get("/", p.Landing)
	r.Get("/workouts", p.Workouts)
	r.Post("/workouts", p.AddWorkout)
	r.Post("/workouts/{id}/delete", p.DeleteWorkout)
}

type landingData struct {
	RepoURL string
}

type workoutsData struct {
	Draft        workoutlog.Draft
	Types        []models.WorkoutType
	Workouts     []models.Workout
	TotalMinutes int
}

// Landing handles GET /. It reads nothing from the workout log.
func (p *Pages) Landing(w http.ResponseWriter, _ *http.Request) {
	render(w, http.StatusOK, "landing.html", landingData{RepoURL: p.repoURL})
}

// Workouts handles GET /workouts with a fresh draft.
func (p *Pages) Workouts(w http.ResponseWriter, _ *http.Request) {
	p.renderLog(w, http.StatusOK, p.log.NewDraft())
}

// AddWorkout handles POST /workouts.
//
// A rejected draft re-renders the page with the submitted values and no
// message, exactly like a no-op. Success redirects to a fresh form.
func (p *Pages) AddWorkout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	d := workoutlog.Draft{
		Date:       r.PostFormValue("date"),
		Type:       models.WorkoutType(r.PostFormValue("type")),
		Minutes:    r.PostFormValue("minutes"),
		Seconds:    r.PostFormValue("seconds"),
		Meters:     r.PostFormValue("meters"),
		Watts:      r.PostFormValue("watts"),
		Pace:       r.PostFormValue("pace"),
		StrokeRate: r.PostFormValue("stroke_rate"),
		Notes:      r.PostFormValue("notes"),
	}
	if _, err := p.log.Add(d); err != nil {
		if errors.Is(err, apperr.ErrRejected) {
			p.renderLog(w, http.StatusOK, d)
			return
		}
		slog.Error("add workout failed", slog.String("error", err.Error()))
		http.Error(w, "failed to save workout", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/workouts", http.StatusSeeOther)
}

// DeleteWorkout handles POST /workouts/{id}/delete.
func (p *Pages) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := p.log.Delete(id); err != nil {
		slog.Error("delete workout failed", slog.String("id", id), slog.String("error", err.Error()))
		http.Error(w, "failed to save workouts", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/workouts", http.StatusSeeOther)
}

func (p *Pages) renderLog(w http.ResponseWriter, status int, d workoutlog.Draft) {
	workouts := p.log.Workouts()
	render(w, status, "workouts.html", workoutsData{
		Draft:        d,
		Types:        models.WorkoutTypes,
		Workouts:     workouts,
		TotalMinutes: models.TotalMinutes(workouts),
	})
}

func render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("render failed", slog.String("template", name), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
