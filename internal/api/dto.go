package api

import (
	"bytes"
	"encoding/json"

	"github.com/starford/rowing/internal/models"
	"github.com/starford/rowing/internal/workoutlog"
)

// FlexString accepts a JSON string, number or null and keeps its text.
// Numeric draft fields are coerced later, the same way form input is.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	default:
		*f = FlexString(data)
	}
	return nil
}

// CreateWorkoutRequest is the request body for logging a workout.
type CreateWorkoutRequest struct {
	Date       string     `json:"date" example:"2024-05-01"`
	Type       string     `json:"type" example:"Erg"`
	Minutes    FlexString `json:"minutes" example:"30"`
	Seconds    FlexString `json:"seconds" example:"15"`
	Meters     FlexString `json:"meters" example:"7500"`
	Watts      FlexString `json:"watts"`
	Pace       FlexString `json:"pace"`
	StrokeRate FlexString `json:"stroke_rate"`
	Notes      string     `json:"notes"`
}

// Draft converts the request into a log draft.
func (r CreateWorkoutRequest) Draft() workoutlog.Draft {
	return workoutlog.Draft{
		Date:       r.Date,
		Type:       models.WorkoutType(r.Type),
		Minutes:    string(r.Minutes),
		Seconds:    string(r.Seconds),
		Meters:     string(r.Meters),
		Watts:      string(r.Watts),
		Pace:       string(r.Pace),
		StrokeRate: string(r.StrokeRate),
		Notes:      r.Notes,
	}
}

// WorkoutListResponse wraps the whole collection.
type WorkoutListResponse struct {
	Workouts     []models.Workout `json:"workouts"`
	TotalMinutes int              `json:"total_minutes" example:"60"`
}

// SummaryResponse carries the derived display values.
type SummaryResponse struct {
	Count        int `json:"count" example:"3"`
	TotalMinutes int `json:"total_minutes" example:"60"`
}
