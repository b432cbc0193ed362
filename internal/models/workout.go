// Package models defines the domain types for the rowing log.
package models

// WorkoutType is the category of a logged session.
type WorkoutType string

// Workout types accepted by the log.
const (
	TypeErg   WorkoutType = "Erg"
	TypeBerg  WorkoutType = "Berg"
	TypeRun   WorkoutType = "Run"
	TypeOther WorkoutType = "Other"
)

// WorkoutTypes lists every accepted type in display order.
var WorkoutTypes = []WorkoutType{TypeErg, TypeBerg, TypeRun, TypeOther}

// Workout is one logged training session.
//
// The JSON field names form the persisted format and must not change: a stored
// collection carries no schema version.
type Workout struct {
	ID         string      `json:"id"`
	Date       string      `json:"date"`
	Type       WorkoutType `json:"type"`
	Minutes    int         `json:"minutes"`
	Seconds    float64     `json:"seconds"`
	Meters     float64     `json:"meters"`
	Split      float64     `json:"split"` // not derived yet, always 0
	Watts      float64     `json:"watts"`
	Pace       float64     `json:"pace"`
	StrokeRate float64     `json:"stroke_rate"`
	Notes      string      `json:"notes"`
}

// TotalMinutes sums the minutes of every workout.
func TotalMinutes(workouts []Workout) int {
	sum := 0
	for _, w := range workouts {
		sum += w.Minutes
	}
	return sum
}
