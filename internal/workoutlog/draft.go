package workoutlog

import (
	"errors"
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/rowing/internal/models"
)

// Draft holds the raw form input for one workout. Numeric fields stay strings
// until Add coerces them.
type Draft struct {
	Date       string             `json:"date"`
	Type       models.WorkoutType `json:"type"`
	Minutes    string             `json:"minutes"`
	Seconds    string             `json:"seconds"`
	Meters     string             `json:"meters"`
	Watts      string             `json:"watts"`
	Pace       string             `json:"pace"`
	StrokeRate string             `json:"stroke_rate"`
	Notes      string             `json:"notes"`
}

var (
	errMinutes        = errors.New("must be a number greater than zero")
	errMinutesTooLong = errors.New("is too large")
)

// Validate checks the fields an accepted workout depends on.
func (d *Draft) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.Date, validation.Required),
		validation.Field(&d.Type, validation.In(
			models.TypeErg, models.TypeBerg, models.TypeRun, models.TypeOther,
		)),
		validation.Field(&d.Minutes, validation.By(positiveNumber)),
	)
}

// record builds the workout for a validated draft.
func (d *Draft) record(id string) models.Workout {
	m, _ := parseNumber(d.Minutes)
	return models.Workout{
		ID:         id,
		Date:       d.Date,
		Type:       d.Type,
		Minutes:    int(math.Round(m)),
		Seconds:    numberOrZero(d.Seconds),
		Meters:     numberOrZero(d.Meters),
		Split:      0, // TODO: derive from meters and time with the Concept2 pace formula
		Watts:      numberOrZero(d.Watts),
		Pace:       numberOrZero(d.Pace),
		StrokeRate: numberOrZero(d.StrokeRate),
		Notes:      d.Notes,
	}
}

func positiveNumber(value interface{}) error {
	s, _ := value.(string)
	n, ok := parseNumber(s)
	if !ok || n <= 0 {
		return errMinutes
	}
	// float64(math.MaxInt) is one past the largest int, so it overflows too.
	if math.Round(n) >= float64(math.MaxInt) {
		return errMinutesTooLong
	}
	return nil
}

// parseNumber parses s as a finite decimal number, ignoring surrounding space.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func numberOrZero(s string) float64 {
	n, _ := parseNumber(s)
	return n
}
