// Package observability exposes Prometheus metrics for the workout log.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rowing",
		Subsystem: "workouts",
		Name:      "events_total",
		Help:      "Workout log changes by kind (added, deleted, rejected, reloaded).",
	}, []string{"kind"})
	storedWorkouts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "rowing",
		Subsystem: "workouts",
		Name:      "stored",
		Help:      "Number of workouts in the collection.",
	})
	totalMinutes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "rowing",
		Subsystem: "workouts",
		Name:      "total_minutes",
		Help:      "Sum of minutes over the collection.",
	})
)

func init() {
	prometheus.MustRegister(workoutEvents, storedWorkouts, totalMinutes)
}

// RecordWorkoutEvent counts one log change and updates the collection gauges.
func RecordWorkoutEvent(kind string, count, minutes int) {
	workoutEvents.WithLabelValues(kind).Inc()
	SetCollection(count, minutes)
}

// SetCollection sets the collection gauges without counting an event.
func SetCollection(count, minutes int) {
	storedWorkouts.Set(float64(count))
	totalMinutes.Set(float64(minutes))
}
