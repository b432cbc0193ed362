package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordWorkoutEvent(t *testing.T) {
	before := testutil.ToFloat64(workoutEvents.WithLabelValues("added"))
	RecordWorkoutEvent("added", 3, 90)

	if got := testutil.ToFloat64(workoutEvents.WithLabelValues("added")); got != before+1 {
		t.Errorf("added counter = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(storedWorkouts); got != 3 {
		t.Errorf("stored gauge = %v, want 3", got)
	}
	if got := testutil.ToFloat64(totalMinutes); got != 90 {
		t.Errorf("total minutes gauge = %v, want 90", got)
	}
}

func TestSetCollection(t *testing.T) {
	SetCollection(0, 0)
	if got := testutil.ToFloat64(storedWorkouts); got != 0 {
		t.Errorf("stored gauge = %v, want 0", got)
	}
}
