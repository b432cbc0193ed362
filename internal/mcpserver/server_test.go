package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/rowing/internal/models"
	"github.com/starford/rowing/internal/testutil"
	"github.com/starford/rowing/internal/workoutlog"
)

func testServer(t *testing.T, seed ...models.Workout) (*Server, *testutil.FakeStore) {
	t.Helper()
	store := &testutil.FakeStore{Workouts: seed}
	log := workoutlog.New(store, workoutlog.WithClock(func() time.Time {
		return time.Date(2024, time.May, 7, 8, 0, 0, 0, time.Local)
	}))
	return New(log, "test"), store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so handlers are invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_workouts":
		result, err = srv.listWorkouts(ctx, req)
	case "log_workout":
		result, err = srv.logWorkout(ctx, req)
	case "delete_workout":
		result, err = srv.deleteWorkout(ctx, req)
	case "total_minutes":
		result, err = srv.totalMinutes(ctx, req)
	case "get_workout_format":
		result, err = srv.getWorkoutFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestLogWorkout(t *testing.T) {
	srv, store := testServer(t)

	r := callTool(t, srv, "log_workout", map[string]interface{}{
		"minutes": 30.0,
		"meters":  "7500",
		"type":    "Berg",
		"watts":   "n/a",
	})
	if r.IsError {
		t.Fatalf("log_workout failed: %s", resultText(r))
	}
	var w models.Workout
	if err := json.Unmarshal([]byte(resultText(r)), &w); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if w.Date != "2024-05-07" {
		t.Errorf("date = %q, want today", w.Date)
	}
	if w.Minutes != 30 || w.Meters != 7500 || w.Watts != 0 || w.Type != models.TypeBerg {
		t.Errorf("workout = %+v", w)
	}
	if store.SaveCount() != 1 {
		t.Errorf("saves = %d, want 1", store.SaveCount())
	}
}

func TestLogWorkout_Rejected(t *testing.T) {
	srv, store := testServer(t)
	for _, args := range []map[string]interface{}{
		{"minutes": "0"},
		{"minutes": "abc"},
		{"minutes": "30", "date": ""},
	} {
		r := callTool(t, srv, "log_workout", args)
		if !r.IsError {
			t.Errorf("expected tool error for %v", args)
		}
	}
	if store.SaveCount() != 0 {
		t.Errorf("saves = %d, want 0", store.SaveCount())
	}
}

func TestListAndTotal(t *testing.T) {
	srv, _ := testServer(t,
		models.Workout{ID: "a", Minutes: 30},
		models.Workout{ID: "b", Minutes: 20},
		models.Workout{ID: "c", Minutes: 10},
	)
	if text := resultText(callTool(t, srv, "total_minutes", nil)); text != "60" {
		t.Errorf("total_minutes = %q, want 60", text)
	}
	text := resultText(callTool(t, srv, "list_workouts", nil))
	if !strings.Contains(text, `"total_minutes": 60`) || !strings.Contains(text, `"id": "b"`) {
		t.Errorf("list_workouts = %s", text)
	}
}

func TestDeleteWorkout(t *testing.T) {
	srv, store := testServer(t, models.Workout{ID: "a"}, models.Workout{ID: "b"})
	r := callTool(t, srv, "delete_workout", map[string]interface{}{"id": "a"})
	if text := resultText(r); text != "deleted: a" {
		t.Errorf("delete result = %q", text)
	}
	if got := store.Load(); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("stored = %+v", got)
	}

	r = callTool(t, srv, "delete_workout", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error without id")
	}
}

func TestGetWorkoutFormat(t *testing.T) {
	srv, _ := testServer(t)
	text := resultText(callTool(t, srv, "get_workout_format", nil))
	if !strings.Contains(text, "stroke_rate") {
		t.Error("format contract missing stroke_rate")
	}
}
