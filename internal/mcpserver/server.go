// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the workout log as tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/rowing/internal/apperr"
	"github.com/starford/rowing/internal/models"
	"github.com/starford/rowing/internal/workoutlog"
)

const formatURI = "rowing://workout-format"

// Server wraps the MCP server with workout log tools.
type Server struct {
	mcp *server.MCPServer
	log *workoutlog.Log
}

// New creates a new MCP server with all workout tools registered.
func New(log *workoutlog.Log, version string) *Server {
	s := &Server{log: log}

	s.mcp = server.NewMCPServer(
		"Rowing",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_workouts",
		mcp.WithDescription("List every logged workout, newest first, with the total minutes."),
	), s.listWorkouts)

	s.mcp.AddTool(mcp.NewTool("log_workout",
		mcp.WithDescription("Log a rowing workout. Read the format via get_workout_format or the "+
			formatURI+" resource first."),
		mcp.WithString("minutes", mcp.Required(), mcp.Description("Duration in minutes, greater than zero")),
		mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD (defaults to today)")),
		mcp.WithString("type", mcp.Description("Workout type"), mcp.Enum("Erg", "Berg", "Run", "Other")),
		mcp.WithString("seconds", mcp.Description("Extra seconds")),
		mcp.WithString("meters", mcp.Description("Distance in meters")),
		mcp.WithString("watts", mcp.Description("Average watts")),
		mcp.WithString("pace", mcp.Description("Average pace")),
		mcp.WithString("stroke_rate", mcp.Description("Average strokes per minute")),
		mcp.WithString("notes", mcp.Description("Free-form notes")),
	), s.logWorkout)

	s.mcp.AddTool(mcp.NewTool("delete_workout",
		mcp.WithDescription("Delete a workout by id. Unknown ids are a no-op."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Workout id from list_workouts")),
	), s.deleteWorkout)

	s.mcp.AddTool(mcp.NewTool("total_minutes",
		mcp.WithDescription("Sum of minutes over every logged workout."),
	), s.totalMinutes)

	s.mcp.AddTool(mcp.NewTool("get_workout_format",
		mcp.WithDescription("Returns the workout record format and the log_workout rules."),
	), s.getWorkoutFormat)

	s.mcp.AddResource(
		mcp.NewResource(formatURI, "Workout Format",
			mcp.WithResourceDescription("Workout record format and validation rules."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readWorkoutFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listWorkouts(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts := s.log.Workouts()
	out, _ := json.MarshalIndent(map[string]any{
		"workouts":      workouts,
		"total_minutes": models.TotalMinutes(workouts),
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) logWorkout(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	d := s.log.NewDraft()
	if v, ok := args["date"]; ok {
		d.Date = argString(v)
	}
	if v := argString(args["type"]); v != "" {
		d.Type = models.WorkoutType(v)
	}
	d.Minutes = argString(args["minutes"])
	d.Seconds = argString(args["seconds"])
	d.Meters = argString(args["meters"])
	d.Watts = argString(args["watts"])
	d.Pace = argString(args["pace"])
	d.StrokeRate = argString(args["stroke_rate"])
	d.Notes = argString(args["notes"])

	w, err := s.log.Add(d)
	if err != nil {
		if errors.Is(err, apperr.ErrRejected) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("save failed: %v", err)), nil
	}
	out, _ := json.MarshalIndent(w, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) deleteWorkout(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.log.Delete(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) totalMinutes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strconv.Itoa(s.log.TotalMinutes())), nil
}

func (s *Server) getWorkoutFormat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(WorkoutFormatContract), nil
}

func (s *Server) readWorkoutFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formatURI,
			MIMEType: "text/markdown",
			Text:     WorkoutFormatContract,
		},
	}, nil
}

// argString renders a tool argument as draft text. Clients send numbers as
// JSON numbers or strings; both end up as their decimal text.
func argString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
