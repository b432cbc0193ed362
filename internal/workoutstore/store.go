// Package workoutstore persists the workout collection as one JSON value
// under a fixed key of a storage.Provider.
package workoutstore

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/starford/rowing/internal/apperr"
	"github.com/starford/rowing/internal/models"
	"github.com/starford/rowing/internal/storage"
)

// DefaultKey is the namespace key the collection is stored under.
const DefaultKey = "rowingApp.workouts.v1"

// Store adapts a key-value provider to whole-collection load/save.
type Store struct {
	kv     storage.Provider
	key    string
	logger *slog.Logger
}

// New creates a Store. An empty key falls back to DefaultKey; a nil logger
// falls back to slog.Default. kv may be nil, in which case Load always
// returns an empty collection and Save fails.
func New(kv storage.Provider, key string, logger *slog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, key: key, logger: logger}
}

// Key returns the namespace key.
func (s *Store) Key() string {
	return s.key
}

// Load returns the stored collection. A missing, empty or unparseable value
// yields an empty collection; errors are never surfaced.
func (s *Store) Load() []models.Workout {
	if s.kv == nil {
		return []models.Workout{}
	}
	raw, err := s.kv.Get(s.key)
	if err != nil {
		if !storage.IsNotExist(err) {
			s.logger.Debug("workoutstore: read failed, using empty collection",
				slog.String("key", s.key), slog.String("error", err.Error()))
		}
		return []models.Workout{}
	}
	if len(raw) == 0 {
		return []models.Workout{}
	}
	var out []models.Workout
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.Debug("workoutstore: stored value is not a workout list, using empty collection",
			slog.String("key", s.key), slog.String("error", err.Error()))
		return []models.Workout{}
	}
	if out == nil {
		out = []models.Workout{}
	}
	return out
}

// Save overwrites the stored value with the whole collection.
func (s *Store) Save(workouts []models.Workout) error {
	if s.kv == nil {
		return fmt.Errorf("workoutstore: save: %w", apperr.ErrNoStorage)
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}
	data, err := json.Marshal(workouts)
	if err != nil {
		return fmt.Errorf("workoutstore: encode: %w", err)
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("workoutstore: save: %w", err)
	}
	return nil
}
