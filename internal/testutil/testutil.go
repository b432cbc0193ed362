// Package testutil provides shared test helpers for stores and backends.
package testutil

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/starford/rowing/internal/models"
	"github.com/starford/rowing/internal/storage"
)

// TestSQLite creates a temporary SQLite backend that is closed on cleanup.
func TestSQLite(t *testing.T) *storage.SQLite {
	t.Helper()
	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "rowing-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestFS creates a temporary directory with an FS backend.
func TestFS(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, fs
}

// FakeStore is an in-memory workout store that counts saves.
type FakeStore struct {
	mu       sync.Mutex
	Workouts []models.Workout
	Saves    int
	Err      error // returned by Save when set
}

// Load returns a copy of the stored workouts.
func (f *FakeStore) Load() []models.Workout {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Workout, len(f.Workouts))
	copy(out, f.Workouts)
	return out
}

// Save records the call and stores a copy unless Err is set.
func (f *FakeStore) Save(workouts []models.Workout) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saves++
	if f.Err != nil {
		return f.Err
	}
	f.Workouts = append([]models.Workout(nil), workouts...)
	return nil
}

// SaveCount returns the number of Save calls so far.
func (f *FakeStore) SaveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Saves
}
