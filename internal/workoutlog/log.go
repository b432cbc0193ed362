// Package workoutlog owns the in-memory workout collection and mediates
// between form input and the durable store.
package workoutlog

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/rowing/internal/apperr"
	"github.com/starford/rowing/internal/models"
)

// DateLayout is the calendar date format of Workout.Date.
const DateLayout = "2006-01-02"

// Store is the durable side of the log. Load never fails; Save overwrites the
// whole collection.
type Store interface {
	Load() []models.Workout
	Save(workouts []models.Workout) error
}

// Event kinds passed to a Listener.
const (
	EventAdded    = "added"
	EventDeleted  = "deleted"
	EventRejected = "rejected"
	EventReloaded = "reloaded"
)

// Event describes one change to the log.
type Event struct {
	Kind  string
	ID    string // empty for reloaded and rejected
	Count int    // collection size after the change
	Total int    // total minutes after the change
}

// Listener is notified after every change, outside the log's lock. A change
// whose save failed is still reported since it stays in memory.
type Listener func(Event)

// Option configures a Log.
type Option func(*Log)

// WithClock sets the time source used for today's date.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithIDGenerator sets the id source for new workouts.
func WithIDGenerator(newID func() string) Option {
	return func(l *Log) { l.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) { l.logger = logger }
}

// WithListener registers a change listener.
func WithListener(fn Listener) Option {
	return func(l *Log) { l.listeners = append(l.listeners, fn) }
}

// Log holds the workout collection, newest first by insertion.
type Log struct {
	mu       sync.RWMutex
	store    Store
	workouts []models.Workout

	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
	listeners []Listener
}

// New creates a Log and loads the collection from store.
func New(store Store, opts ...Option) *Log {
	l := &Log{
		store:  store,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.workouts = store.Load()
	return l
}

// Today returns the current local date as YYYY-MM-DD.
func (l *Log) Today() string {
	return l.now().Local().Format(DateLayout)
}

// NewDraft returns an empty draft dated today.
func (l *Log) NewDraft() Draft {
	return Draft{Date: l.Today(), Type: models.TypeErg}
}

// Workouts returns a copy of the collection.
func (l *Log) Workouts() []models.Workout {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Workout, len(l.workouts))
	copy(out, l.workouts)
	return out
}

// Len returns the number of workouts.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.workouts)
}

// TotalMinutes returns the sum of minutes over the whole collection.
func (l *Log) TotalMinutes() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return models.TotalMinutes(l.workouts)
}

// Add validates d and prepends the resulting workout.
//
// A draft that fails validation returns an error matching apperr.ErrRejected
// and leaves the log and the store untouched. When saving fails the workout
// stays in memory, listeners are notified and the save error is returned.
func (l *Log) Add(d Draft) (models.Workout, error) {
	if d.Type == "" {
		d.Type = models.TypeErg
	}
	if err := d.Validate(); err != nil {
		l.logger.Debug("workout rejected", slog.String("reason", err.Error()))
		l.notify(Event{Kind: EventRejected, Count: l.Len(), Total: l.TotalMinutes()})
		return models.Workout{}, fmt.Errorf("%w: %v", apperr.ErrRejected, err)
	}

	l.mu.Lock()
	w := d.record(l.newID())
	next := make([]models.Workout, 0, len(l.workouts)+1)
	next = append(next, w)
	next = append(next, l.workouts...)
	l.workouts = next
	err := l.store.Save(next)
	ev := Event{Kind: EventAdded, ID: w.ID, Count: len(next), Total: models.TotalMinutes(next)}
	l.mu.Unlock()

	if err != nil {
		l.logger.Error("save after add failed", slog.String("id", w.ID), slog.String("error", err.Error()))
		l.notify(ev)
		return w, fmt.Errorf("workoutlog: add: %w", err)
	}
	l.logger.Info("workout added", slog.String("id", w.ID), slog.String("date", w.Date),
		slog.String("type", string(w.Type)), slog.Int("minutes", w.Minutes))
	l.notify(ev)
	return w, nil
}

// Delete removes the workout with the given id, if any, and persists the
// resulting collection either way.
func (l *Log) Delete(id string) error {
	l.mu.Lock()
	next := make([]models.Workout, 0, len(l.workouts))
	for _, w := range l.workouts {
		if w.ID != id {
			next = append(next, w)
		}
	}
	l.workouts = next
	err := l.store.Save(next)
	ev := Event{Kind: EventDeleted, ID: id, Count: len(next), Total: models.TotalMinutes(next)}
	l.mu.Unlock()

	if err != nil {
		l.logger.Error("save after delete failed", slog.String("id", id), slog.String("error", err.Error()))
		l.notify(ev)
		return fmt.Errorf("workoutlog: delete: %w", err)
	}
	l.logger.Info("workout deleted", slog.String("id", id))
	l.notify(ev)
	return nil
}

// Get returns the workout with the given id.
func (l *Log) Get(id string) (models.Workout, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, w := range l.workouts {
		if w.ID == id {
			return w, nil
		}
	}
	return models.Workout{}, apperr.ErrNotFound
}

// Reload replaces the in-memory collection with the stored one. The load
// happens under the lock so a concurrent Add cannot be overwritten by an
// older snapshot.
func (l *Log) Reload() {
	l.mu.Lock()
	loaded := l.store.Load()
	l.workouts = loaded
	ev := Event{Kind: EventReloaded, Count: len(loaded), Total: models.TotalMinutes(loaded)}
	l.mu.Unlock()
	l.logger.Info("workouts reloaded", slog.Int("count", ev.Count))
	l.notify(ev)
}

func (l *Log) notify(ev Event) {
	for _, fn := range l.listeners {
		fn(ev)
	}
}
