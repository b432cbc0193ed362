package workoutstore

import (
	"errors"
	"reflect"
	"testing"

	"github.com/starford/rowing/internal/apperr"
	"github.com/starford/rowing/internal/models"
	"github.com/starford/rowing/internal/storage"
)

func sampleWorkouts() []models.Workout {
	return []models.Workout{
		{ID: "3", Date: "2024-05-03", Type: models.TypeRun, Minutes: 40, Seconds: 12, Meters: 8000, Notes: "easy"},
		{ID: "2", Date: "2024-05-02", Type: models.TypeErg, Minutes: 30, Watts: 210.5, Pace: 118, StrokeRate: 24},
		{ID: "1", Date: "2024-05-01", Type: models.TypeBerg, Minutes: 20},
	}
}

func TestRoundTrip(t *testing.T) {
	s := New(storage.NewMemory(), "", nil)
	want := sampleWorkouts()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := s.Load()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestRoundTrip_FS(t *testing.T) {
	fs, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := New(fs, DefaultKey, nil)
	want := sampleWorkouts()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := New(fs, DefaultKey, nil).Load(); !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoad_FailSoft(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"not json":   "{oops",
		"object":     `{"id":"a"}`,
		"null":       "null",
		"wrong type": `[{"minutes":"thirty"}]`,
		"number":     "42",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			kv := storage.NewMemory()
			_ = kv.Set(DefaultKey, []byte(raw))
			got := New(kv, "", nil).Load()
			if got == nil || len(got) != 0 {
				t.Errorf("Load = %#v, want empty non-nil", got)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	got := New(storage.NewMemory(), "", nil).Load()
	if got == nil || len(got) != 0 {
		t.Errorf("Load = %#v, want empty", got)
	}
}

func TestNoStorage(t *testing.T) {
	s := New(nil, "", nil)
	if got := s.Load(); len(got) != 0 {
		t.Errorf("Load = %v, want empty", got)
	}
	if err := s.Save(sampleWorkouts()); !errors.Is(err, apperr.ErrNoStorage) {
		t.Errorf("Save err = %v, want ErrNoStorage", err)
	}
}

func TestSave_EmptyEncodesAsArray(t *testing.T) {
	kv := storage.NewMemory()
	s := New(kv, "", nil)
	if err := s.Save(nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, _ := kv.Get(DefaultKey)
	if string(raw) != "[]" {
		t.Errorf("stored %q, want []", raw)
	}
}

func TestLoad_BrowserExport(t *testing.T) {
	raw := `[{"id":"1715000000000-9f3a","date":"2024-05-01","type":"Erg","minutes":30,"seconds":0,` +
		`"meters":7500,"split":0,"watts":0,"pace":0,"stroke_rate":22,"notes":""}]`
	kv := storage.NewMemory()
	_ = kv.Set(DefaultKey, []byte(raw))
	got := New(kv, "", nil).Load()
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Minutes != 30 || got[0].Meters != 7500 || got[0].StrokeRate != 22 {
		t.Errorf("decoded %+v", got[0])
	}
}

type failingKV struct{ *storage.Memory }

func (failingKV) Set(string, []byte) error { return errors.New("quota exceeded") }

func TestSave_PropagatesWriteError(t *testing.T) {
	s := New(failingKV{storage.NewMemory()}, "", nil)
	if err := s.Save(sampleWorkouts()); err == nil {
		t.Fatal("expected error from failing backend")
	}
}
