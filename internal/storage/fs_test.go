package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempFS(t *testing.T) *FS {
	t.Helper()
	fs, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestFS_SetAndGet(t *testing.T) {
	s := tempFS(t)
	value := []byte(`[{"id":"a"}]`)
	if err := s.Set("rowingApp.workouts.v1", value); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get("rowingApp.workouts.v1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("value mismatch: got %q", got)
	}
}

func TestFS_GetMissing(t *testing.T) {
	s := tempFS(t)
	_, err := s.Get("nope")
	if !IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestFS_InvalidKeysRejected(t *testing.T) {
	s := tempFS(t)
	cases := []string{"", ".", "..", "../outside", "a/b", `a\b`, tmpPrefix + "x"}
	for _, k := range cases {
		if _, err := s.Get(k); err == nil {
			t.Errorf("expected error for get %q", k)
		}
		if err := s.Set(k, []byte("x")); err == nil {
			t.Errorf("expected error for set %q", k)
		}
	}
}

func TestFS_AtomicOverwriteLeavesNoTemp(t *testing.T) {
	s := tempFS(t)
	_ = s.Set("k", []byte("original"))
	if err := s.Set("k", []byte("updated")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, _ := s.Get("k")
	if string(got) != "updated" {
		t.Errorf("expected updated content, got %q", got)
	}
	matches, _ := filepath.Glob(filepath.Join(s.Root(), tmpPrefix+"*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestFS_OwnWrite(t *testing.T) {
	s := tempFS(t)
	_ = s.Set("k", []byte("mine"))
	if !s.ownWrite("k", []byte("mine")) {
		t.Error("own write not recognised")
	}
	if s.ownWrite("k", []byte("theirs")) {
		t.Error("foreign content reported as own write")
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp(t.TempDir(), "rowing-test-*")
	_ = f.Close()
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
