package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/rowing/internal/workoutstore"
	pkgconfig "github.com/starford/rowing/pkg/config"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
}

func TestStorageConfig_EmptyDriverDefaultsFS(t *testing.T) {
	cfg := StorageConfig{Path: "./data"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty driver should default to fs: %v", err)
	}
	if cfg.Driver != StorageDriverFS {
		t.Errorf("driver = %q, want %q", cfg.Driver, StorageDriverFS)
	}
	if cfg.Key != workoutstore.DefaultKey {
		t.Errorf("key = %q, want %q", cfg.Key, workoutstore.DefaultKey)
	}
}

func TestStorageConfig_InvalidDriver(t *testing.T) {
	cfg := StorageConfig{Driver: "postgres", Path: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown driver should fail validation")
	}
}

func TestStorageConfig_PathRequired(t *testing.T) {
	cfg := StorageConfig{Driver: StorageDriverSQLite}
	if err := cfg.Validate(); err == nil {
		t.Fatal("sqlite without path should fail")
	}
}

func TestStorageConfig_MemoryNeedsNoPath(t *testing.T) {
	cfg := StorageConfig{Driver: StorageDriverMemory}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory without path should pass: %v", err)
	}
}

func TestApplicationConfig_BadPort(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("port out of range should fail")
	}
}

func TestApplicationConfig_BadRepoURL(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.RepoURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid repo url should fail")
	}
}

func TestLoadYAMLWithEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ROWING_TEST_PORT", "9090")
	path := filepath.Join(dir, "config.yaml")
	yaml := `app:
  log_level: debug
  http:
    port: ${ROWING_TEST_PORT}
storage:
  driver: sqlite
  path: ` + filepath.Join(dir, "rowing.db") + `
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.HTTP.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.App.HTTP.Port)
	}
	if cfg.Storage.Driver != StorageDriverSQLite {
		t.Errorf("driver = %q", cfg.Storage.Driver)
	}
	if cfg.App.RepoURL == "" {
		t.Error("defaults should survive a partial file")
	}
	if cfg.Storage.Key != workoutstore.DefaultKey {
		t.Errorf("key = %q", cfg.Storage.Key)
	}
}
