package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

type validated struct {
	Name string `yaml:"name"`
}

func (v *validated) Validate() error {
	if v.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "erg")
	path := writeFile(t, "name: ${SAMPLE_NAME}\n")
	s := sample{Count: 7}
	if err := Load(path, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "erg" {
		t.Errorf("name = %q, want erg", s.Name)
	}
	if s.Count != 7 {
		t.Errorf("count = %d, want preset 7", s.Count)
	}
}

func TestLoad_Missing(t *testing.T) {
	var s sample
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &s); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "name: [unclosed\n")
	var s sample
	if err := Load(path, &s); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_RunsValidator(t *testing.T) {
	path := writeFile(t, "name: \"\"\n")
	var v validated
	if err := Load(path, &v); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadIfExists(t *testing.T) {
	v := validated{Name: "default"}
	found, err := LoadIfExists(filepath.Join(t.TempDir(), "nope.yaml"), &v)
	if err != nil || found {
		t.Fatalf("missing file: found=%v err=%v", found, err)
	}
	if v.Name != "default" {
		t.Errorf("name = %q, want default", v.Name)
	}

	path := writeFile(t, "name: loaded\n")
	found, err = LoadIfExists(path, &v)
	if err != nil || !found {
		t.Fatalf("existing file: found=%v err=%v", found, err)
	}
	if v.Name != "loaded" {
		t.Errorf("name = %q, want loaded", v.Name)
	}
}

func TestLoadIfExists_ValidatesDefaults(t *testing.T) {
	var v validated
	if _, err := LoadIfExists(filepath.Join(t.TempDir(), "nope.yaml"), &v); err == nil {
		t.Error("expected validation error for empty defaults")
	}
}
