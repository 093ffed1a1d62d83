package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mj1618/openfiles/internal/tracker"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `sort = "NAME_DESC"
interval_ms = 250
format = "JSON"

[editor]
app = "goland"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sort != tracker.NameDesc {
		t.Errorf("sort: got %s, want NAME_DESC", cfg.Sort)
	}
	if cfg.RefreshInterval() != 250*time.Millisecond {
		t.Errorf("interval: got %v, want 250ms", cfg.RefreshInterval())
	}
	if cfg.Format != "json" {
		t.Errorf("format: got %q, want json", cfg.Format)
	}
	if cfg.Editor.App != "goland" {
		t.Errorf("editor app: got %q, want goland", cfg.Editor.App)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level should keep its default, got %q", cfg.LogLevel)
	}
}

func TestLoad_UnknownSortFallsBackToRecency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`sort = "BY_SIZE"`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sort != tracker.Recency {
		t.Errorf("got %s, want RECENCY", cfg.Sort)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []string{
		`interval_ms = 0`,
		`format = "xml"`,
		`sort = `,
	}
	for _, content := range tests {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%q) should fail", content)
		}
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Default()
	want.Sort = tracker.NameAsc
	want.Editor.Class = "jetbrains-goland"

	if err := Write(path, want); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# openfiles configuration") {
		t.Errorf("missing header:\n%s", data)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
