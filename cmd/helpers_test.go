package cmd

import (
	"context"
	"testing"

	"github.com/mj1618/openfiles/internal/config"
	"github.com/mj1618/openfiles/internal/platform"
	"github.com/mj1618/openfiles/internal/platform/manifest"
)

func TestNewReader_Manifest(t *testing.T) {
	cfg := config.Default()
	cfg.Manifest = writeTestManifest(t)

	r, err := newReader(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(*manifest.Reader); !ok {
		t.Errorf("expected manifest reader, got %T", r)
	}
}

func TestNewReader_UnsupportedPlatform(t *testing.T) {
	orig := platform.NewProviderFunc
	platform.NewProviderFunc = nil
	defer func() { platform.NewProviderFunc = orig }()

	if _, err := newReader(config.Default()); err == nil {
		t.Error("expected error without a platform backend")
	}
}

func TestNewSession_FromManifest(t *testing.T) {
	cfg := config.Default()
	cfg.Manifest = writeTestManifest(t)
	cfg.Editor.App = "firefox"

	s, err := newSession(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s.Tick(context.Background())
	items := s.Tracker.Items()
	if len(items) != 1 || items[0].Title != "Docs" {
		t.Errorf("got %+v, want the firefox window", items)
	}
}
