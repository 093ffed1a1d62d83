package cmd

import (
	"os"

	"github.com/mj1618/openfiles/internal/config"
	"github.com/mj1618/openfiles/internal/platform"
	"github.com/mj1618/openfiles/internal/platform/manifest"
	"github.com/mj1618/openfiles/internal/session"

	// registers the X11 backend on linux
	_ "github.com/mj1618/openfiles/internal/platform/wmctrl"
)

// newReader returns the manifest reader when one is configured, otherwise
// the platform backend.
func newReader(cfg config.Config) (platform.Reader, error) {
	if cfg.Manifest != "" {
		return manifest.NewReader(cfg.Manifest), nil
	}
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	if provider.Reader == nil {
		return nil, platform.ErrUnsupported
	}
	return provider.Reader, nil
}

// newSession builds a session from the resolved settings.
func newSession(cfg config.Config) (*session.Session, error) {
	reader, err := newReader(cfg)
	if err != nil {
		return nil, err
	}
	editor := platform.EditorOptions{App: cfg.Editor.App, Class: cfg.Editor.Class}
	return session.New(reader, editor, cfg.Sort, logger), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
