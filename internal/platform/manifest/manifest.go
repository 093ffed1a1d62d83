// Package manifest reads the window list from a YAML file instead of the
// window manager. It backs --from and headless setups where another tool
// writes the list of open editors.
//
//	windows:
//	  - app: code
//	    pid: 4242
//	    id: 1
//	    title: main.go
//	    focused: true
package manifest

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mj1618/openfiles/internal/model"
	"github.com/mj1618/openfiles/internal/platform"
	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk document.
type Manifest struct {
	Windows []model.Window `yaml:"windows"`
}

// Reader implements platform.Reader over a manifest file. The file is
// read again on every call so external writers are picked up.
type Reader struct {
	Path string
}

// NewReader creates a reader for the manifest at path.
func NewReader(path string) *Reader {
	return &Reader{Path: path}
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// ListWindows returns the manifest's windows, filtered per ListOptions.
func (r *Reader) ListWindows(ctx context.Context, opts platform.ListOptions) ([]model.Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := Load(r.Path)
	if err != nil {
		return nil, err
	}

	windows := []model.Window{}
	for _, w := range m.Windows {
		if opts.PID != 0 && w.PID != opts.PID {
			continue
		}
		if opts.App != "" && !strings.EqualFold(w.App, opts.App) {
			continue
		}
		if opts.Class != "" && !strings.EqualFold(w.Class, opts.Class) {
			continue
		}
		windows = append(windows, w)
	}
	return windows, nil
}
