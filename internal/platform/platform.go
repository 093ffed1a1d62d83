package platform

import (
	"context"

	"github.com/mj1618/openfiles/internal/model"
)

// Reader enumerates the windows the OS window manager knows about.
type Reader interface {
	// ListWindows returns all windows, optionally filtered.
	ListWindows(ctx context.Context, opts ListOptions) ([]model.Window, error)
}
