package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the platform backends for the current OS.
type Provider struct {
	Reader Reader
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("openfiles has no window backend for %s/%s; supported: linux (X11, wmctrl), or --from <manifest>", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/wmctrl/init.go for the X11 registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
