//go:build linux

package wmctrl

import "github.com/mj1618/openfiles/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{Reader: NewReader()}, nil
	}
}
