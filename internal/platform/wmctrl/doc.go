// Package wmctrl lists X11 windows through the wmctrl and xprop tools.
// Any EWMH-compliant window manager is supported; Wayland sessions are
// only visible through XWayland.
package wmctrl
