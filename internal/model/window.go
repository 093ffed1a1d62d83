package model

import (
	"strconv"
	"strings"
)

// Window represents an application window.
type Window struct {
	App     string `yaml:"app"               json:"app"`
	PID     int    `yaml:"pid"               json:"pid"`
	Title   string `yaml:"title"             json:"title"`
	ID      int    `yaml:"id"                json:"id"`
	Class   string `yaml:"class,omitempty"   json:"class,omitempty"`
	Desktop int    `yaml:"desktop,omitempty" json:"desktop,omitempty"`
	Focused bool   `yaml:"focused,omitempty" json:"focused,omitempty"`
}

// Key identifies the window across enumerations. The system window ID is
// used when known; otherwise app, PID and title together.
func (w Window) Key() string {
	if w.ID != 0 {
		return "win:" + strconv.Itoa(w.ID)
	}
	if w.App == "" && w.PID == 0 && w.Title == "" {
		return ""
	}
	return w.App + ":" + strconv.Itoa(w.PID) + ":" + w.Title
}

// DisplayName is the window title, or the app name for untitled windows.
func (w Window) DisplayName() string {
	if t := strings.TrimSpace(w.Title); t != "" {
		return t
	}
	return w.App
}

// Container is the editor application whose windows are tracked.
type Container struct {
	App  string `yaml:"app"  json:"app"`
	PIDs []int  `yaml:"pids" json:"pids"`
}

// Contains reports whether w belongs to the container.
func (c *Container) Contains(w Window) bool {
	if c == nil {
		return false
	}
	for _, pid := range c.PIDs {
		if pid == w.PID {
			return true
		}
	}
	return false
}
