package platform

// ListOptions controls window listing.
type ListOptions struct {
	PID   int    // Filter by PID (0 = unset)
	App   string // Filter by app name, case-insensitive
	Class string // Filter by window class, case-insensitive
}

// EditorOptions selects which application counts as the editor.
type EditorOptions struct {
	App   string // Editor app name, e.g. "code"
	Class string // Window class, used when the app name is not enough
}
