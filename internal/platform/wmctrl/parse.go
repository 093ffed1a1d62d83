package wmctrl

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// entry is one line of `wmctrl -lpx` output.
type entry struct {
	ID      int
	Desktop int
	PID     int
	Class   string // WM_CLASS as "instance.Class"
	Host    string
	Title   string
}

// instance returns the first half of WM_CLASS, usually the program name.
func (e entry) instance() string {
	if i := strings.IndexByte(e.Class, '.'); i >= 0 {
		return e.Class[:i]
	}
	return e.Class
}

// className returns the second half of WM_CLASS.
func (e entry) className() string {
	if i := strings.IndexByte(e.Class, '.'); i >= 0 {
		return e.Class[i+1:]
	}
	return e.Class
}

// parseWindowList parses `wmctrl -lpx` output:
//
//	0x04400003  0 12345  code.Code             host main.go - project
//
// Lines that do not have the five leading columns are rejected.
func parseWindowList(out []byte) ([]entry, error) {
	var entries []entry
	sc := bufio.NewScanner(bytes.NewReader(out))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("wmctrl line %d: %w", n, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func parseLine(line string) (entry, error) {
	fields, title := splitFields(line, 5)
	if len(fields) < 5 {
		return entry{}, fmt.Errorf("expected at least 5 columns, got %d: %q", len(fields), line)
	}

	id, err := parseWindowID(fields[0])
	if err != nil {
		return entry{}, err
	}
	desktop, err := strconv.Atoi(fields[1])
	if err != nil {
		return entry{}, fmt.Errorf("invalid desktop %q: %w", fields[1], err)
	}
	pid, err := strconv.Atoi(fields[2])
	if err != nil {
		return entry{}, fmt.Errorf("invalid pid %q: %w", fields[2], err)
	}

	return entry{
		ID:      id,
		Desktop: desktop,
		PID:     pid,
		Class:   fields[3],
		Host:    fields[4],
		Title:   title,
	}, nil
}

// splitFields splits off the first n whitespace-separated fields and
// returns the rest of the line untouched, so titles keep their spacing.
func splitFields(line string, n int) ([]string, string) {
	var fields []string
	rest := line
	for len(fields) < n {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			fields = append(fields, rest)
			rest = ""
			break
		}
		fields = append(fields, rest[:end])
		rest = rest[end:]
	}
	return fields, strings.TrimLeft(rest, " \t")
}

func parseWindowID(s string) (int, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	return int(v), nil
}

// parseActiveWindow parses `xprop -root _NET_ACTIVE_WINDOW` output:
//
//	_NET_ACTIVE_WINDOW(WINDOW): window id # 0x4400003
//
// It returns 0 when no window is active.
func parseActiveWindow(out []byte) (int, error) {
	s := strings.TrimSpace(string(out))
	i := strings.LastIndexByte(s, '#')
	if i < 0 {
		return 0, fmt.Errorf("unexpected xprop output: %q", s)
	}
	// xprop may list several ids separated by commas; the first one wins
	id := strings.TrimSpace(strings.Split(s[i+1:], ",")[0])
	return parseWindowID(id)
}
