package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mj1618/openfiles/internal/model"
	"github.com/mj1618/openfiles/internal/tracker"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Stdout is where Print writes. Tests swap it out.
var Stdout io.Writer = os.Stdout

// OpenItem is one tracked window as printed by `list` and the MCP tools.
type OpenItem struct {
	Key            string `yaml:"key"               json:"key"`
	Title          string `yaml:"title"             json:"title"`
	App            string `yaml:"app,omitempty"     json:"app,omitempty"`
	PID            int    `yaml:"pid,omitempty"     json:"pid,omitempty"`
	ID             int    `yaml:"id,omitempty"      json:"id,omitempty"`
	Focused        bool   `yaml:"focused,omitempty" json:"focused,omitempty"`
	LastActivation int64  `yaml:"last_activation"   json:"last_activation"` // unix milliseconds
}

// ListResult is the top-level output of the `list` command.
type ListResult struct {
	Sort  string     `yaml:"sort"  json:"sort"`
	TS    int64      `yaml:"ts"    json:"ts"`
	Items []OpenItem `yaml:"items" json:"items"`
}

// NewOpenItem converts a tracker record for output.
func NewOpenItem(r *tracker.Record[model.Window]) OpenItem {
	w := r.Item()
	return OpenItem{
		Key:            w.Key(),
		Title:          w.DisplayName(),
		App:            w.App,
		PID:            w.PID,
		ID:             w.ID,
		Focused:        w.Focused,
		LastActivation: r.LastActivation().UnixMilli(),
	}
}

// NewListResult converts an ordered record snapshot for output.
func NewListResult(records []*tracker.Record[model.Window], policy tracker.SortPolicy) ListResult {
	items := make([]OpenItem, len(records))
	for i, r := range records {
		items[i] = NewOpenItem(r)
	}
	return ListResult{
		Sort:  policy.String(),
		TS:    time.Now().Unix(),
		Items: items,
	}
}

// Print serializes v to Stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return PrintJSON(Stdout, v, PrettyOutput)
	case FormatYAML:
		return PrintYAML(Stdout, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to w as JSON.
// If pretty is true, uses indentation; otherwise single-line.
func PrintJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// PrintYAML serializes v to w as YAML.
func PrintYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
