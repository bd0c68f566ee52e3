// Package report renders heapkit results as tables, plain text, JSON or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Output formats understood by Render.
const (
	FormatTable = "table"
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("report: unknown output format")

// Field is a named scalar shown beneath the value list.
type Field struct {
	Name  string  `json:"name"  yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Report is the result of one heapkit operation.
type Report struct {
	Title   string    `json:"title"             yaml:"title"`
	Values  []float64 `json:"values"            yaml:"values"`
	Summary []Field   `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Options controls rendering.
type Options struct {
	Format string
	Color  bool
}

// Render writes r to w in the requested format.
func Render(w io.Writer, r Report, opts Options) error {
	switch opts.Format {
	case FormatTable, "":
		return renderTable(w, r, opts.Color)
	case FormatPlain:
		return renderPlain(w, r)
	case FormatJSON:
		return renderJSON(w, r)
	case FormatYAML:
		return renderYAML(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// FormatNumber prints integral values without a fractional part.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderTable(w io.Writer, r Report, useColor bool) error {
	title := color.New(color.FgCyan, color.Bold)
	if !useColor {
		title.DisableColor()
	}

	if _, err := title.Fprintln(w, r.Title); err != nil {
		return fmt.Errorf("write title: %w", err)
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.AppendHeader(table.Row{"#", "Value"})

	for i, v := range r.Values {
		tbl.AppendRow(table.Row{i, FormatNumber(v)})
	}

	for _, f := range r.Summary {
		tbl.AppendFooter(table.Row{f.Name, FormatNumber(f.Value)})
	}

	if _, err := fmt.Fprintln(w, tbl.Render()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}

func renderPlain(w io.Writer, r Report) error {
	parts := make([]string, len(r.Values))
	for i, v := range r.Values {
		parts[i] = FormatNumber(v)
	}

	var sb strings.Builder

	if len(parts) > 0 {
		sb.WriteString(strings.Join(parts, " "))
		sb.WriteByte('\n')
	}

	for _, f := range r.Summary {
		fmt.Fprintf(&sb, "%s: %s\n", f.Name, FormatNumber(f.Value))
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write plain: %w", err)
	}

	return nil
}

func renderJSON(w io.Writer, r Report) error {
	if r.Values == nil {
		r.Values = []float64{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

func renderYAML(w io.Writer, r Report) error {
	if r.Values == nil {
		r.Values = []float64{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return nil
}
