package timeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Formatter writes a timeline.
type Formatter interface {
	Format(w io.Writer, tl *Timeline) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatText FormatType = "text"
	FormatJSON FormatType = "json"
	FormatYAML FormatType = "yaml"
)

// ValidFormats returns all format names.
func ValidFormats() []FormatType {
	return []FormatType{FormatText, FormatJSON, FormatYAML}
}

// NewFormatter creates a formatter for the format type. tmpl applies only
// to text output and formats one event per execution.
func NewFormatter(format FormatType, tmpl string) (Formatter, error) {
	switch format {
	case FormatJSON:
		return JSONFormatter{}, nil
	case FormatYAML:
		return YAMLFormatter{}, nil
	case FormatText, "":
		return NewTextFormatter(tmpl)
	default:
		return nil, fmt.Errorf("unknown format %q, must be one of: %v", format, ValidFormats())
	}
}

// JSONFormatter writes the timeline as indented JSON.
type JSONFormatter struct{}

// Format implements Formatter.
func (JSONFormatter) Format(w io.Writer, tl *Timeline) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tl)
}

// YAMLFormatter writes the timeline as YAML.
type YAMLFormatter struct{}

// Format implements Formatter.
func (YAMLFormatter) Format(w io.Writer, tl *Timeline) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(tl); err != nil {
		return err
	}
	return encoder.Close()
}

// TextFormatter writes one line per event.
type TextFormatter struct {
	template *template.Template
}

// NewTextFormatter creates a text formatter with an optional per-event
// template.
func NewTextFormatter(tmpl string) (*TextFormatter, error) {
	f := &TextFormatter{}
	if tmpl != "" {
		t, err := template.New("event").Parse(tmpl)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template: %w", err)
		}
		f.template = t
	}
	return f, nil
}

// Format implements Formatter.
func (f *TextFormatter) Format(w io.Writer, tl *Timeline) error {
	if f.template == nil {
		header := fmt.Sprintf("toast %s  duration=%dms  message=%q\n", tl.ID, tl.DurationMs, tl.Message)
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
	}
	for _, e := range tl.Events {
		if f.template != nil {
			if err := f.template.Execute(w, e); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			continue
		}
		if _, err := io.WriteString(w, formatEvent(e)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// formatEvent renders the default text line for an event.
func formatEvent(e Event) string {
	var flags []string
	if e.State.Visible {
		flags = append(flags, "visible")
	}
	if e.State.Loading {
		flags = append(flags, "loading")
	}
	if e.State.Success {
		flags = append(flags, "success")
	}
	if len(flags) == 0 {
		flags = append(flags, "-")
	}
	return fmt.Sprintf("%6dms  %-10s %-8s %-24s %s %q",
		e.AtMs, e.Kind, e.Phase, strings.Join(flags, ","), e.Icon, e.Text)
}
