package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// SlotValue is one resolved target parameter.
type SlotValue struct {
	Slot  string `json:"slot" yaml:"slot"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Bound bool   `json:"bound" yaml:"bound"`
}

// Result is the resolution outcome for one leaf type.
type Result struct {
	Leaf     string      `json:"leaf" yaml:"leaf"`
	Target   string      `json:"target" yaml:"target"`
	Resolved bool        `json:"resolved" yaml:"resolved"`
	Complete bool        `json:"complete" yaml:"complete"`
	Slots    []SlotValue `json:"slots,omitempty" yaml:"slots,omitempty"`
}

var (
	completeColor   = color.New(color.FgGreen, color.Bold)
	incompleteColor = color.New(color.FgYellow)
	missColor       = color.New(color.Faint)
)

// Write renders results to w.
func Write(w io.Writer, format Format, results []Result) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, results)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeText(w io.Writer, results []Result) error {
	for _, r := range results {
		var err error
		switch {
		case !r.Resolved:
			_, err = missColor.Fprintf(w, "%s: no binding\n", r.Leaf)
		case r.Complete:
			_, err = completeColor.Fprintf(w, "%s: %s\n", r.Leaf, instantiation(r))
		default:
			_, err = incompleteColor.Fprintf(w, "%s: %s (incomplete)\n", r.Leaf, instantiation(r))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func instantiation(r Result) string {
	parts := make([]string, 0, len(r.Slots))
	for _, s := range r.Slots {
		if !s.Bound {
			parts = append(parts, s.Slot+"=?")
			continue
		}
		parts = append(parts, s.Slot+"="+s.Type)
	}
	return r.Target + "[" + strings.Join(parts, ", ") + "]"
}
