// Package report renders header classification results.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/Hengle/StyleCop/scan"
)

// Format is a report output format.
type Format string

const (
	// FormatText writes one line per file followed by a summary line.
	FormatText Format = "text"
	// FormatJSON writes a [Document] as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML writes a [Document] as YAML.
	FormatYAML Format = "yaml"
)

var (
	// ErrUnknownFormat indicates an unrecognized report format string.
	ErrUnknownFormat = errors.New("unknown report format")
	// ErrWriteOutput indicates the report could not be written.
	ErrWriteOutput = errors.New("write output")

	allFormats = []Format{FormatText, FormatJSON, FormatYAML}
)

// Summary counts classification outcomes across a batch.
type Summary struct {
	Files     int `json:"files"     yaml:"files"`
	Generated int `json:"generated" yaml:"generated"`
	Unstyled  int `json:"unstyled"  yaml:"unstyled"`
	Malformed int `json:"malformed" yaml:"malformed"`
	Errors    int `json:"errors"    yaml:"errors"`
}

// Document is the JSON and YAML report layout.
type Document struct {
	Files   []scan.Result `json:"files"   yaml:"files"`
	Summary Summary       `json:"summary" yaml:"summary"`
}

// Summarize counts the outcomes in results.
func Summarize(results []scan.Result) Summary {
	s := Summary{Files: len(results)}

	for _, r := range results {
		if r.Generated {
			s.Generated++
		}

		if r.Unstyled {
			s.Unstyled++
		}

		if r.Outcome == "malformed" {
			s.Malformed++
		}

		if r.Err != nil || r.Error != "" {
			s.Errors++
		}
	}

	return s
}

// ParseFormat parses a report format string. Matching is case-insensitive.
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains(allFormats, f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// GetAllFormatStrings returns the accepted format names.
func GetAllFormatStrings() []string {
	out := make([]string, 0, len(allFormats))
	for _, f := range allFormats {
		out = append(out, string(f))
	}

	return out
}

// Write renders results to w in the given format.
func Write(w io.Writer, format Format, results []scan.Result) error {
	if results == nil {
		results = []scan.Result{}
	}

	doc := Document{
		Files:   results,
		Summary: Summarize(results),
	}

	var (
		out []byte
		err error
	)

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(doc, "", "  ")
		out = append(out, '\n')

	case FormatYAML:
		out, err = yaml.Marshal(doc)

	case FormatText:
		out = []byte(text(doc))

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func text(doc Document) string {
	var sb strings.Builder

	for _, r := range doc.Files {
		if r.Error != "" {
			fmt.Fprintf(&sb, "%s: error: %s\n", r.Path, r.Error)

			continue
		}

		fmt.Fprintf(&sb, "%s: generated=%t unstyled=%t line=%d",
			r.Path, r.Generated, r.Unstyled, r.Line)

		if r.Outcome == "malformed" {
			sb.WriteString(" malformed")
		}

		sb.WriteByte('\n')
	}

	s := doc.Summary
	fmt.Fprintf(&sb, "%d files, %d generated, %d unstyled, %d malformed, %d errors\n",
		s.Files, s.Generated, s.Unstyled, s.Malformed, s.Errors)

	return sb.String()
}

// Schema returns the JSON Schema of [Document].
func Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[Document](nil)
	if err != nil {
		return nil, fmt.Errorf("report schema: %w", err)
	}

	schema.Schema = "http://json-schema.org/draft-07/schema#"
	schema.Title = "headercheck report"

	return schema, nil
}
