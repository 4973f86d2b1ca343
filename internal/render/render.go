// Package render writes article tables in the supported output formats.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hyperifyio/amcextract/internal/amc"
	"github.com/hyperifyio/amcextract/internal/table"
)

// ErrUnknownFormat is returned for an output format without a writer.
var ErrUnknownFormat = errors.New("unknown output format")

// Output formats.
const (
	FormatCSV      = "csv"
	FormatJSONL    = "jsonl"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

// WriterFunc renders a whole table to w.
type WriterFunc func(w io.Writer, t *table.Table) error

var writers = map[string]WriterFunc{
	FormatCSV:      WriteCSV,
	FormatJSONL:    WriteJSONL,
	FormatMarkdown: WriteMarkdown,
	FormatPDF:      WritePDF,
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatCSV, FormatJSONL, FormatMarkdown, FormatPDF}
}

// Lookup returns the writer for format (case-insensitive; "md" is accepted
// for markdown).
func Lookup(format string) (WriterFunc, error) {
	name := strings.ToLower(strings.TrimSpace(format))
	if name == "md" {
		name = FormatMarkdown
	}
	if w, ok := writers[name]; ok {
		return w, nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
}

// Write renders t in the given format.
func Write(w io.Writer, format string, t *table.Table) error {
	fn, err := Lookup(format)
	if err != nil {
		return err
	}
	return fn(w, t)
}

// Cell formats one value as plain text. Absent values render empty; topic
// sets render as their sorted, space-joined tags.
func Cell(r amc.Record, c amc.Column) string {
	v, ok := r.Value(c)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case amc.TopicSet:
		return x.String()
	}
	return fmt.Sprint(v)
}

// Header returns the column labels of t.
func Header(t *table.Table) []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Label()
	}
	return out
}
