// Package table assembles extracted article records into ordered tables.
package table

import (
	"github.com/hyperifyio/amcextract/internal/amc"
	"github.com/hyperifyio/amcextract/internal/corpus"
	"github.com/hyperifyio/amcextract/internal/extract"
)

// Table is an ordered sequence of records sharing one column layout.
type Table struct {
	Fields  amc.FieldSet
	Columns []amc.Column
	Rows    []amc.Record
}

// New returns an empty table for the requested fields.
func New(fields amc.FieldSet) *Table {
	return &Table{Fields: fields, Columns: fields.Columns()}
}

// Append adds records in order.
func (t *Table) Append(rows ...amc.Record) {
	t.Rows = append(t.Rows, rows...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Concat joins tables in argument order, keeping in-table row order. The
// layout of the first non-nil table is used. No rows are deduplicated.
func Concat(tables ...*Table) *Table {
	var out *Table
	for _, t := range tables {
		if t == nil {
			continue
		}
		if out == nil {
			out = New(t.Fields)
		}
		out.Append(t.Rows...)
	}
	if out == nil {
		return New(0)
	}
	return out
}

// Topics returns the sorted, deduplicated union of all ressort tags in the
// table. It is empty when the ressorts column was not requested.
func (t *Table) Topics() []string {
	if t == nil || !t.Fields.Has(amc.FieldRessorts) {
		return []string{}
	}
	all := amc.TopicSet{}
	for _, r := range t.Rows {
		all = all.Union(r.Topics)
	}
	return all.Sorted()
}

// FilterTopics returns a table with the rows whose ressort tags share at
// least one tag with want. Row order is kept.
func (t *Table) FilterTopics(want amc.TopicSet) *Table {
	out := New(t.Fields)
	for _, r := range t.Rows {
		if r.Topics.Intersects(want) {
			out.Append(r)
		}
	}
	return out
}

// FileResult is the extraction result of one corpus file.
type FileResult struct {
	Path      string
	SHA256    string
	Documents int
	Table     *Table
	Skips     []extract.Skip
}

// FromFile loads one corpus file and extracts all of its documents.
func FromFile(path string, fields amc.FieldSet, opts corpus.Options) (*FileResult, error) {
	f, err := corpus.Load(path, opts)
	if err != nil {
		return nil, err
	}
	docs := f.Documents()
	res := extract.Extract(extract.FieldExtractor{Fields: fields}, docs)
	t := New(fields)
	t.Append(res.Records...)
	return &FileResult{
		Path:      path,
		SHA256:    f.SHA256,
		Documents: len(docs),
		Table:     t,
		Skips:     res.Skips,
	}, nil
}
