// Package amc holds the article data model shared by the extractor, the
// table assembly and the writers: requestable fields, output columns, topic
// sets and records.
package amc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned by ParseFields for names outside the vocabulary.
var ErrUnknownField = errors.New("unknown field")

// Field is one requestable output capability. Values are declared in
// canonical output order.
type Field uint16

const (
	FieldDocID Field = 1 << iota
	FieldDate
	FieldSource
	FieldPages
	FieldRegion
	FieldMediatype
	FieldLength
	FieldRessorts
	FieldMutation
	FieldKeys
	FieldTitle
	FieldContent
)

// AllFields lists every field in canonical order.
var AllFields = []Field{
	FieldDocID, FieldDate, FieldSource, FieldPages, FieldRegion, FieldMediatype,
	FieldLength, FieldRessorts, FieldMutation, FieldKeys, FieldTitle, FieldContent,
}

var fieldNames = map[Field]string{
	FieldDocID:     "doc_id",
	FieldDate:      "date",
	FieldSource:    "source",
	FieldPages:     "pages",
	FieldRegion:    "region",
	FieldMediatype: "mediatype",
	FieldLength:    "length",
	FieldRessorts:  "ressorts",
	FieldMutation:  "mutation",
	FieldKeys:      "keys",
	FieldTitle:     "title",
	FieldContent:   "content",
}

var fieldAliases = map[string]Field{
	"id":     FieldDocID,
	"doc id": FieldDocID,
	"topics": FieldRessorts,
}

func (f Field) String() string {
	if s, ok := fieldNames[f]; ok {
		return s
	}
	return fmt.Sprintf("field(%d)", uint16(f))
}

// FieldSet is a set of requested fields.
type FieldSet uint16

// DefaultFields is the selection used when nothing else is configured.
func DefaultFields() FieldSet {
	return NewFieldSet(FieldDate, FieldSource, FieldPages, FieldRessorts, FieldTitle, FieldContent)
}

// NewFieldSet builds a set from individual fields.
func NewFieldSet(fields ...Field) FieldSet {
	var s FieldSet
	for _, f := range fields {
		s |= FieldSet(f)
	}
	return s
}

// ParseFields resolves snake_case field names (case-insensitive) into a set.
func ParseFields(names []string) (FieldSet, error) {
	var s FieldSet
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if f, ok := lookupField(name); ok {
			s |= FieldSet(f)
			continue
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, raw)
	}
	return s, nil
}

func lookupField(name string) (Field, bool) {
	for f, n := range fieldNames {
		if n == name {
			return f, true
		}
	}
	f, ok := fieldAliases[name]
	return f, ok
}

// Has reports whether f is requested.
func (s FieldSet) Has(f Field) bool { return s&FieldSet(f) != 0 }

// Empty reports whether no field is requested.
func (s FieldSet) Empty() bool { return s == 0 }

// Fields returns the requested fields in canonical order.
func (s FieldSet) Fields() []Field {
	out := make([]Field, 0, len(AllFields))
	for _, f := range AllFields {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Names returns the snake_case names of the requested fields.
func (s FieldSet) Names() []string {
	fields := s.Fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.String()
	}
	return out
}

func (s FieldSet) String() string { return strings.Join(s.Names(), ",") }

// Columns returns the output columns for the requested fields in canonical
// order. The pages field expands to a start and an end column.
func (s FieldSet) Columns() []Column {
	out := make([]Column, 0, len(allColumns))
	for _, c := range allColumns {
		if s.Has(c.Field()) {
			out = append(out, c)
		}
	}
	return out
}
