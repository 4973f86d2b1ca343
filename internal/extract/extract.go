// Package extract turns parsed AMC <doc> elements into article records.
package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/hyperifyio/amcextract/internal/amc"
	"github.com/hyperifyio/amcextract/internal/citation"
)

// Attribute and element names of the AMC schema.
const (
	attrID        = "id"
	attrDate      = "datum"
	attrSource    = "docsrc_name"
	attrCitation  = "bibl"
	attrRegion    = "region"
	attrMediatype = "mediatype"
	attrTokens    = "tokens"
	attrRessorts  = "ressort2"
	attrMutation  = "mutation"
	attrKeys      = "keys"

	elemField     = "field"
	elemParagraph = "p"
	attrFieldName = "name"

	// TitleMarker and ContentMarker are the name attribute values of the
	// title and body field elements.
	TitleMarker   = "titel"
	ContentMarker = "inhalt"
)

var (
	// ErrMissingField means a requested field has no source data in the document.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidLength means the tokens attribute is not an integer.
	ErrInvalidLength = errors.New("invalid length")
)

// Skip explains why a document produced no record.
type Skip struct {
	// Index is the position of the document within its file.
	Index int
	DocID string
	Field amc.Field
	Err   error
}

func (s *Skip) Error() string {
	id := s.DocID
	if id == "" {
		id = "#" + strconv.Itoa(s.Index)
	}
	return fmt.Sprintf("doc %s: %s: %v", id, s.Field, s.Err)
}

func (s *Skip) Unwrap() error { return s.Err }

// Outcome is the result of extracting one document: either a record or a
// skip with its reason.
type Outcome struct {
	Record amc.Record
	Skip   *Skip
}

// Skipped reports whether the document was dropped.
func (o Outcome) Skipped() bool { return o.Skip != nil }

// FromDoc extracts the requested fields of one <doc> element. If any
// requested field cannot be produced the whole document is skipped; no
// partial record is ever returned.
func FromDoc(doc *xmlquery.Node, fields amc.FieldSet) Outcome {
	rec := amc.Record{Fields: fields}
	skip := func(f amc.Field, err error) Outcome {
		id, _ := attr(doc, attrID)
		return Outcome{Skip: &Skip{DocID: id, Field: f, Err: err}}
	}

	if fields.Has(amc.FieldDocID) {
		rec.DocID = optional(doc, attrID)
	}
	if fields.Has(amc.FieldDate) {
		rec.Date = optional(doc, attrDate)
	}
	if fields.Has(amc.FieldSource) {
		rec.Source = optional(doc, attrSource)
	}
	if fields.Has(amc.FieldPages) {
		bibl, _ := attr(doc, attrCitation)
		rec.Pages = citation.PageRange(bibl)
	}
	if fields.Has(amc.FieldRegion) {
		rec.Region = optional(doc, attrRegion)
	}
	if fields.Has(amc.FieldMediatype) {
		rec.Mediatype = optional(doc, attrMediatype)
	}
	if fields.Has(amc.FieldLength) {
		raw, ok := attr(doc, attrTokens)
		if !ok {
			return skip(amc.FieldLength, fmt.Errorf("%w: no %s attribute", ErrMissingField, attrTokens))
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return skip(amc.FieldLength, fmt.Errorf("%w: %q", ErrInvalidLength, raw))
		}
		rec.Length = n
	}
	if fields.Has(amc.FieldRessorts) {
		tags, _ := attr(doc, attrRessorts)
		rec.Topics = amc.ParseTopics(tags)
	}
	if fields.Has(amc.FieldMutation) {
		rec.Mutation = optional(doc, attrMutation)
	}
	if fields.Has(amc.FieldKeys) {
		rec.Keys = optional(doc, attrKeys)
	}
	if fields.Has(amc.FieldTitle) {
		text, ok := fieldText(doc, TitleMarker)
		if !ok {
			return skip(amc.FieldTitle, fmt.Errorf("%w: no %s field element", ErrMissingField, TitleMarker))
		}
		rec.Title = text
	}
	if fields.Has(amc.FieldContent) {
		text, ok := fieldText(doc, ContentMarker)
		if !ok {
			return skip(amc.FieldContent, fmt.Errorf("%w: no %s field element", ErrMissingField, ContentMarker))
		}
		rec.Content = text
	}
	return Outcome{Record: rec}
}

// Result collects the outcomes of a sequence of documents.
type Result struct {
	Records []amc.Record
	Skips   []Skip
}

// Extract runs e over docs in order.
func Extract(e Extractor, docs []*xmlquery.Node) Result {
	res := Result{Records: make([]amc.Record, 0, len(docs))}
	for i, d := range docs {
		o := e.Extract(d)
		if o.Skipped() {
			o.Skip.Index = i
			res.Skips = append(res.Skips, *o.Skip)
			continue
		}
		res.Records = append(res.Records, o.Record)
	}
	return res
}

// fieldText joins the trimmed paragraphs of the first child field element
// whose name attribute equals marker. ok is false when no such element exists.
func fieldText(doc *xmlquery.Node, marker string) (string, bool) {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if !isElement(c, elemField) {
			continue
		}
		if name, _ := attr(c, attrFieldName); name != marker {
			continue
		}
		return joinParagraphs(c), true
	}
	return "", false
}

func joinParagraphs(field *xmlquery.Node) string {
	var paras []string
	for p := field.FirstChild; p != nil; p = p.NextSibling {
		if isElement(p, elemParagraph) {
			paras = append(paras, strings.TrimSpace(p.InnerText()))
		}
	}
	return strings.Join(paras, "\n")
}

func isElement(n *xmlquery.Node, name string) bool {
	return n.Type == xmlquery.ElementNode && n.Data == name
}

// attr looks up an unprefixed attribute, distinguishing missing from empty.
func attr(n *xmlquery.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value, true
		}
	}
	return "", false
}

func optional(n *xmlquery.Node, name string) amc.Attr {
	v, ok := attr(n, name)
	return amc.Attr{Value: v, Set: ok}
}
