package amc

import (
	"strings"
	"time"

	"github.com/hyperifyio/amcextract/internal/citation"
)

// Date layouts found in the datum attribute.
const (
	DateLayout        = "2006-01-02"
	CompactDateLayout = "20060102"
)

// Attr is an optional attribute value. Set is false when the attribute was
// missing from the document.
type Attr struct {
	Value string
	Set   bool
}

// AttrOf wraps a present value.
func AttrOf(v string) Attr { return Attr{Value: v, Set: true} }

// Record is one extracted article. Only the fields in Fields were requested;
// the remaining values are zero and must be ignored.
type Record struct {
	Fields FieldSet

	DocID     Attr
	Date      Attr
	Source    Attr
	Pages     citation.Pages
	Region    Attr
	Mediatype Attr
	Length    int
	Topics    TopicSet
	Mutation  Attr
	Keys      Attr
	Title     string
	Content   string
}

// Value returns the value of column c. ok is false when the column was not
// requested or its value is absent (missing attribute, unknown page).
//
// Values are string for attribute and text columns, int for pages and
// length, and TopicSet for ressorts. Dates in an AMC layout are normalized to
// 2006-01-02; other date strings pass through unchanged.
func (r Record) Value(c Column) (v any, ok bool) {
	if !r.Fields.Has(c.Field()) {
		return nil, false
	}
	switch c {
	case ColDocID:
		return r.DocID.Value, r.DocID.Set
	case ColDate:
		if t, ok := r.Published(); ok {
			return t.Format(DateLayout), true
		}
		return r.Date.Value, r.Date.Set
	case ColSource:
		return r.Source.Value, r.Source.Set
	case ColStartPage:
		return r.Pages.Start, r.Pages.Known
	case ColEndPage:
		return r.Pages.End, r.Pages.Known
	case ColRegion:
		return r.Region.Value, r.Region.Set
	case ColMediatype:
		return r.Mediatype.Value, r.Mediatype.Set
	case ColLength:
		return r.Length, true
	case ColRessorts:
		if r.Topics == nil {
			return TopicSet{}, true
		}
		return r.Topics, true
	case ColMutation:
		return r.Mutation.Value, r.Mutation.Set
	case ColKeys:
		return r.Keys.Value, r.Keys.Set
	case ColTitle:
		return r.Title, true
	case ColContent:
		return r.Content, true
	}
	return nil, false
}

// Published parses the datum attribute. ok is false when the date was not
// requested, missing, or not in an AMC date layout.
func (r Record) Published() (time.Time, bool) {
	if !r.Fields.Has(FieldDate) || !r.Date.Set {
		return time.Time{}, false
	}
	s := strings.TrimSpace(r.Date.Value)
	for _, layout := range []string{DateLayout, CompactDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
