package amc

import (
	"testing"
	"time"

	"github.com/hyperifyio/amcextract/internal/citation"
)

func TestRecord_Value(t *testing.T) {
	r := Record{
		Fields: NewFieldSet(FieldDate, FieldPages, FieldRegion, FieldRessorts, FieldTitle),
		Date:   AttrOf("2015-03-12"),
		Pages:  citation.Pages{Start: 12, End: 15, Known: true},
		Topics: NewTopicSet("pol"),
		Title:  "Hello",
		Source: AttrOf("Die Presse"),
	}
	if v, ok := r.Value(ColDate); !ok || v != "2015-03-12" {
		t.Fatalf("date = %v, %v", v, ok)
	}
	if v, ok := r.Value(ColEndPage); !ok || v != 15 {
		t.Fatalf("end page = %v, %v", v, ok)
	}
	if _, ok := r.Value(ColRegion); ok {
		t.Fatalf("missing region should be absent")
	}
	if _, ok := r.Value(ColSource); ok {
		t.Fatalf("unrequested source should be absent")
	}
	if v, ok := r.Value(ColRessorts); !ok || !v.(TopicSet).Has("pol") {
		t.Fatalf("topics = %v, %v", v, ok)
	}
	r.Pages = citation.Pages{}
	if _, ok := r.Value(ColStartPage); ok {
		t.Fatalf("unknown page should be absent")
	}
}

func TestRecord_DateNormalized(t *testing.T) {
	cases := map[string]string{
		"20150312":    "2015-03-12",
		" 2015-03-12": "2015-03-12",
		"12.03.2015":  "12.03.2015",
		"":            "",
	}
	for raw, want := range cases {
		r := Record{Fields: NewFieldSet(FieldDate), Date: AttrOf(raw)}
		if v, ok := r.Value(ColDate); !ok || v != want {
			t.Fatalf("Value(ColDate) for %q = %v, %v, want %q", raw, v, ok, want)
		}
	}
	if _, ok := (Record{Fields: NewFieldSet(FieldDate)}).Value(ColDate); ok {
		t.Fatalf("missing date should be absent")
	}
}

func TestRecord_Published(t *testing.T) {
	want := time.Date(2015, 3, 12, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2015-03-12", "20150312", " 2015-03-12 "} {
		r := Record{Fields: NewFieldSet(FieldDate), Date: AttrOf(raw)}
		got, ok := r.Published()
		if !ok || !got.Equal(want) {
			t.Fatalf("Published(%q) = %v, %v", raw, got, ok)
		}
	}
	if _, ok := (Record{Fields: NewFieldSet(FieldDate), Date: AttrOf("12.03.2015")}).Published(); ok {
		t.Fatalf("non-AMC layout should not parse")
	}
	if _, ok := (Record{Fields: NewFieldSet(FieldDate)}).Published(); ok {
		t.Fatalf("missing date should not parse")
	}
}
