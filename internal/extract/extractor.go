package extract

import (
	"github.com/antchfx/xmlquery"

	"github.com/hyperifyio/amcextract/internal/amc"
)

// Extractor defines a minimal interface for per-document extraction so
// callers can swap field policies without changing the batch code.
type Extractor interface {
	// Extract converts one <doc> element into an Outcome.
	// Implementations must not retain or mutate the node.
	Extract(doc *xmlquery.Node) Outcome
}

// FieldExtractor extracts a fixed set of requested fields using FromDoc.
type FieldExtractor struct {
	Fields amc.FieldSet
}

func (e FieldExtractor) Extract(doc *xmlquery.Node) Outcome {
	return FromDoc(doc, e.Fields)
}
