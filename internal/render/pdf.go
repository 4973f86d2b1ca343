package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/amcextract/internal/amc"
	"github.com/hyperifyio/amcextract/internal/table"
)

// WritePDF renders the table as a simple article listing: a heading per
// record (title, or doc id when no title was requested), a metadata line for
// the short columns and the content as paragraphs.
func WritePDF(w io.Writer, t *table.Table) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so umlauts survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 10)
	pdf.AddPage()

	if len(t.Rows) == 0 {
		pdf.MultiCell(0, 5, tr("No articles."), "", "L", false)
	}
	for i, r := range t.Rows {
		if i > 0 {
			pdf.Ln(4)
		}
		heading := pdfHeading(r, i)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, tr(heading), "", "L", false)
		pdf.SetFont("Helvetica", "I", 9)
		if meta := pdfMeta(r, t.Columns); meta != "" {
			pdf.MultiCell(0, 4.5, tr(meta), "", "L", false)
		}
		pdf.SetFont("Helvetica", "", 10)
		if t.Fields.Has(amc.FieldContent) {
			for _, para := range strings.Split(r.Content, "\n") {
				if strings.TrimSpace(para) == "" {
					pdf.Ln(2)
					continue
				}
				pdf.MultiCell(0, 5, tr(para), "", "L", false)
			}
		}
	}
	return pdf.Output(w)
}

func pdfHeading(r amc.Record, i int) string {
	if r.Fields.Has(amc.FieldTitle) && strings.TrimSpace(r.Title) != "" {
		return strings.ReplaceAll(r.Title, "\n", " ")
	}
	if r.DocID.Set && r.DocID.Value != "" {
		return r.DocID.Value
	}
	return "Article " + strconv.Itoa(i+1)
}

// pdfMeta joins the short columns as "Label: value" pairs.
func pdfMeta(r amc.Record, cols []amc.Column) string {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		if c == amc.ColTitle || c == amc.ColContent {
			continue
		}
		if v := Cell(r, c); v != "" {
			parts = append(parts, c.Label()+": "+v)
		}
	}
	return strings.Join(parts, " · ")
}
