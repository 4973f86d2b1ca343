package render

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/hyperifyio/amcextract/internal/table"
)

// PreviewCellWidth caps the display width of a Markdown preview cell.
const PreviewCellWidth = 40

// WriteMarkdown writes an aligned Markdown table meant for a quick look at
// the data. Long cells are truncated and line breaks flattened, so the
// output is lossy; use CSV or JSONL for the full text.
func WriteMarkdown(w io.Writer, t *table.Table) error {
	rows := make([][]string, 0, len(t.Rows)+1)
	rows = append(rows, Header(t))
	for _, r := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cells[i] = previewCell(Cell(r, c))
		}
		rows = append(rows, cells)
	}

	// Calculate max widths (using display width)
	widths := make([]int, len(t.Columns))
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		sb.WriteString("|")
		for i, cell := range row {
			sb.WriteString(" ")
			sb.WriteString(cell)
			if pad := widths[i] - runewidth.StringWidth(cell); pad > 0 {
				sb.WriteString(strings.Repeat(" ", pad))
			}
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sep := make([]string, len(widths))
	for i, wd := range widths {
		sep[i] = strings.Repeat("-", wd)
	}
	writeRow(sep)
	for _, row := range rows[1:] {
		writeRow(row)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func previewCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	return runewidth.Truncate(s, PreviewCellWidth, "…")
}
