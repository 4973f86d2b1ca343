package render

import (
	"encoding/csv"
	"io"

	"github.com/hyperifyio/amcextract/internal/table"
)

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(t)); err != nil {
		return err
	}
	row := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, c := range t.Columns {
			row[i] = Cell(r, c)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
