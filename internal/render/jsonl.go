package render

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/hyperifyio/amcextract/internal/amc"
	"github.com/hyperifyio/amcextract/internal/table"
)

// WriteJSONL writes one JSON object per record with keys in column order.
// Absent values are null and ressorts are a sorted array.
func WriteJSONL(w io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(w)
	for _, r := range t.Rows {
		if err := writeObject(bw, r, t.Columns); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeObject(bw *bufio.Writer, r amc.Record, cols []amc.Column) error {
	bw.WriteByte('{')
	for i, c := range cols {
		if i > 0 {
			bw.WriteByte(',')
		}
		key, err := json.Marshal(c.Label())
		if err != nil {
			return err
		}
		bw.Write(key)
		bw.WriteByte(':')
		val, err := json.Marshal(jsonValue(r, c))
		if err != nil {
			return err
		}
		bw.Write(val)
	}
	bw.WriteString("}\n")
	return nil
}

func jsonValue(r amc.Record, c amc.Column) any {
	v, ok := r.Value(c)
	if !ok {
		return nil
	}
	if ts, isSet := v.(amc.TopicSet); isSet {
		return ts.Sorted()
	}
	return v
}
