package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// RenderCSV writes a UTF-8 CSV with a header row followed by one line per row.
func RenderCSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.Date,
			r.Title,
			r.Category,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			r.Description,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
