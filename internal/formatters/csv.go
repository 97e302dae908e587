package formatters

import (
	"bytes"
	"encoding/csv"
	"io"

	"exportlens/internal/models"
)

const (
	CSVFileName = "data.csv"
	CSVMimeType = "text/csv; charset=utf-8"
)

// WriteCSV writes the header row followed by one row per record.
func WriteCSV(w io.Writer, table *models.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Columns()); err != nil {
		return err
	}
	for i := range table.Records {
		if err := cw.Write(table.Row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ToCSV(table *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
