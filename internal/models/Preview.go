package models

const DefaultPreviewRows = 10

// Preview is the leading slice of a table handed to presentation code.
type Preview struct {
	Platform Platform   `json:"platform"`
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	Total    int        `json:"total"`
}

func NewPreview(t *Table, rows int) *Preview {
	if rows <= 0 {
		rows = DefaultPreviewRows
	}
	return &Preview{
		Platform: t.Platform,
		Columns:  t.Columns(),
		Rows:     t.Head(rows),
		Total:    t.Len(),
	}
}
