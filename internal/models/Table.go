package models

// Column describes one output column of a platform schema.
type Column struct {
	Name   string
	IsTime bool
	value  func(r *Record) string
}

func (c Column) Value(r *Record) string {
	return c.value(r)
}

func timeValue(r *Record) string { return FormatTime(r.Time) }

var schemas = map[Platform][]Column{
	PlatformTikTok: {
		{Name: "Date", IsTime: true, value: timeValue},
		{Name: "Link", value: func(r *Record) string { return r.Link }},
		{Name: "Source", value: func(r *Record) string { return r.Source }},
	},
	PlatformInstagram: {
		{Name: "title", value: func(r *Record) string { return r.Title }},
		{Name: "href", value: func(r *Record) string { return r.Link }},
		{Name: "timestamp", IsTime: true, value: timeValue},
		{Name: "category", value: func(r *Record) string { return r.Category }},
		{Name: "file_name", value: func(r *Record) string { return r.FileName }},
	},
	PlatformYouTube: {
		{Name: "Title", value: func(r *Record) string { return r.Title }},
		{Name: "Link", value: func(r *Record) string { return r.Link }},
		{Name: "Date", IsTime: true, value: timeValue},
		{Name: "Channel Name", value: func(r *Record) string { return r.ChannelName }},
		{Name: "Channel URL", value: func(r *Record) string { return r.ChannelURL }},
	},
}

// Schema returns the canonical column set of a platform.
func Schema(p Platform) ([]Column, error) {
	cols, ok := schemas[p]
	if !ok {
		return nil, &UnsupportedPlatformError{Platform: string(p)}
	}
	return cols, nil
}

// Table is an ordered sequence of records sharing one platform schema.
// Insertion order is preserved and nothing is deduplicated.
type Table struct {
	Platform Platform `json:"platform"`
	Records  []Record `json:"records"`
}

func NewTable(p Platform) (*Table, error) {
	if _, err := Schema(p); err != nil {
		return nil, err
	}
	return &Table{Platform: p, Records: make([]Record, 0)}, nil
}

func (t *Table) Len() int {
	return len(t.Records)
}

func (t *Table) Append(records ...Record) {
	t.Records = append(t.Records, records...)
}

// Merge appends the rows of other; both tables must share a platform.
func (t *Table) Merge(other *Table) error {
	if other == nil {
		return nil
	}
	if other.Platform != t.Platform {
		return ErrPlatformMismatch
	}
	t.Append(other.Records...)
	return nil
}

func (t *Table) Columns() []string {
	cols := schemas[t.Platform]
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func (t *Table) Column(name string) (Column, error) {
	for _, c := range schemas[t.Platform] {
		if c.Name == name {
			return c, nil
		}
	}
	return Column{}, &MissingColumnError{Platform: t.Platform, Column: name}
}

func (t *Table) Has(name string) bool {
	_, err := t.Column(name)
	return err == nil
}

// TimeColumn returns the name of the column carrying the record timestamp.
func (t *Table) TimeColumn() string {
	for _, c := range schemas[t.Platform] {
		if c.IsTime {
			return c.Name
		}
	}
	return ""
}

// Row renders record i in column order.
func (t *Table) Row(i int) []string {
	cols := schemas[t.Platform]
	row := make([]string, len(cols))
	for j, c := range cols {
		row[j] = c.value(&t.Records[i])
	}
	return row
}

// Values returns every value of one column in row order.
func (t *Table) Values(name string) ([]string, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Records))
	for i := range t.Records {
		out[i] = col.value(&t.Records[i])
	}
	return out, nil
}

// Head renders at most n leading rows.
func (t *Table) Head(n int) [][]string {
	if n > len(t.Records) || n < 0 {
		n = len(t.Records)
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		rows[i] = t.Row(i)
	}
	return rows
}
