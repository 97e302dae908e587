package parsers

import (
	"sort"

	"exportlens/internal/models"
)

// Source is one uploaded file. Exactly one of Path, Data or Payload is used,
// in that order of preference.
type Source struct {
	Name    string
	Payload string
	Data    []byte
	Path    string
}

func (s Source) decode() (any, error) {
	switch {
	case s.Path != "":
		return DecodeFile(s.Path)
	case s.Data != nil:
		return DecodeBytes(s.Data)
	default:
		return Decode(s.Payload)
	}
}

type FileOutcome struct {
	File string `json:"file"`
	Rows int    `json:"rows"`
}

// BuildResult carries the merged table plus what happened to each file.
// Table is nil when no file produced rows.
type BuildResult struct {
	Table  *models.Table
	Files  []FileOutcome
	Errors []*models.FileError
}

// Builder merges the records of several uploads of one platform into a
// single table.
type Builder struct {
	registry *Registry
}

func NewBuilder(registry *Registry) *Builder {
	return &Builder{registry: registry}
}

// Build decodes and parses every source independently. A failing file is
// recorded in the result and does not stop the others. The merged table is
// returned only when it holds at least one row; otherwise the error is a
// *models.NoDataError and the result still lists the per-file failures.
func (b *Builder) Build(p models.Platform, sources []Source, selector models.SectionSelector) (*BuildResult, error) {
	parser, err := b.registry.Lookup(p)
	if err != nil {
		return nil, err
	}
	table, err := models.NewTable(p)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{}
	sections := selector.Resolve(p)
	if len(sections) == 0 {
		return result, &models.NoDataError{Platform: p, Sections: selectorIDs(selector)}
	}

	for _, src := range sources {
		raw, err := src.decode()
		if err != nil {
			result.Errors = append(result.Errors, &models.FileError{File: src.Name, Err: err})
			continue
		}
		records, err := parser.Parse(raw, sections)
		if err != nil {
			result.Errors = append(result.Errors, &models.FileError{File: src.Name, Err: err})
			continue
		}
		table.Append(records...)
		result.Files = append(result.Files, FileOutcome{File: src.Name, Rows: len(records)})
	}

	if table.Len() == 0 {
		return result, &models.NoDataError{Platform: p, Sections: sections}
	}
	result.Table = table
	return result, nil
}

func selectorIDs(s models.SectionSelector) []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
