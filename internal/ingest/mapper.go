package ingest

import (
	"fmt"
	"strings"
)

// RawRecord is one source row keyed by canonical field, still as text.
type RawRecord struct {
	Row    int
	Values map[Field]string
}

// Mapper resolves arbitrary headers onto the canonical schema.
type Mapper struct {
	aliases         Aliases
	defaultCategory string
}

func NewMapper(aliases Aliases, defaultCategory string) *Mapper {
	if defaultCategory == "" {
		defaultCategory = "General"
	}
	return &Mapper{aliases: aliases, defaultCategory: defaultCategory}
}

// Columns returns, for each resolved field, the index of the source column
// that feeds it. A canonical-named column beats an alias for the same field;
// otherwise the first matching column in header order wins.
func (m *Mapper) Columns(header []string) map[Field]int {
	cols := map[Field]int{}
	fromCanonical := map[Field]bool{}

	for i, h := range header {
		f, canonical, ok := m.aliases.Resolve(h)
		if !ok {
			continue
		}
		if _, seen := cols[f]; seen && (fromCanonical[f] || !canonical) {
			continue
		}
		cols[f] = i
		fromCanonical[f] = canonical
	}
	return cols
}

// Map projects the table onto canonical fields. Unknown columns are dropped,
// a missing category column is synthesized with the default value, and a
// missing required column fails the whole file.
func (m *Mapper) Map(t Table) ([]RawRecord, error) {
	cols := m.Columns(t.Header)

	var missing []Field
	for _, f := range requiredFields {
		if _, ok := cols[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &Error{
			Kind:    KindMissingRequiredColumns,
			Columns: trimmed(t.Header),
			Missing: missing,
			Err:     fmt.Errorf("%w: %v", ErrMissingRequiredColumns, missing),
		}
	}

	_, hasCategory := cols[FieldCategory]

	records := make([]RawRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := RawRecord{Row: row.Number, Values: make(map[Field]string, len(canonicalFields))}
		for f, idx := range cols {
			if idx < len(row.Cells) {
				rec.Values[f] = row.Cells[idx]
			} else {
				rec.Values[f] = ""
			}
		}
		if !hasCategory {
			rec.Values[FieldCategory] = m.defaultCategory
		}
		records = append(records, rec)
	}
	return records, nil
}

func trimmed(header []string) []string {
	out := make([]string, 0, len(header))
	for _, h := range header {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}
