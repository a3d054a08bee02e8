package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// Row is one data row with its 1-based position in the source file.
type Row struct {
	Number int
	Cells  []string
}

// Table is the parsed tabular content of an uploaded file.
type Table struct {
	Header []string
	Rows   []Row
	Source Source
}

// Source records how a file was read.
type Source struct {
	Format    Format `json:"format"`
	Encoding  string `json:"encoding,omitempty"`
	Delimiter string `json:"delimiter,omitempty"`
}

// Detector turns raw upload bytes into a Table. Candidate order is data, not
// logic: the first (encoding, delimiter) pair that decodes, parses and yields
// a recognized header wins.
type Detector struct {
	candidates     []Candidate
	aliases        Aliases
	textExtensions map[string]bool
}

func NewDetector(encodings []Encoding, delimiters []rune, aliases Aliases) *Detector {
	return &Detector{
		candidates:     Candidates(encodings, delimiters),
		aliases:        aliases,
		textExtensions: map[string]bool{".csv": true},
	}
}

func (d *Detector) Detect(data []byte, filename string) (Table, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); {
	case ext == ".xlsx":
		return d.spreadsheet(FormatXLSX, data, parseXLSX)
	case ext == ".xls":
		return d.spreadsheet(FormatXLS, data, parseXLS)
	case d.textExtensions[ext]:
		return d.delimited(data)
	default:
		return Table{}, &Error{
			Kind: KindUnreadableFormat,
			Err:  fmt.Errorf("unsupported file extension %q", ext),
		}
	}
}

func (d *Detector) spreadsheet(format Format, data []byte, parse func([]byte) ([][]string, error)) (Table, error) {
	records, err := parse(data)
	if err != nil {
		return Table{}, &Error{Kind: KindUnreadableFormat, Err: fmt.Errorf("%s: %w", format, err)}
	}
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{Number: i + 1, Cells: rec}
	}
	t, err := buildTable(rows, Source{Format: format})
	if err != nil {
		return Table{}, &Error{Kind: KindUnreadableFormat, Err: fmt.Errorf("%s: %w", format, err)}
	}
	return t, nil
}

func (d *Detector) delimited(data []byte) (Table, error) {
	var attempts []error
	for _, c := range d.candidates {
		t, err := d.try(c, data)
		if err == nil {
			return t, nil
		}
		attempts = append(attempts, fmt.Errorf("%s: %w", c, err))
	}
	return Table{}, &Error{
		Kind: KindUnreadableFormat,
		Err:  fmt.Errorf("no candidate encoding/delimiter matched: %w", errors.Join(attempts...)),
	}
}

var errUnrecognizedHeader = errors.New("header has no recognized column")

func (d *Detector) try(c Candidate, data []byte) (Table, error) {
	text, err := c.Encoding.Decode(data)
	if err != nil {
		return Table{}, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = c.Delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var rows []Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("parse: %w", err)
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, Row{Number: line, Cells: rec})
	}

	t, err := buildTable(rows, Source{
		Format:    FormatCSV,
		Encoding:  c.Encoding.Name,
		Delimiter: DelimiterName(c.Delimiter),
	})
	if err != nil {
		return Table{}, err
	}
	if !d.aliases.Recognizes(t.Header) {
		return Table{}, errUnrecognizedHeader
	}
	return t, nil
}

// buildTable takes the first non-blank row as the header and drops blank
// data rows. Row numbers are positions in the source file.
func buildTable(rows []Row, src Source) (Table, error) {
	start := -1
	for i, row := range rows {
		if !blank(row.Cells) {
			start = i
			break
		}
	}
	if start < 0 {
		return Table{}, errors.New("no header row")
	}

	t := Table{Header: rows[start].Cells, Source: src}
	for _, row := range rows[start+1:] {
		if blank(row.Cells) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
