package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// TemplateColumn documents one column of the import file.
type TemplateColumn struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Required    bool     `json:"required"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Example     string   `json:"example"`
}

type ImportTemplate struct {
	Columns    []TemplateColumn    `json:"columns"`
	SampleData []map[string]string `json:"sampleData"`
}

// ProductTemplate describes the accepted import columns. aliases maps a
// canonical column name to the alternative headers that resolve to it.
func ProductTemplate(aliases map[string][]string) ImportTemplate {
	cols := []TemplateColumn{
		{Name: "codigo", Required: true, Type: "text", Description: "Product code, unique per file. Numeric codes are zero-padded", Example: "00042"},
		{Name: "producto", Required: true, Type: "text", Description: "Product name", Example: "Soap"},
		{Name: "referencia", Type: "text", Description: "Supplier or internal reference", Example: "REF-1"},
		{Name: "categoria", Type: "text", Description: "Category; defaults to General when the column is absent", Example: "Cleaning"},
		{Name: "cantidad", Type: "integer", Description: "Units on hand; non-numeric values become 0", Example: "10"},
		{Name: "precio", Type: "decimal", Description: "Unit price; currency symbols and separators are stripped", Example: "1200.50"},
	}
	for i := range cols {
		cols[i].Aliases = aliases[cols[i].Name]
	}

	return ImportTemplate{
		Columns: cols,
		SampleData: []map[string]string{
			{"codigo": "00001", "producto": "Soap", "referencia": "", "categoria": "Cleaning", "cantidad": "10", "precio": "1200.50"},
			{"codigo": "00002", "producto": "Broom", "referencia": "BR-2", "categoria": "Cleaning", "cantidad": "3", "precio": "15.00"},
		},
	}
}

func (t ImportTemplate) header() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

func WriteTemplateCSV(w io.Writer, t ImportTemplate) error {
	cw := csv.NewWriter(w)
	header := t.header()
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, sample := range t.SampleData {
		row := make([]string, len(header))
		for i, name := range header {
			row[i] = sample[name]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const instructionsSheet = "Instructions"

func WriteTemplateXLSX(w io.Writer, t ImportTemplate) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", productsSheet); err != nil {
		return err
	}

	header := t.header()
	required := map[string]bool{}
	for _, c := range t.Columns {
		required[c.Name] = c.Required
	}
	if err := writeHeader(f, productsSheet, header, required); err != nil {
		return err
	}
	for rowIdx, sample := range t.SampleData {
		for colIdx, name := range header {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellStr(productsSheet, cell, sample[name]); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet(instructionsSheet); err != nil {
		return err
	}
	_ = f.SetCellValue(instructionsSheet, "A1", "Product Import Instructions")
	_ = f.SetCellValue(instructionsSheet, "A3", "Column Definitions:")
	for i, c := range t.Columns {
		row := i + 4
		req := "Optional"
		if c.Required {
			req = "Required"
		}
		values := []any{c.Name, c.Description, req, c.Type, c.Example}
		if err := f.SetSheetRow(instructionsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(instructionsSheet, "A", "A", 20)
	_ = f.SetColWidth(instructionsSheet, "B", "B", 60)

	idx, err := f.GetSheetIndex(productsSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	_, err = f.WriteTo(w)
	return err
}
