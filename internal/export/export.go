// Package export writes the product collection and the import template as
// CSV or Excel files. Every file it produces can be imported back.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rogerio-castellano/pos-dashboard/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename builds a download name such as "inventory_backup.csv".
func (f Format) Filename(base string) string {
	return base + "." + string(f)
}

// Header is the canonical column order of backups.
var Header = []string{"codigo", "producto", "referencia", "categoria", "cantidad", "precio"}

func productRow(p models.Product) []string {
	return []string{
		p.Code,
		p.Name,
		p.Reference,
		p.Category,
		strconv.Itoa(p.Quantity),
		p.Price.StringFixed(2),
	}
}

// Write dispatches on format.
func Write(w io.Writer, format Format, products []models.Product) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, products)
	default:
		return WriteCSV(w, products)
	}
}

func WriteCSV(w io.Writer, products []models.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range products {
		if err := cw.Write(productRow(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const productsSheet = "Products"

func WriteXLSX(w io.Writer, products []models.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", productsSheet); err != nil {
		return err
	}
	if err := writeHeader(f, productsSheet, Header, nil); err != nil {
		return err
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		// code stays text so leading zeros survive; numbers stay numeric
		row := []any{p.Code, p.Name, p.Reference, p.Category, p.Quantity, p.Price.InexactFloat64()}
		if err := f.SetSheetRow(productsSheet, cell, &row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func writeHeader(f *excelize.File, sheet string, header []string, required map[string]bool) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	requiredStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, name := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
		style := headerStyle
		if required[name] {
			style = requiredStyle
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, 18); err != nil {
			return err
		}
	}
	return nil
}
