package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/pos-dashboard/internal/models"
)

// Record is a normalized product with the source row it came from.
type Record struct {
	Row     int
	Product models.Product
}

// Normalizer coerces mapped text into typed product fields. It never fails:
// unparseable numbers become zero.
type Normalizer struct {
	// CodeWidth is the zero-padded width of legacy numeric codes; 0 disables padding.
	CodeWidth int
}

func (n Normalizer) Normalize(rec RawRecord) Record {
	return Record{
		Row: rec.Row,
		Product: models.Product{
			Code:      n.NormalizeCode(rec.Values[FieldCode]),
			Name:      strings.TrimSpace(rec.Values[FieldName]),
			Reference: strings.TrimSpace(rec.Values[FieldReference]),
			Category:  strings.TrimSpace(rec.Values[FieldCategory]),
			Quantity:  ParseQuantity(rec.Values[FieldQuantity]),
			Price:     ParsePrice(rec.Values[FieldPrice]),
		},
	}
}

func (n Normalizer) NormalizeAll(recs []RawRecord) []Record {
	out := make([]Record, len(recs))
	for i, rec := range recs {
		out[i] = n.Normalize(rec)
	}
	return out
}

// spreadsheets render integral codes as floats, e.g. "42.0"
var floatCode = regexp.MustCompile(`^\d+\.0+$`)

// NormalizeCode trims the code and left-pads it with zeros up to CodeWidth.
// Longer codes are kept whole.
func (n Normalizer) NormalizeCode(s string) string {
	code := strings.TrimSpace(s)
	if floatCode.MatchString(code) {
		code = code[:strings.IndexByte(code, '.')]
	}
	if code == "" || n.CodeWidth <= 0 {
		return code
	}
	if pad := n.CodeWidth - utf8.RuneCountInString(code); pad > 0 {
		code = strings.Repeat("0", pad) + code
	}
	return code
}

// stripNumeric keeps digits, '.' and '-'.
func stripNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var (
	minQuantity = decimal.NewFromInt(math.MinInt)
	maxQuantity = decimal.NewFromInt(math.MaxInt)
)

// ParseQuantity returns the integer quantity in s, or 0. Fractions are
// truncated toward zero. Values outside the int range also yield 0.
func ParseQuantity(s string) int {
	clean := stripNumeric(s)
	if clean == "" {
		return 0
	}
	if v, err := strconv.Atoi(clean); err == nil {
		return v
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0
	}
	d = d.Truncate(0)
	if d.LessThan(minQuantity) || d.GreaterThan(maxQuantity) {
		return 0
	}
	return int(d.IntPart())
}

// ParsePrice returns the non-negative price in s rounded to cents, or 0.
func ParsePrice(s string) decimal.Decimal {
	clean := stripNumeric(s)
	if clean == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(clean)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}
