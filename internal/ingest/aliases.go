package ingest

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Field is a canonical column of the product schema.
type Field string

const (
	FieldName      Field = "producto"
	FieldReference Field = "referencia"
	FieldCode      Field = "codigo"
	FieldQuantity  Field = "cantidad"
	FieldPrice     Field = "precio"
	FieldCategory  Field = "categoria"
)

var canonicalFields = []Field{FieldName, FieldReference, FieldCode, FieldQuantity, FieldPrice, FieldCategory}

// Columns a file must provide; quantity and price fall back to zero.
var requiredFields = []Field{FieldName, FieldCode}

// Aliases maps a normalized source header to its canonical field.
// Canonical names always resolve to themselves and need no entry.
type Aliases map[string]Field

func DefaultAliases() Aliases {
	return Aliases{
		"nombre": FieldName,
		"refer":  FieldReference,
		"q_fin":  FieldQuantity,
		"pvta1i": FieldPrice,
	}
}

// With returns a copy extended by extra (source header -> canonical field
// name). Targets must be canonical field names.
func (a Aliases) With(extra map[string]string) (Aliases, error) {
	out := maps.Clone(a)
	if out == nil {
		out = Aliases{}
	}
	for src, target := range extra {
		f, ok := canonicalField(normalizeHeader(target))
		if !ok {
			return nil, fmt.Errorf("alias %q targets unknown field %q", src, target)
		}
		out[normalizeHeader(src)] = f
	}
	return out, nil
}

// Resolve maps a raw header to its field. The bool reports whether the header
// is the canonical name itself rather than an alias.
func (a Aliases) Resolve(header string) (f Field, canonical bool, ok bool) {
	h := normalizeHeader(header)
	if f, ok := canonicalField(h); ok {
		return f, true, true
	}
	f, ok = a[h]
	return f, false, ok
}

// Recognizes reports whether any header cell maps to a known field.
func (a Aliases) Recognizes(header []string) bool {
	for _, h := range header {
		if _, _, ok := a.Resolve(h); ok {
			return true
		}
	}
	return false
}

// ByField inverts the table: canonical field name to its sorted aliases.
func (a Aliases) ByField() map[string][]string {
	out := map[string][]string{}
	for src, f := range a {
		out[string(f)] = append(out[string(f)], src)
	}
	for _, srcs := range out {
		slices.Sort(srcs)
	}
	return out
}

func canonicalField(h string) (Field, bool) {
	for _, f := range canonicalFields {
		if string(f) == h {
			return f, true
		}
	}
	return "", false
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
