package ingest

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rogerio-castellano/pos-dashboard/internal/models"
)

// Issue describes a dropped row.
type Issue struct {
	Row    int    `json:"row"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason"`
}

// Validation is the outcome of filtering normalized records.
type Validation struct {
	Accepted []models.Product
	Dropped  []Issue
	// Duplicates counts earlier rows overwritten by a later row with the same code.
	Duplicates int
}

// Validator drops records that lack an identity and collapses duplicate
// codes so that the last row in the file wins.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Validator) Validate(recs []Record) Validation {
	var out Validation
	index := map[string]int{}

	for _, rec := range recs {
		if reason := v.check(rec.Product); reason != "" {
			out.Dropped = append(out.Dropped, Issue{Row: rec.Row, Code: rec.Product.Code, Reason: reason})
			continue
		}
		if i, ok := index[rec.Product.Code]; ok {
			out.Accepted[i] = rec.Product
			out.Duplicates++
			continue
		}
		index[rec.Product.Code] = len(out.Accepted)
		out.Accepted = append(out.Accepted, rec.Product)
	}
	return out
}

func (v *Validator) check(p models.Product) string {
	err := v.validate.Struct(p)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = strings.ToLower(fe.Field()) + " " + fe.Tag()
	}
	return strings.Join(fields, ", ")
}
