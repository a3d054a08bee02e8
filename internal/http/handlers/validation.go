package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/pos-dashboard/internal/ingest"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func droppedRowErrors(issues []ingest.Issue) []ProductValidationError {
	errs := []ProductValidationError{}
	for _, is := range issues {
		desc := fmt.Sprintf("row %d: %s", is.Row, is.Reason)
		if is.Code != "" {
			desc = fmt.Sprintf("row %d (code %s): %s", is.Row, is.Code, is.Reason)
		}
		errs = append(errs, ProductValidationError{Field: "row", Description: desc})
	}
	return errs
}

// importErrorResponse maps a pipeline failure to its HTTP status and body.
func importErrorResponse(err error) (int, ErrorResponse) {
	var ie *ingest.Error
	if !errors.As(err, &ie) {
		return http.StatusInternalServerError, ErrorResponse{Error: "Internal", Message: "import failed, no changes made"}
	}

	resp := ErrorResponse{
		Error:   ie.Kind.String(),
		Message: ie.Message(),
		Stage:   ie.Stage.String(),
		Columns: ie.Columns,
		Dropped: ie.Dropped,
	}
	for _, f := range ie.Missing {
		resp.Missing = append(resp.Missing, string(f))
	}

	switch ie.Kind {
	case ingest.KindUnreadableFormat:
		return http.StatusUnsupportedMediaType, resp
	case ingest.KindMissingRequiredColumns, ingest.KindEmptyResultSet:
		return http.StatusUnprocessableEntity, resp
	default:
		return http.StatusInternalServerError, resp
	}
}
