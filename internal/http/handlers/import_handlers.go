package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/rogerio-castellano/pos-dashboard/internal/export"
)

// upload reads the multipart file or writes the 4xx response and returns false.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	filename, data, err := s.readUpload(w, r)
	if errors.Is(err, errUploadTooLarge) {
		s.fail(w, http.StatusRequestEntityTooLarge, "UploadTooLarge", "file exceeds the upload size limit")
		return "", nil, false
	}
	if err != nil {
		s.fail(w, http.StatusBadRequest, "MissingFile", "missing file")
		return "", nil, false
	}
	return filename, data, true
}

// ImportProductsHandler godoc
// @Summary Replace the product collection with an uploaded file
// @Description Accepts .csv (any of the configured encodings and delimiters), .xls and .xlsx. The stored collection is replaced atomically; on failure it is left untouched.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Product file"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {object} ErrorResponse "Missing file"
// @Failure 413 {object} ErrorResponse "File too large"
// @Failure 415 {object} ErrorResponse "Unreadable format"
// @Failure 422 {object} ErrorResponse "Missing required columns or no valid rows"
// @Failure 500 {object} ErrorResponse "Store commit failure"
// @Router /products/import [post]
func (s *Server) ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.upload(w, r)
	if !ok {
		return
	}

	report, err := s.importer.Import(r.Context(), filename, data)
	if err != nil {
		status, resp := importErrorResponse(err)
		s.respond(w, status, resp)
		return
	}

	s.respond(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: report.Imported,
		Errors:                droppedRowErrors(report.Dropped),
		Report:                report,
	})
}

// PreviewImportHandler godoc
// @Summary Dry-run an import
// @Description Runs detection, mapping, normalization and validation without touching the stored collection.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Product file"
// @Success 200 {object} PreviewProductsResult
// @Failure 400 {object} ErrorResponse "Missing file"
// @Failure 415 {object} ErrorResponse "Unreadable format"
// @Failure 422 {object} ErrorResponse "Missing required columns or no valid rows"
// @Router /products/import/preview [post]
func (s *Server) PreviewImportHandler(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.upload(w, r)
	if !ok {
		return
	}

	pv, err := s.importer.Preview(r.Context(), filename, data)
	if err != nil {
		status, resp := importErrorResponse(err)
		s.respond(w, status, resp)
		return
	}

	s.respond(w, http.StatusOK, PreviewProductsResult{
		ImportProductsResult: ImportProductsResult{
			ImportedProductsCount: pv.Report.Imported,
			Errors:                droppedRowErrors(pv.Report.Dropped),
			Report:                pv.Report,
		},
		Products: toProductResponses(pv.Products),
	})
}

// ImportTemplateHandler godoc
// @Summary Import template
// @Tags import
// @Produce json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "json (default), csv or xlsx"
// @Success 200 {object} export.ImportTemplate
// @Failure 500 {object} ErrorResponse
// @Router /products/import/template [get]
func (s *Server) ImportTemplateHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := export.ProductTemplate(s.templateAliases)

	var (
		buf    bytes.Buffer
		err    error
		format export.Format
	)
	switch r.URL.Query().Get("format") {
	case "csv":
		format = export.FormatCSV
		err = export.WriteTemplateCSV(&buf, tmpl)
	case "xlsx":
		format = export.FormatXLSX
		err = export.WriteTemplateXLSX(&buf, tmpl)
	default:
		s.respond(w, http.StatusOK, tmpl)
		return
	}
	if err != nil {
		s.log.WithError(err).Error("failed to build import template")
		s.fail(w, http.StatusInternalServerError, "Internal", "could not build template")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+format.Filename("products_import_template"))
	_, _ = w.Write(buf.Bytes())
}
