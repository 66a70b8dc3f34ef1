package server

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Surya0265/CareerNav/internal/ingestion"
)

// uploadField is the multipart field holding the resume file.
const uploadField = "resume"

// readUpload reads the resume file from a multipart request and ingests it.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*ingestion.Document, error) {
	if r.ContentLength > s.maxUpload {
		return nil, &http.MaxBytesError{Limit: s.maxUpload}
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, &ErrValidation{Field: uploadField, Message: "No file provided"}
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, &ErrValidation{Field: uploadField, Message: "No file provided"}
	}
	defer func() { _ = file.Close() }()

	name := filepath.Base(strings.TrimSpace(header.Filename))
	if name == "" || name == "." {
		return nil, &ErrValidation{Field: uploadField, Message: "No file selected"}
	}
	if !ingestion.IsSupported(name) {
		return nil, &ingestion.UnsupportedFormatError{Extension: strings.ToLower(filepath.Ext(name))}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return ingestion.IngestFromBytes(name, data)
}
