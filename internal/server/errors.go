package server

import (
	"encoding/json"
	"errors"
	"net/http"

	docfill "github.com/alnah/go-docfill"
)

var (
	errNoFile       = errors.New("no file uploaded")
	errUnsupported  = errors.New("unsupported file type")
	errBodyTooLarge = errors.New("upload exceeds size limit")
)

type errorResponse struct {
	Error  string               `json:"error"`
	Fields []docfill.FieldError `json:"fields,omitempty"`
}

// statusFor maps pipeline errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, docfill.ErrUnsupportedFormat),
		errors.Is(err, docfill.ErrInvalidValues):
		return http.StatusBadRequest
	case errors.Is(err, docfill.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, docfill.ErrTemplateRender),
		errors.Is(err, docfill.ErrConversion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, docfill.ErrRenderEngineUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}
	var e *docfill.Error
	if errors.As(err, &e) {
		resp.Fields = e.Fields
	}

	ev := s.log.Warn()
	if status >= http.StatusInternalServerError {
		ev = s.log.Error()
	}
	ev.Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")

	writeJSON(w, status, resp)
}

// writeRequestError answers errors found before the pipeline runs.
func (s *Server) writeRequestError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBodyTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, errNoFile), errors.Is(err, errUnsupported):
		status = http.StatusBadRequest
	default:
		s.log.Error().Err(err).Msg("staging request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
