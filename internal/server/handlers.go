package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	docfill "github.com/alnah/go-docfill"
	"github.com/alnah/go-docfill/internal/fileutil"
	"github.com/alnah/go-docfill/internal/templates"
)

// downloadName is the base name of generated files.
const downloadName = "contract"

type templatesResponse struct {
	Templates []string `json:"templates"`
}

type placeholdersResponse struct {
	Placeholders []string `json:"placeholders"`
}

// listTemplates handles GET /api/templates.
func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	if s.store != nil {
		list, err := s.store.List()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		names = list
	}
	writeJSON(w, http.StatusOK, templatesResponse{Templates: names})
}

// downloadTemplate handles GET /api/template/{name}.
func (s *Server) downloadTemplate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if s.store == nil {
		s.writeError(w, r, docfill.StoreError(templates.ErrTemplateNotFound))
		return
	}
	path, err := s.store.Path(name)
	if err != nil {
		s.writeError(w, r, docfill.StoreError(err))
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(name))
	http.ServeFile(w, r, path)
}

// upload handles POST /api/upload: it lists the placeholders of the
// uploaded template.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	path, cleanup, err := s.stageUpload(w, r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	defer cleanup()

	tokens, err := s.renderer.ListTokens(r.Context(), path)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, placeholdersResponse{Placeholders: tokens})
}

// generate handles POST /api/generate: it fills the uploaded template with
// the "values" JSON object and returns it in "outputFormat".
func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	path, cleanup, err := s.stageUpload(w, r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	defer cleanup()

	values, err := docfill.ParseValues([]byte(r.FormValue("values")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	target, err := docfill.ParseFormat(r.FormValue("outputFormat"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.renderer.Render(r.Context(), path, values, target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", res.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+downloadName+"."+res.Extension())
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, bytes.NewReader(res.Data)); err != nil {
		s.log.Warn().Err(err).Msg("writing response failed")
	}
}

// stageUpload copies the multipart "template" file to a uniquely named
// file in the upload dir. The returned cleanup removes it.
func (s *Server) stageUpload(w http.ResponseWriter, r *http.Request) (string, func(), error) {
	if r.ContentLength > s.cfg.MaxUploadBytes {
		return "", nil, fmt.Errorf("%w: %d bytes", errBodyTooLarge, s.cfg.MaxUploadBytes)
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, fmt.Errorf("%w: %d bytes", errBodyTooLarge, tooLarge.Limit)
		}
		return "", nil, fmt.Errorf("%w: %v", errNoFile, err)
	}

	file, header, err := r.FormFile("template")
	if err != nil {
		return "", nil, errNoFile
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !templates.HasTemplateExt(ext) {
		return "", nil, fmt.Errorf("%w: %q", errUnsupported, header.Filename)
	}

	path := filepath.Join(s.cfg.UploadDir, fileutil.UniqueName(ext))
	if err := saveUpload(path, file); err != nil {
		return "", nil, err
	}
	cleanup := func() {
		if err := fileutil.RemoveIfExists(path); err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("removing upload failed")
		}
	}
	return path, cleanup, nil
}

func saveUpload(path string, src multipart.File) error {
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) // #nosec G304 -- generated name
	if err != nil {
		return fmt.Errorf("staging upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("staging upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("staging upload: %w", err)
	}
	return nil
}
