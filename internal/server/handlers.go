package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/archexport/pkg/buildinfo"
	"github.com/matzehuels/archexport/pkg/diagram"
	"github.com/matzehuels/archexport/pkg/errors"
	"github.com/matzehuels/archexport/pkg/export"
	"github.com/matzehuels/archexport/pkg/source"
)

// exportRequest is the body of POST /v1/export/{format}. Options are
// decoded on top of the server defaults, so omitted fields keep them.
type exportRequest struct {
	Diagram *diagram.Diagram `json:"diagram"`
	Options json.RawMessage  `json:"options,omitempty"`
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Code    errors.Code    `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"formats": export.Formats()})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidData, err, "decode request body"))
		return
	}

	opts, err := s.options(req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.export(w, r, req.Diagram, &opts)
}

func (s *Server) handleSnapshotExport(w http.ResponseWriter, r *http.Request) {
	d, err := source.Load(r.Context(), s.provider, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.defaults
	s.export(w, r, d, &opts)
}

// export runs the exporter and writes the artifact or the error.
func (s *Server) export(w http.ResponseWriter, r *http.Request, d *diagram.Diagram, opts *export.Options) {
	format := export.Format(chi.URLParam(r, "format"))
	if f, err := export.ParseFormat(string(format)); err == nil {
		format = f
	}

	art, err := s.exporter.Export(r.Context(), d, format, opts, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentType(art.MediaType))
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": art.Filename}))
	h.Set("Content-Length", fmt.Sprint(art.Size()))
	h.Set("X-Archexport-Nodes", fmt.Sprint(art.Metadata.NodeCount))
	h.Set("X-Archexport-Edges", fmt.Sprint(art.Metadata.EdgeCount))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(art.Content)
}

// options decodes raw request options over the server defaults.
func (s *Server) options(raw json.RawMessage) (export.Options, error) {
	opts := s.defaults
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return opts, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return export.Options{}, errors.Wrap(errors.ErrCodeInvalidData, err, "decode export options")
	}
	return opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := errors.As(err)
	if !ok {
		e = errors.Wrap(errors.ErrCodeExportFailed, err, "request failed")
	}
	status := statusFor(e.Code)
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		s.logger.Error("request failed", "path", r.URL.Path, "code", e.Code, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", e.Code, "error", err)
	}
	writeJSON(w, status, errorResponse{Code: e.Code, Message: e.Message, Details: e.Details})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidData, errors.ErrCodeUnsupportedFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// contentType adds a UTF-8 charset to textual media types.
func contentType(mediaType string) string {
	switch mediaType {
	case "text/markdown", "application/json":
		return mediaType + "; charset=utf-8"
	}
	return mediaType
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
