package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	kerrors "github.com/matzehuels/keymapfmt/pkg/errors"
	"github.com/matzehuels/keymapfmt/pkg/pipeline"
	"github.com/matzehuels/keymapfmt/pkg/syntax"
)

// generateResponse is the body of /api/v1/generate.
type generateResponse struct {
	SVG    string `json:"svg"`
	Keymap string `json:"keymap"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code     kerrors.Code `json:"code"`
	Error    string       `json:"error"`
	Line     int          `json:"line,omitempty"`
	Column   int          `json:"column,omitempty"`
	Expected []string     `json:"expected,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok\n")
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatQMK)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	f := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(f); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveArtifact(w, r, f)
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, f string) {
	result, err := s.run(r, f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(f))
	if result.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[f])
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	result, err := s.run(r, pipeline.FormatSVG, pipeline.FormatQMK)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{
		SVG:    string(result.Artifacts[pipeline.FormatSVG]),
		Keymap: string(result.Artifacts[pipeline.FormatQMK]),
	})
}

// run reads the request body and executes the pipeline for formats.
func (s *Server) run(r *http.Request, formats ...string) (*pipeline.Result, error) {
	opts, err := s.options(r)
	if err != nil {
		return nil, err
	}
	opts.Formats = formats

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "read request body")
	}
	return s.runner.Execute(r.Context(), string(body), opts)
}

var errBodyTooLarge = kerrors.New(kerrors.ErrCodeInvalidInput, "request body too large")

// options overlays the request's query parameters on the server defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.cfg.Defaults
	opts.Logger = s.logger
	q := r.URL.Query()

	ints := []struct {
		name string
		dst  *int
	}{
		{"thumb_shift_in", &opts.ThumbShiftIn},
		{"number_of_thumbs", &opts.NumberOfThumbs},
		{"split_space", &opts.SplitSpace},
	}
	for _, p := range ints {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, kerrors.New(kerrors.ErrCodeInvalidOptions, "invalid %s: %q", p.name, v)
			}
			*p.dst = n
		}
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"left_align", &opts.LeftAlign},
		{"align_layers", &opts.AlignLayers},
		{"humanize", &opts.Humanize},
	}
	for _, p := range bools {
		if v := q.Get(p.name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, kerrors.New(kerrors.ErrCodeInvalidOptions, "invalid %s: %q", p.name, v)
			}
			*p.dst = b
		}
	}

	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, kerrors.New(kerrors.ErrCodeInvalidOptions, "invalid scale: %q", v)
		}
		opts.Scale = f
	}

	return opts, nil
}

// statusCode maps an error code to an HTTP status.
func statusCode(err error) int {
	if errors.Is(err, errBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch kerrors.GetCode(err) {
	case kerrors.ErrCodeSyntax, kerrors.ErrCodeInvalidInput,
		kerrors.ErrCodeInvalidOptions, kerrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case kerrors.ErrCodeInvalidKeymap:
		return http.StatusUnprocessableEntity
	case kerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusCode(err)
	resp := errorResponse{
		Code:  kerrors.GetCode(err),
		Error: kerrors.UserMessage(err),
	}

	var se *syntax.SyntaxError
	if errors.As(err, &se) {
		resp.Error = se.Diagnostic()
		resp.Line = se.Line
		resp.Column = se.Column
		resp.Expected = se.Expected
	}

	if resp.Code == "" {
		resp.Code = kerrors.ErrCodeInternal
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		if status == http.StatusInternalServerError {
			resp.Error = "internal error"
		}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}
