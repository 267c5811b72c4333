package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridfit/pkg/buildinfo"
	"github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/geom"
	"github.com/matzehuels/gridfit/pkg/grid"
	"github.com/matzehuels/gridfit/pkg/observability"
	"github.com/matzehuels/gridfit/pkg/pipeline"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type gridsResponse struct {
	Grids []grid.InvariantSpec `json:"grids"`
}

// multiWindowRequest is a device description plus the window to fit.
type multiWindowRequest struct {
	pipeline.Options
	Window geom.Point `json:"window"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleListGrids(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gridsResponse{Grids: grid.Presets()})
}

func (s *Server) handleGetGrid(w http.ResponseWriter, r *http.Request) {
	spec, err := grid.Preset(chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if !s.decode(w, r, &opts) {
		return
	}
	opts.Logger = s.logger

	res, err := s.runner.ResolveWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMultiWindow(w http.ResponseWriter, r *http.Request) {
	var req multiWindowRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.Options.Logger = s.logger

	res, err := s.runner.MultiWindow(r.Context(), req.Options, req.Window)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// decode reads a JSON body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, string(errors.ErrCodeInvalidInput), "request body too large")
			return false
		}
		writeError(w, r, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "invalid request body: "+err.Error())
		return false
	}
	return true
}

// fail maps a coded error to an HTTP status.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestIDFrom(r.Context()))
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeError(w, r, status, string(code), errors.UserMessage(err))
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSpec, errors.ErrCodeInvalidMetrics,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code, RequestID: RequestIDFrom(r.Context())})
}
