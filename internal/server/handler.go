package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pcbdrill/pkg/buildinfo"
	"github.com/matzehuels/pcbdrill/pkg/drill"
	"github.com/matzehuels/pcbdrill/pkg/errors"
	"github.com/matzehuels/pcbdrill/pkg/observability"
	"github.com/matzehuels/pcbdrill/pkg/pipeline"
)

type handler struct {
	runner   *pipeline.Runner
	defaults Defaults
	logger   *log.Logger
}

type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

type healthBody struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type toolsBody struct {
	Tools    []drill.ToolUsage `json:"tools"`
	Skipped  int               `json:"skipped"`
	Elements int               `json:"elements"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Version: buildinfo.Version})
}

func (h *handler) convert(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatDrill
	}
	res, ok := h.execute(w, r, format)
	if !ok {
		return
	}

	switch format {
	case pipeline.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (h *handler) listTools(w http.ResponseWriter, r *http.Request) {
	res, ok := h.execute(w, r, pipeline.FormatDrill)
	if !ok {
		return
	}
	tools := res.Tools
	if tools == nil {
		tools = []drill.ToolUsage{}
	}
	writeJSON(w, http.StatusOK, toolsBody{
		Tools:    tools,
		Skipped:  res.Skipped,
		Elements: res.Stats.ElementCount,
	})
}

// execute reads the body, runs the pipeline and sets X-Cache. On failure it
// writes the error response and returns false.
func (h *handler) execute(w http.ResponseWriter, r *http.Request, format string) (*pipeline.Result, bool) {
	opts, err := h.options(r, format)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			err = errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", MaxBodySize)
		} else {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
		}
		writeError(w, r, err)
		return nil, false
	}

	res, err := h.runner.Execute(r.Context(), body, opts)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}

	if res.CacheInfo.Hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	return res, true
}

// options builds pipeline options from the query string over h.defaults.
func (h *handler) options(r *http.Request, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		IncludePlated: h.defaults.IncludePlated,
		FlipY:         h.defaults.FlipY,
		Generator:     h.defaults.Generator,
		Formats:       []string{format},
		Logger:        h.logger.With("request_id", RequestIDFrom(r.Context())),
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}

	var err error
	if opts.IncludePlated, err = boolParam(q.Get("plated"), opts.IncludePlated, "plated"); err != nil {
		return opts, err
	}
	if opts.FlipY, err = boolParam(q.Get("flip_y"), opts.FlipY, "flip_y"); err != nil {
		return opts, err
	}
	opts.Refresh, err = boolParam(q.Get("refresh"), false, "refresh")
	return opts, err
}

func boolParam(v string, def bool, name string) (bool, error) {
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q (must be true or false)", name, v)
	}
	return b, nil
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeJSON(w, status, errorBody{Error: code, Message: msg, RequestID: RequestIDFrom(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
