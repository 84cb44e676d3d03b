// Package server exposes the conversion pipeline over HTTP.
//
// Routes:
//
//	POST /v1/drill?format=drl|json&plated=true|false&flip_y=true|false
//	POST /v1/tools?plated=true|false
//	GET  /healthz
//
// Request bodies are circuit JSON documents. Every response carries an
// X-Request-Id header; errors are JSON objects of the form
// {"error": code, "message": text, "request_id": id}.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pcbdrill/pkg/drill"
	"github.com/matzehuels/pcbdrill/pkg/pipeline"
)

// MaxBodySize bounds request bodies.
const MaxBodySize = 16 << 20

// Defaults are the conversion options applied when a request omits them.
type Defaults struct {
	IncludePlated bool
	FlipY         bool
	Generator     string
}

// Server serves the HTTP API.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New creates a server listening on addr.
func New(addr string, runner *pipeline.Runner, defaults Defaults, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if defaults.Generator == "" {
		defaults.Generator = drill.DefaultGenerator
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           newRouter(&handler{runner: runner, defaults: defaults, logger: logger}),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
