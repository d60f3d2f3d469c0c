// Package health serves liveness, readiness, and Prometheus metrics
// endpoints on a listener separate from the MCP transport.
package health

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server is the observability HTTP server.
type Server struct {
	addr   string
	server *http.Server
	log    zerolog.Logger
}

// NewServer creates an observability server bound to addr.
func NewServer(addr string, log zerolog.Logger) *Server {
	return &Server{addr: addr, log: log}
}

// Handler returns the route table; exposed so tests can drive it
// without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Start blocks serving until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	s.log.Info().Str("addr", s.addr).Msg("observability server listening")
	return s.server.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "READY")
}
