package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	apperrors "github.com/agbru/checked/internal/errors"
	"github.com/agbru/checked/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server exposes a Prometheus registry on /metrics.
type Server struct {
	metrics *Prometheus
	logger  logging.Logger
	srv     *http.Server
}

// NewServer creates a metrics server listening on addr.
func NewServer(addr string, metrics *Prometheus, logger logging.Logger) *Server {
	s := &Server{metrics: metrics, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", securityHeaders(s.handleMetrics))
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Start listens on the configured address and serves in the background
// until ctx is done. It returns the bound address, which differs from the
// configured one when port 0 is used.
func (s *Server) Start(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return "", apperrors.WrapError(err, "metrics server")
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server stopped", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("metrics server shutdown", err)
		}
	}()

	addr := ln.Addr().String()
	s.logger.Info("serving metrics", logging.String("addr", addr))
	return addr, nil
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
	}
	s.metrics.ServeHTTP(w, r)
}

func securityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next(w, r)
	}
}
