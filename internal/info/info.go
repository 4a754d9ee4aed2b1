// Package info serves the informational status endpoint.
package info

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// statusResponse is the body of GET /status.
type statusResponse struct {
	Service              string `json:"service"`
	ForwardingConfigured bool   `json:"forwarding_configured"`
}

// Server reports whether a forwarding address is configured. It carries no
// message data and no parsing logic.
type Server struct {
	addr       string
	configured bool
}

// New creates a Server listening on addr.
func New(addr string, forwardingConfigured bool) *Server {
	return &Server{addr: addr, configured: forwardingConfigured}
}

// ListenAndServe runs the endpoint until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", s.handleStatus)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("info server shutdown error", "error", err)
		}
	}()

	slog.Info("info endpoint listening", "addr", s.addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(statusResponse{
		Service:              "mail-forward-lite",
		ForwardingConfigured: s.configured,
	})
}
