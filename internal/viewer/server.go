package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/sysdc/internal/ctxlog"
	"github.com/specialistvlad/sysdc/internal/graphstore"
	"github.com/specialistvlad/sysdc/internal/name"
)

// MsgpackContentType is the media type of the /system response.
const MsgpackContentType = "application/vnd.msgpack"

// Server serves the current snapshot of a store over HTTP.
type Server struct {
	store      *graphstore.Store
	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a server reading from store.
func NewServer(store *graphstore.Store) *Server {
	return &Server{store: store}
}

// Handler returns the routing table. It is exposed for tests.
func (s *Server) Handler(ctx context.Context) http.Handler {
	logger := ctxlog.FromContext(ctx)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})
	mux.HandleFunc("GET /system", func(w http.ResponseWriter, r *http.Request) {
		snap := s.store.Current()
		if snap == nil {
			http.Error(w, "no system resolved yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", MsgpackContentType)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(snap.Encoded); err != nil {
			logger.Debug("Failed to write system response.", "error", err)
		}
	})
	mux.HandleFunc("GET /flow", func(w http.ResponseWriter, r *http.Request) {
		s.serveFlow(ctx, w, r)
	})
	return mux
}

func (s *Server) serveFlow(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(ctx)
	snap := s.store.Current()
	if snap == nil {
		http.Error(w, "no system resolved yet", http.StatusServiceUnavailable)
		return
	}

	graph := snap.SystemGraph()
	if raw := r.URL.Query().Get("function"); raw != "" {
		fn, err := name.Parse(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		g, ok := snap.FunctionGraph(fn)
		if !ok {
			http.Error(w, fmt.Sprintf("function %q not found", raw), http.StatusNotFound)
			return
		}
		graph = g
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(graph); err != nil {
		logger.Debug("Failed to write flow response.", "error", err)
	}
}

// Start binds addr and serves in the background. Use port 0 to pick a free
// port; Addr reports the bound address.
func (s *Server) Start(ctx context.Context, addr string) error {
	logger := ctxlog.FromContext(ctx)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("🔎 Query server starting", "address", "http://"+ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Query server failed unexpectedly", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if s.httpServer == nil {
		logger.Debug("Query server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	logger.Info("🔎 Shutting down query server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Query server shutdown failed", "error", err)
		return err
	}
	logger.Debug("Query server shut down gracefully.")
	return nil
}
