// Package preview serves the plugs root over HTTP for local inspection of
// generated scaffolds, with filesystem change watching and a prometheus
// metrics endpoint.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"

	founderr "github.com/ekim5sg/plugforge/internal/foundation/errors"
	"github.com/ekim5sg/plugforge/internal/logfields"
)

// Server serves a plugs directory and watches it for changes.
type Server struct {
	plugsDir string
	port     int
	metrics  *serverMetrics
}

// NewServer creates a preview server rooted at plugsDir.
func NewServer(plugsDir string, port int) *Server {
	return &Server{
		plugsDir: plugsDir,
		port:     port,
		metrics:  newServerMetrics(plugsDir),
	}
}

// Start runs the server until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	absDir, err := filepath.Abs(s.plugsDir)
	if err != nil {
		return founderr.PreviewError("failed to resolve plugs directory").
			WithCause(err).
			WithContext("path", s.plugsDir).
			Build()
	}
	if st, statErr := os.Stat(absDir); statErr != nil || !st.IsDir() {
		return founderr.PreviewError("plugs directory not found or not a directory").
			WithContext("path", absDir).
			Build()
	}

	watcher, err := s.setupWatcher(ctx, absDir)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.handler(absDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", logfields.Port(s.port), logfields.Path(absDir))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return founderr.PreviewError("preview server failed").
			WithCause(err).
			Build()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return founderr.PreviewError("failed to stop preview server").
			WithCause(err).
			Build()
	}

	slog.Info("Preview server stopped")
	return nil
}

// handler builds the HTTP mux: the plugs file tree at / and prometheus
// metrics at /metrics.
func (s *Server) handler(absDir string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	mux.Handle("/", s.withLogging(http.FileServer(http.Dir(absDir))))
	return mux
}

// withLogging records request counts and logs each request at debug level.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.metrics.requestsTotal.WithLabelValues(fmt.Sprintf("%d", recorder.status)).Inc()
		slog.Debug("Preview request",
			slog.String("method", r.Method),
			logfields.Path(r.URL.Path),
			slog.Int("status", recorder.status))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// setupWatcher watches the plugs root and its subdirectories, logging
// change events and counting them in the metrics registry.
func (s *Server) setupWatcher(ctx context.Context, absDir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, founderr.PreviewError("failed to create filesystem watcher").
			WithCause(err).
			Build()
	}

	walkErr := filepath.WalkDir(absDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && !strings.HasPrefix(d.Name(), ".") {
			return watcher.Add(path)
		}
		return nil
	})
	if walkErr != nil {
		_ = watcher.Close()
		return nil, founderr.PreviewError("failed to watch plugs directory").
			WithCause(walkErr).
			WithContext("path", absDir).
			Build()
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if shouldIgnoreEvent(event.Name) {
					continue
				}
				s.metrics.changesTotal.Inc()
				slog.Info("Plugs directory changed",
					logfields.Path(event.Name),
					slog.String("op", event.Op.String()))
				// Newly created directories get watched too
				if event.Op.Has(fsnotify.Create) {
					if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("Watcher error", logfields.Error(err))
			}
		}
	}()

	return watcher, nil
}

// shouldIgnoreEvent filters editor temp files and hidden paths.
func shouldIgnoreEvent(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return true
	}
	if strings.HasPrefix(name, "#") && strings.HasSuffix(name, "#") {
		return true
	}
	if strings.HasSuffix(name, ".swp") || strings.HasSuffix(name, "~") {
		return true
	}
	return false
}
