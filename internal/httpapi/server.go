// Package httpapi serves the cipher registry over JSON HTTP.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab/logging"
)

// Options configures a Server. Zero values fall back to the defaults noted
// on each field.
type Options struct {
	Listen string

	// MaxBodyBytes caps request bodies. Default 64 KiB.
	MaxBodyBytes int64

	ReadTimeout     time.Duration // default 10s
	WriteTimeout    time.Duration // default 10s
	ShutdownTimeout time.Duration // default 5s

	// Logger defaults to logging.New(nil).
	Logger logging.Logger

	// Registry receives the server's collectors and backs /metrics. A fresh
	// registry is created when nil.
	Registry *prometheus.Registry
}

// Server is the HTTP front end. Handlers are stateless apart from metrics.
type Server struct {
	opts    Options
	logger  logging.Logger
	metrics *metrics
	handler http.Handler
}

// New builds a Server and its route table.
func New(opts Options) (*Server, error) {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 64 << 10
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.New(nil)
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	m, err := newMetrics(opts.Registry)
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:    opts,
		logger:  opts.Logger.With("component", "httpapi"),
		metrics: m,
	}
	s.handler = corsMiddleware(s.routes())
	return s, nil
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.observe)

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Legacy single-cipher endpoint.
	router.HandleFunc("/api/sdes", s.handleSDESBanner).Methods(http.MethodGet)
	router.HandleFunc("/api/sdes", s.handleSDESEncrypt).Methods(http.MethodPost)
	router.HandleFunc("/api/sdes/defaults", s.handleSDESDefaults).Methods(http.MethodGet)

	router.HandleFunc("/api/ciphers", s.handleListCiphers).Methods(http.MethodGet)
	router.HandleFunc("/api/ciphers/{cipher}/{op:encrypt|decrypt}", s.handleCipher).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" not allowed on "+r.URL.Path)
	})
	return router
}

// Handler returns the root handler, including CORS handling.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on Options.Listen and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.opts.Listen)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within Options.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info(gctx, "listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		s.logger.Info(shutdownCtx, "shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// corsMiddleware allows browser callers from any origin and answers
// preflight requests directly.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
