// Package api serves a small local HTTP API over the rename engine so other
// front ends can list additions, preview plans, and submit renames.
package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Nomadcxx/bakus/internal/bakus"
	"github.com/Nomadcxx/bakus/internal/config"
	"github.com/Nomadcxx/bakus/internal/database"
	"github.com/Nomadcxx/bakus/internal/logging"
	"github.com/Nomadcxx/bakus/internal/rename"
)

// Remote is the part of the Bakus server client the API needs
type Remote interface {
	Additions(ctx context.Context) ([]bakus.Addition, error)
	Addition(ctx context.Context, id string) (*bakus.Addition, error)
	RenameAddition(ctx context.Context, req rename.RenameRequest) error
}

// Server implements the API
type Server struct {
	store  *database.Store
	remote Remote
	cfg    *config.Config
	log    *logging.Component
}

// NewServer creates a new API server
func NewServer(store *database.Store, remote Remote, cfg *config.Config, logger *logging.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		store:  store,
		remote: remote,
		cfg:    cfg,
		log:    logger.With("api"),
	}
}

// Handler returns the HTTP handler with CORS and the API routes
func (s *Server) Handler() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.API.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/api/v1", s.apiRouter())

	return r
}

func (s *Server) apiRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.SetHeader("Content-Type", "application/json"))
	r.Use(s.authMiddleware)

	r.Get("/health", s.GetHealth)
	r.Get("/additions", s.GetAdditions)
	r.Post("/additions/{id}/plan", s.PostPlan)
	r.Post("/additions/{id}/rename", s.PostRename)
	r.Get("/history", s.GetHistory)

	return r
}

// AuthEnabled reports whether requests must carry the API token
func (s *Server) AuthEnabled() bool {
	return s.cfg.API.Token != ""
}

// authMiddleware requires "Authorization: Bearer <api.token>" when a token is configured
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.AuthEnabled() || strings.HasSuffix(r.URL.Path, "/health") {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.API.Token)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			logging.F("method", r.Method),
			logging.F("path", r.URL.Path),
			logging.F("status", ww.Status()),
			logging.F("duration", time.Since(start).String()),
			logging.F("request_id", middleware.GetReqID(r.Context())))
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", logging.F("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
