package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/adtool/pkg/domain/interfaces"
	"github.com/secmon-lab/adtool/pkg/usecase"
	"github.com/secmon-lab/adtool/pkg/utils/logging"
)

// UseCase is the part of the use case layer served over HTTP
type UseCase interface {
	Validate(ctx context.Context, input usecase.ValidateInput) (*usecase.ValidateResult, error)
	Build(ctx context.Context, input usecase.BuildInput) (*usecase.BuildResult, error)
	ValidateAll(ctx context.Context) ([]usecase.ArchitectureSummary, error)
}

type Server struct {
	router    *chi.Mux
	uc        UseCase
	store     interfaces.SpecStore
	outputDir string
	defaults  func(architectureID string) usecase.BuildInput
}

type Options func(*Server)

// WithOutputDir sets the directory receiving build outputs
func WithOutputDir(dir string) Options {
	return func(s *Server) {
		s.outputDir = dir
	}
}

// WithBuildDefaults sets the base build input of every build request.
// SpecDir and the output paths are always filled in by the server.
func WithBuildDefaults(f func(architectureID string) usecase.BuildInput) Options {
	return func(s *Server) {
		s.defaults = f
	}
}

func New(uc UseCase, store interfaces.SpecStore, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:    r,
		uc:        uc,
		store:     store,
		outputDir: "build",
		defaults:  func(string) usecase.BuildInput { return usecase.BuildInput{} },
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api/architectures", func(r chi.Router) {
		r.Get("/", s.listArchitecturesHandler)
		r.Route("/{architectureID}", func(r chi.Router) {
			r.Get("/spec/{entity}", s.getEntityHandler)
			r.Put("/spec/{entity}", s.putEntityHandler)
			r.Post("/validate", s.validateHandler)
			r.Post("/build", s.buildHandler)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
