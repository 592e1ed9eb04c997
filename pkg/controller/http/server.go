package http

import (
	"net/http"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/usecase"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router  *chi.Mux
	uc      *usecase.UseCases
	timeout time.Duration
}

type Options func(*Server)

// WithRequestTimeout bounds the handling time of API requests
func WithRequestTimeout(d time.Duration) Options {
	return func(s *Server) {
		s.timeout = d
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(requestLogger)
		r.Use(debugLogger)
		if s.timeout > 0 {
			r.Use(middleware.Timeout(s.timeout))
		}

		r.Route("/hubstaff", func(r chi.Router) {
			r.Post("/project-activity", projectActivityHandler(uc))
			r.Post("/qa-report", qaReportHandler(uc))
			r.Get("/cache", cacheStatusHandler(uc))
			r.Post("/cache/invalidate", cacheInvalidateHandler(uc))
		})

		r.Get("/projects", listProjectsHandler(uc))
		r.Put("/projects", putProjectHandler(uc))

		r.Get("/tasks", listTasksHandler(uc))
		r.Put("/tasks", putTaskHandler(uc))
		r.Delete("/tasks/{taskID}", deleteTaskHandler(uc))

		r.Get("/leaves", listLeavesHandler(uc))
		r.Post("/leaves", recordLeaveHandler(uc))
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
			logging.Default().Info("access",
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
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
