package server

import (
	"log/slog"
	"net/http"

	"github.com/KoBe1628/ai-fitness-tracker/internal/engine"
	"github.com/KoBe1628/ai-fitness-tracker/internal/notify"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	engine *engine.Engine
	feed   *notify.Feed
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(eng *engine.Engine, feed *notify.Feed, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		engine: eng,
		feed:   feed,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Pose ingest (API key required)
	s.router.Route("/api/v1/pose", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handlePoseFrame)
	})

	// Session control endpoints (no auth — tsnet handles access)
	s.router.Post("/api/v1/session/finish", s.handleFinishSet)
	s.router.Post("/api/v1/session/exercise", s.handleSelectExercise)
	s.router.Post("/api/v1/session/difficulty", s.handleSetDifficulty)
	s.router.Post("/api/v1/challenge/start", s.handleStartChallenge)
	s.router.Post("/api/v1/challenge/exit", s.handleExitChallenge)
	s.router.Post("/api/v1/routine/start", s.handleStartRoutine)
	s.router.Post("/api/v1/rest/skip", s.handleSkipRest)

	// Read endpoints
	s.router.Get("/api/v1/state", s.handleState)
	s.router.Get("/api/v1/progress", s.handleProgress)
	s.router.Get("/api/v1/history", s.handleHistory)
	s.router.Get("/api/v1/exercises", s.handleExercises)
	s.router.Get("/api/v1/notifications", s.handleNotifications)

	// Backup endpoints
	s.router.Get("/api/v1/export", s.handleExport)
	s.router.Post("/api/v1/import", s.handleImport)
}
