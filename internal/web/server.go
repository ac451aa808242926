// Package web serves the league recap form and its JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/omarshaarawi/recapbot/internal/models"
	"github.com/omarshaarawi/recapbot/internal/service"
	"github.com/rs/cors"
)

//go:embed templates/*.html
var templateFS embed.FS

// LeagueService is the pipeline behind every button.
type LeagueService interface {
	TeamNames(ctx context.Context, creds models.LeagueCredentials) ([]string, error)
	Recap(ctx context.Context, creds models.LeagueCredentials) (*models.Result, error)
	Analyze(ctx context.Context, creds models.LeagueCredentials, teamName string) (*models.Result, error)
}

type Server struct {
	svc  LeagueService
	tmpl *template.Template
	r    *chi.Mux
}

func NewServer(svc LeagueService, corsOrigins []string) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{svc: svc, tmpl: tmpl, r: chi.NewRouter()}

	s.r.Use(middleware.RequestID)
	s.r.Use(requestLogger)
	s.r.Use(middleware.Recoverer)

	s.r.Get("/", s.handleIndex)
	s.r.Post("/teams", s.handleLoadTeams)
	s.r.Post("/generate", s.handleGenerate)
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}).Handler)
		r.Post("/teams", s.apiTeams)
		r.Post("/recap", s.apiRecap)
		r.Post("/analysis", s.apiAnalysis)
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.r.ServeHTTP(w, r)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// errorStatus maps pipeline errors onto HTTP status codes. Anything not
// caused by the user's input is an upstream failure.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrMissingInput), errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTeamNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func defaultYear() string {
	return strconv.Itoa(time.Now().Year())
}
