// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the wiring layer — the composition root where every dependency
// is assembled in one place:
//
//	memory.Store → SignupService → FormHandler → routes
//
// main.go stays minimal (read config, start the server) and nothing else
// in the codebase knows how the pieces are constructed.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/signup-form/internal/handler"
	"github.com/sakif/signup-form/internal/middleware"
	"github.com/sakif/signup-form/internal/repository/memory"
	"github.com/sakif/signup-form/internal/service"
)

// Config holds server configuration as a single value so new options
// don't ripple through function signatures.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	SessionTTL  time.Duration // idle form sessions older than this are purged
}

// Server owns the router and the session store. The store needs no
// close/flush on shutdown (it is in-memory by design), but the janitor
// goroutine is stopped when Start returns.
type Server struct {
	router   *chi.Mux
	config   Config
	logger   *slog.Logger
	sessions *memory.Store
}

// New assembles the full dependency chain and registers all routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		sessions: memory.New(),
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// setupRoutes configures middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /                       → Signup form page (HTML)
//	GET    /static/*               → Static files (CSS, JS)
//	POST   /api/form               → Start/reset a form session (JSON)
//	GET    /api/form               → Current session state
//	POST   /api/form/techs         → Add a technology row
//	DELETE /api/form/techs/{index} → Remove a row
//	POST   /api/form/submit        → Validate and return the record
//	POST   /api/password/strength  → Advisory strength check
//
// Middleware order matters: RequestID and RealIP first so the logger and
// Recoverer see them.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Static files: GET /static/css/style.css → {StaticDir}/css/style.css
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	pageHandler, err := handler.NewPageHandler(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	s.router.Get("/", pageHandler.HandleSignupPage)

	// The handler never touches the store directly and the service never
	// touches HTTP — same separation as any larger app, kept because it
	// makes each layer testable on its own.
	signupService := service.NewSignupService(s.sessions, s.logger)
	formHandler := handler.NewFormHandler(signupService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/form", formHandler.HandleStart)
		r.Get("/form", formHandler.HandleGet)
		r.Post("/form/techs", formHandler.HandleAddTech)
		r.Delete("/form/techs/{index}", formHandler.HandleRemoveTech)
		r.Post("/form/submit", formHandler.HandleSubmit)
		r.Post("/password/strength", formHandler.HandleStrength)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for up
// to 30 seconds, stop the session janitor.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Janitor: purge idle form sessions so abandoned ones don't pile up.
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go s.runJanitor(janitorCtx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.Int("port", s.config.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		s.logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// runJanitor purges idle sessions every five minutes until ctx is done.
func (s *Server) runJanitor(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-s.config.SessionTTL)
			removed, err := s.sessions.PurgeIdle(ctx, cutoff)
			if err != nil {
				s.logger.Error("session purge failed", slog.String("error", err.Error()))
				continue
			}
			if removed > 0 {
				s.logger.Info("purged idle form sessions",
					slog.Int("removed", removed),
					slog.Int("remaining", s.sessions.Len()),
				)
			}
		}
	}
}
