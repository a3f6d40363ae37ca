// Package main is the entry point for the signup form server.
//
// main() stays minimal: read configuration, build the logger, start the
// server. All actual logic lives in internal/ packages so it can be
// tested without running a process.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sakif/signup-form/internal/server"
)

func main() {
	// Structured logging via slog. LOG_LEVEL=debug enables the per-row
	// mutation logs; the default keeps request logs only.
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	// PORT env var, default 8080.
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// Template and static dirs sit under web/ at the project root, which
	// is the working directory when run with `go run ./cmd/server`.
	templateDir, _ := filepath.Abs("web/templates")
	staticDir, _ := filepath.Abs("web/static")

	// SESSION_TTL overrides how long an idle form session survives.
	sessionTTL := 30 * time.Minute
	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			logger.Error("invalid SESSION_TTL value", slog.String("value", ttlStr))
			os.Exit(1)
		}
		sessionTTL = ttl
	}

	cfg := server.Config{
		Port:        port,
		TemplateDir: templateDir,
		StaticDir:   staticDir,
		SessionTTL:  sessionTTL,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
