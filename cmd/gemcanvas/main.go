// Command gemcanvas serves a single-page tool that sends a prompt (and an
// optional image) to Gemini and shows the generated image or text answer.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jfickel/gemcanvas"
	"github.com/jfickel/gemcanvas/artifact"
	"github.com/jfickel/gemcanvas/internal/config"
	"github.com/jfickel/gemcanvas/internal/sl"
	"github.com/jfickel/gemcanvas/internal/web"
	"github.com/jfickel/gemcanvas/provider/gemini"
	"github.com/jfickel/gemcanvas/ratelimiter"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	configPath := flag.String("conf", "", "path to config file (optional, env vars apply either way)")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	log := setupLogger(cfg.Env)
	log.With(
		slog.String("env", cfg.Env),
		slog.String("listen", cfg.Listen),
		sl.Secret(cfg.GeminiAPIKey),
	).Info("starting gemcanvas")

	ctx := context.Background()

	store, err := artifact.NewStore(cfg.TempDir, artifact.WithLogger(log))
	if err != nil {
		log.Error("failed to create artifact store", sl.Err(err))
		os.Exit(1)
	}
	log.Info("artifact store ready", slog.String("dir", store.Dir()))

	// A missing key is not fatal: the dispatcher reports it per call so the
	// page can tell the user what to fix.
	var gen gemcanvas.Generator
	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, every request will fail until it is configured")
	} else {
		g, err := gemini.NewWithModel(ctx, cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			log.Error("failed to create Gemini provider", sl.Err(err))
			os.Exit(1)
		}
		gen = g
		log.Info("Gemini provider ready", slog.String("model", g.Model()))
	}

	dispatcher := gemcanvas.NewDispatcher(gen, store,
		gemcanvas.WithLogger(log),
		gemcanvas.WithLimiter(ratelimiter.New(
			cfg.RateLimit.TokensPerMinute,
			cfg.RateLimit.RequestsPerMinute,
		)),
	)
	defer dispatcher.Close()

	policy, err := artifact.NewPolicy(cfg.CleanupPolicy, store, log)
	if err != nil {
		log.Error("bad cleanup policy", sl.Err(err))
		os.Exit(1)
	}

	server := web.NewServer(dispatcher, store, policy, cfg.RequestTimeout, log)
	httpServer := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.Handler(),
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", sl.Err(err))
			os.Exit(1)
		}
	}()
	log.Info("listening", slog.String("addr", cfg.Listen))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown incomplete", sl.Err(err))
	}

	// Files this process created never outlive it.
	summary := (&artifact.TrackedPolicy{Store: store}).CleanupAll()
	log.Info("session cleanup done", slog.String("summary", summary.String()))
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envLocal:
		fallthrough
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
