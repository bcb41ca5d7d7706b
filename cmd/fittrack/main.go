package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailscale.com/tsnet"

	"github.com/KoBe1628/ai-fitness-tracker/internal/config"
	"github.com/KoBe1628/ai-fitness-tracker/internal/engine"
	"github.com/KoBe1628/ai-fitness-tracker/internal/exercise"
	"github.com/KoBe1628/ai-fitness-tracker/internal/ledger"
	"github.com/KoBe1628/ai-fitness-tracker/internal/notify"
	"github.com/KoBe1628/ai-fitness-tracker/internal/server"
	"github.com/KoBe1628/ai-fitness-tracker/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit (postgres backend only)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("fittrack starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Open the ledger store
	ctx := context.Background()
	var store storage.Store
	switch cfg.Store.Backend {
	case "postgres":
		dsn := cfg.Store.Postgres.DSN()
		if err := storage.RunMigrations(dsn, "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")
		if *migrateOnly {
			log.Info("migrate-only: exiting")
			return
		}
		store, err = storage.OpenPostgres(ctx, dsn)
	default:
		store, err = storage.OpenSQLite(cfg.Store.SQLite.Dir)
	}
	if err != nil {
		log.Error("failed to open store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	log.Info("store opened", "backend", cfg.Store.Backend)

	// Load the progression ledger
	lg, err := ledger.Load(store, log)
	if err != nil {
		log.Error("failed to load ledger", "error", err)
		os.Exit(1)
	}

	// Build the session engine
	profile := exercise.Default()
	if cfg.User.Exercise != "" {
		if p, ok := exercise.Lookup(cfg.User.Exercise); ok {
			profile = p
		}
	}
	feed := notify.NewFeed(50, log)
	eng := engine.New(engine.Config{
		Profile:          profile,
		Difficulty:       exercise.Difficulty(cfg.User.Difficulty),
		UserWeightKg:     cfg.User.WeightKg,
		ChallengeSeconds: cfg.Timers.ChallengeSeconds,
		RestSeconds:      cfg.Timers.RestSeconds,
	}, lg, feed, log)

	engineCtx, stopEngine := context.WithCancel(ctx)
	defer stopEngine()
	go eng.Run(engineCtx)

	// Create server
	srv := server.New(eng, feed, cfg.Auth.APIKey, log)

	// Start server — tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	stopEngine()
	log.Info("server stopped")
}
