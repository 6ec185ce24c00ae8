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

	"github.com/claude/gtg/internal/app"
	"github.com/claude/gtg/internal/clock"
	"github.com/claude/gtg/internal/config"
	"github.com/claude/gtg/internal/mcp"
	"github.com/claude/gtg/internal/reminder"
	"github.com/claude/gtg/internal/server"
	"github.com/claude/gtg/internal/session"
	"github.com/claude/gtg/internal/store"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit (postgres driver)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("GTG starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Open the key-value store
	ctx := context.Background()
	var kv store.Store
	switch cfg.Database.Driver {
	case "postgres":
		dsn := cfg.Database.DSN()
		if err := store.RunMigrations(dsn, "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")
		if *migrateOnly {
			log.Info("migrate-only: exiting")
			return
		}
		kv, err = store.NewPostgres(ctx, dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
	default:
		kv, err = store.OpenSQLite(cfg.Database.Path)
		if err != nil {
			log.Error("failed to open database", "path", cfg.Database.Path, "error", err)
			os.Exit(1)
		}
	}
	defer kv.Close()
	log.Info("store ready", "driver", cfg.Database.Driver)

	records := store.NewRecords(kv, log)

	// Clock, mockable in dev mode
	var clk clock.Clock = clock.System{}
	if cfg.DevMode {
		clk = clock.NewMocked(records, clock.System{})
		log.Info("dev mode: mock clock enabled")
	}

	// Notification channel
	var notifier reminder.Notifier = reminder.Nop{}
	if cfg.Notify.NtfyURL != "" {
		notifier = reminder.NewNtfy(cfg.Notify.NtfyURL, cfg.Notify.Topic)
		log.Info("reminder notifications enabled", "topic", cfg.Notify.Topic)
	}

	// Assemble the application
	tracker := session.NewTracker(records, log)
	sched := reminder.New(tracker, notifier, clk, log)
	defer sched.Stop()

	application := app.New(records, clk, tracker, sched, log)
	if err := application.Start(ctx); err != nil {
		log.Error("failed to start session", "error", err)
		os.Exit(1)
	}

	// Create server and mount the MCP transport
	srv := server.New(application, cfg.Auth.APIKey, cfg.DevMode, log)
	srv.MountMCP(mcp.NewHTTPHandler(application, Version, log))

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
	log.Info("server stopped")
}
