// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command studio-api runs the studio content API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/emblemstudio/studio-api/internal/config"
	"github.com/emblemstudio/studio-api/internal/handler"
	"github.com/emblemstudio/studio-api/internal/scheduler"
	"github.com/emblemstudio/studio-api/internal/service"
	"github.com/emblemstudio/studio-api/internal/session"
	"github.com/emblemstudio/studio-api/internal/store"
)

const version = "1.0.0"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	envFile := flag.String("env", ".env", "path to .env file")
	flag.Parse()

	if *showVersion {
		fmt.Println("studio-api", version)
		return
	}

	// .env is a development convenience; absence is fine.
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		slog.Warn("loading .env", "error", err)
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	setupLogger(cfg.LogLevel)
	slog.Info("starting studio-api", "version", version, "env", cfg.Env)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		return err
	}

	ctx := context.Background()
	if err := store.Seed(ctx, db, store.SeedParams{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	mediaSvc, err := service.NewMediaService(db, cfg.UploadsDir)
	if err != nil {
		return err
	}

	sessions := session.NewManager(db, cfg)

	sched, err := scheduler.New(db, mediaSvc)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:           cfg.ServerAddr(),
		Handler:        handler.NewRouter(cfg, db, sessions, mediaSvc),
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	slog.Info("goodbye")
	return nil
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}
