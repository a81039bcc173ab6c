// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the background maintenance jobs.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/emblemstudio/studio-api/internal/service"
	"github.com/emblemstudio/studio-api/internal/store"
)

// Job cadence.
const (
	sessionPruneSpec = "@every 6h"
	orphanSweepSpec  = "@daily"
	orphanMinAge     = time.Hour
	jobTimeout       = 5 * time.Minute
)

// Scheduler owns the cron runner and its jobs: pruning expired sessions and
// sweeping untracked upload files.
type Scheduler struct {
	cron    *cron.Cron
	queries *store.Queries
	media   *service.MediaService
}

// New creates a Scheduler with all jobs registered but not yet running.
func New(db *sql.DB, media *service.MediaService) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		queries: store.New(db),
		media:   media,
	}

	if _, err := s.cron.AddFunc(sessionPruneSpec, s.pruneSessions); err != nil {
		return nil, fmt.Errorf("registering session prune job: %w", err)
	}
	if _, err := s.cron.AddFunc(orphanSweepSpec, s.sweepOrphans); err != nil {
		return nil, fmt.Errorf("registering orphan sweep job: %w", err)
	}

	return s, nil
}

// Start runs the session prune once immediately, then begins the schedule.
func (s *Scheduler) Start() {
	s.pruneSessions()
	s.cron.Start()
	slog.Info("scheduler started")
}

// Stop halts the schedule and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) pruneSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	pruned, err := s.queries.DeleteExpiredSessions(ctx)
	if err != nil {
		slog.Error("session prune failed", "error", err)
		return
	}
	if pruned > 0 {
		slog.Info("pruned expired sessions", "count", pruned)
	}
}

func (s *Scheduler) sweepOrphans() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := s.media.SweepOrphans(ctx, orphanMinAge)
	if err != nil {
		slog.Error("orphan sweep failed", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("removed orphan uploads", "count", removed)
	}
}
