// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/emblemstudio/studio-api/internal/auth"
	"github.com/emblemstudio/studio-api/internal/model"
)

// SeedParams carries the admin credentials used for the initial account.
type SeedParams struct {
	AdminEmail    string
	AdminPassword string
}

// Seed populates empty tables with the default content: the admin account,
// the settings document, and the starter services and projects lists. Each
// table is only seeded when it has no rows, so re-running is safe.
func Seed(ctx context.Context, db *sql.DB, params SeedParams) error {
	q := New(db)

	if err := seedAdmin(ctx, q, params); err != nil {
		return err
	}
	if err := seedSettings(ctx, q); err != nil {
		return err
	}
	if err := seedServices(ctx, q); err != nil {
		return err
	}
	return seedProjects(ctx, q)
}

func seedAdmin(ctx context.Context, q *Queries, params SeedParams) error {
	n, err := q.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword(params.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	if _, err := q.CreateUser(ctx, CreateUserParams{
		Email:        params.AdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("seeded admin user", "email", params.AdminEmail)
	return nil
}

func seedSettings(ctx context.Context, q *Queries) error {
	n, err := q.CountSettings(ctx)
	if err != nil {
		return fmt.Errorf("counting settings: %w", err)
	}
	if n > 0 {
		return nil
	}

	if err := q.UpsertSettings(ctx, model.DefaultSettings()); err != nil {
		return fmt.Errorf("seeding settings: %w", err)
	}
	return nil
}

func seedServices(ctx context.Context, q *Queries) error {
	n, err := q.CountServices(ctx)
	if err != nil {
		return fmt.Errorf("counting services: %w", err)
	}
	if n > 0 {
		return nil
	}

	for i, s := range model.DefaultServices() {
		if err := q.CreateService(ctx, CreateServiceParams{
			Title:       s.Title,
			Meta:        s.Meta,
			Description: s.Description,
			Position:    int64(i),
			IsPublished: s.IsPublished,
		}); err != nil {
			return fmt.Errorf("seeding service %q: %w", s.Title, err)
		}
	}
	return nil
}

func seedProjects(ctx context.Context, q *Queries) error {
	n, err := q.CountProjects(ctx)
	if err != nil {
		return fmt.Errorf("counting projects: %w", err)
	}
	if n > 0 {
		return nil
	}

	for i, p := range model.DefaultProjects() {
		if err := q.CreateProject(ctx, CreateProjectParams{
			Title:       p.Title,
			Role:        p.Role,
			Summary:     p.Summary,
			Year:        p.Year,
			Focus:       p.Focus,
			Position:    int64(i),
			IsPublished: p.IsPublished,
		}); err != nil {
			return fmt.Errorf("seeding project %q: %w", p.Title, err)
		}
	}
	return nil
}
