// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/emblemstudio/studio-api/internal/model"
)

// CreateProjectParams holds the fields for inserting a project row.
type CreateProjectParams struct {
	Title       string
	Role        string
	Summary     string
	Year        string
	Focus       string
	Position    int64
	IsPublished bool
}

// CreateProject inserts a project at the given position.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO projects (title, role, summary, year, focus, position, is_published, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		arg.Title, arg.Role, arg.Summary, arg.Year, arg.Focus, arg.Position, arg.IsPublished)
	return err
}

// ListPublishedProjects returns published projects ordered by position.
func (q *Queries) ListPublishedProjects(ctx context.Context) ([]model.Project, error) {
	return q.listProjects(ctx, `
		SELECT id, title, role, summary, year, focus, position, is_published, updated_at
		FROM projects WHERE is_published = 1 ORDER BY position ASC`)
}

// ListProjects returns all projects ordered by position.
func (q *Queries) ListProjects(ctx context.Context) ([]model.Project, error) {
	return q.listProjects(ctx, `
		SELECT id, title, role, summary, year, focus, position, is_published, updated_at
		FROM projects ORDER BY position ASC`)
}

// DeleteAllProjects removes every project row.
func (q *Queries) DeleteAllProjects(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM projects`)
	return err
}

// CountProjects returns the number of project rows.
func (q *Queries) CountProjects(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n)
	return n, err
}

func (q *Queries) listProjects(ctx context.Context, query string) ([]model.Project, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Role, &p.Summary, &p.Year,
			&p.Focus, &p.Position, &p.IsPublished, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
