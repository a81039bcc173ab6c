// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/emblemstudio/studio-api/internal/model"
)

// CreateServiceParams holds the fields for inserting a service row.
type CreateServiceParams struct {
	Title       string
	Meta        string
	Description string
	Position    int64
	IsPublished bool
}

// CreateService inserts a service at the given position.
func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO services (title, meta, description, position, is_published, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		arg.Title, arg.Meta, arg.Description, arg.Position, arg.IsPublished)
	return err
}

// ListPublishedServices returns published services ordered by position.
func (q *Queries) ListPublishedServices(ctx context.Context) ([]model.Service, error) {
	return q.listServices(ctx, `
		SELECT id, title, meta, description, position, is_published, updated_at
		FROM services WHERE is_published = 1 ORDER BY position ASC`)
}

// ListServices returns all services ordered by position.
func (q *Queries) ListServices(ctx context.Context) ([]model.Service, error) {
	return q.listServices(ctx, `
		SELECT id, title, meta, description, position, is_published, updated_at
		FROM services ORDER BY position ASC`)
}

// DeleteAllServices removes every service row.
func (q *Queries) DeleteAllServices(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM services`)
	return err
}

// CountServices returns the number of service rows.
func (q *Queries) CountServices(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&n)
	return n, err
}

func (q *Queries) listServices(ctx context.Context, query string) ([]model.Service, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	defer rows.Close()

	services := []model.Service{}
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Title, &s.Meta, &s.Description,
			&s.Position, &s.IsPublished, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}
