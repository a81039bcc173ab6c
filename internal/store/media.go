// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/emblemstudio/studio-api/internal/model"
)

// CreateMediaParams holds the fields for inserting a media row.
type CreateMediaParams struct {
	Filename     string
	OriginalName string
	Mime         string
	Size         int64
	Width        int64
	Height       int64
}

// CreateMedia inserts a media row and returns it.
func (q *Queries) CreateMedia(ctx context.Context, arg CreateMediaParams) (model.Media, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO media (filename, original_name, mime, size, width, height)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, filename, original_name, mime, size, width, height, created_at`,
		arg.Filename, arg.OriginalName, arg.Mime, arg.Size, arg.Width, arg.Height)

	var m model.Media
	err := row.Scan(&m.ID, &m.Filename, &m.OriginalName, &m.Mime, &m.Size,
		&m.Width, &m.Height, &m.CreatedAt)
	if err != nil {
		return model.Media{}, fmt.Errorf("inserting media: %w", err)
	}
	return m, nil
}

// GetMedia looks up a media row by id. Returns sql.ErrNoRows when absent.
func (q *Queries) GetMedia(ctx context.Context, id int64) (model.Media, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, filename, original_name, mime, size, width, height, created_at
		FROM media WHERE id = ?`, id)

	var m model.Media
	err := row.Scan(&m.ID, &m.Filename, &m.OriginalName, &m.Mime, &m.Size,
		&m.Width, &m.Height, &m.CreatedAt)
	if err != nil {
		return model.Media{}, err
	}
	return m, nil
}

// ListMedia returns the newest media rows first, capped at limit.
func (q *Queries) ListMedia(ctx context.Context, limit int64) ([]model.Media, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, filename, original_name, mime, size, width, height, created_at
		FROM media ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing media: %w", err)
	}
	defer rows.Close()

	media := []model.Media{}
	for rows.Next() {
		var m model.Media
		if err := rows.Scan(&m.ID, &m.Filename, &m.OriginalName, &m.Mime, &m.Size,
			&m.Width, &m.Height, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning media: %w", err)
		}
		media = append(media, m)
	}
	return media, rows.Err()
}

// ListMediaFilenames returns every stored filename. Used by the orphan sweep.
func (q *Queries) ListMediaFilenames(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT filename FROM media`)
	if err != nil {
		return nil, fmt.Errorf("listing media filenames: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteMedia removes a media row by id.
func (q *Queries) DeleteMedia(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	return err
}
