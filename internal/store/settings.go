// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/emblemstudio/studio-api/internal/model"
)

// GetSettings returns the settings document. When no row exists yet the
// built-in defaults are returned.
func (q *Queries) GetSettings(ctx context.Context) (model.Settings, error) {
	var raw string
	err := q.db.QueryRowContext(ctx,
		`SELECT data FROM settings ORDER BY id LIMIT 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("loading settings: %w", err)
	}

	var s model.Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return model.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

// UpsertSettings replaces the singleton settings document, creating the row
// on first save.
func (q *Queries) UpsertSettings(ctx context.Context, s model.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	var id int64
	err = q.db.QueryRowContext(ctx, `SELECT id FROM settings ORDER BY id LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = q.db.ExecContext(ctx, `INSERT INTO settings (data) VALUES (?)`, string(raw))
		return err
	}
	if err != nil {
		return fmt.Errorf("loading settings row: %w", err)
	}

	_, err = q.db.ExecContext(ctx,
		`UPDATE settings SET data = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(raw), id)
	return err
}

// CountSettings returns the number of settings rows.
func (q *Queries) CountSettings(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings`).Scan(&n)
	return n, err
}
