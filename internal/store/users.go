// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	"github.com/emblemstudio/studio-api/internal/model"
)

// CreateUserParams holds the fields for inserting a user.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Role         string
}

// CreateUser inserts a new user and returns it.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, role)
		VALUES (?, ?, ?)
		RETURNING id, email, password_hash, role, created_at, last_login_at`,
		arg.Email, arg.PasswordHash, arg.Role)
	return scanUser(row)
}

// GetUserByEmail looks up a user by email. Returns sql.ErrNoRows when absent.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, role, created_at, last_login_at
		FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// GetUserByID looks up a user by primary key.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, role, created_at, last_login_at
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// UpdateUserPasswordHash replaces a user's stored password hash.
func (q *Queries) UpdateUserPasswordHash(ctx context.Context, id int64, passwordHash string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	return err
}

// TouchUserLogin stamps the user's last login time.
func (q *Queries) TouchUserLogin(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

// CountUsers returns the number of user rows.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &lastLogin)
	if err != nil {
		return model.User{}, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}
