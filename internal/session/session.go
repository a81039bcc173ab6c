// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the server-side session manager.
package session

import (
	"database/sql"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/emblemstudio/studio-api/internal/config"
)

// Session data keys.
const (
	KeyUserID    = "user_id"
	KeyCSRFToken = "csrf_token"
)

// CookieName is the session cookie name.
const CookieName = "session"

// NewManager creates a session manager backed by the sessions table.
// Automatic cleanup is disabled; the scheduler's prune sweep owns removal
// of expired rows.
func NewManager(db *sql.DB, cfg *config.Config) *scs.SessionManager {
	manager := scs.New()
	manager.Store = sqlite3store.NewWithCleanupInterval(db, 0)
	manager.Lifetime = time.Duration(cfg.SessionTTLDays) * 24 * time.Hour
	manager.Cookie.Name = CookieName
	manager.Cookie.Path = "/"
	manager.Cookie.HttpOnly = true
	manager.Cookie.Secure = cfg.CookieIsSecure()
	manager.Cookie.SameSite = cfg.CookieSameSiteMode()
	return manager
}
