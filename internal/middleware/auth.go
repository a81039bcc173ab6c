// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/emblemstudio/studio-api/internal/session"
)

// RequireAuth rejects requests without a valid authenticated session.
func RequireAuth(sessions *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessions.GetInt64(r.Context(), session.KeyUserID) == 0 {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionUserID returns the authenticated user's id from the session, or 0.
func SessionUserID(r *http.Request, sessions *scs.SessionManager) int64 {
	return sessions.GetInt64(r.Context(), session.KeyUserID)
}
