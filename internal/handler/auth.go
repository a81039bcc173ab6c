// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/emblemstudio/studio-api/internal/auth"
	"github.com/emblemstudio/studio-api/internal/middleware"
	"github.com/emblemstudio/studio-api/internal/session"
	"github.com/emblemstudio/studio-api/internal/store"
)

// AuthHandler serves login, logout, and session introspection.
type AuthHandler struct {
	queries   *store.Queries
	sessions  *scs.SessionManager
	protector *middleware.LoginProtector
	secret    string
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(db *sql.DB, sessions *scs.SessionManager, protector *middleware.LoginProtector, secret string) *AuthHandler {
	return &AuthHandler{
		queries:   store.New(db),
		sessions:  sessions,
		protector: protector,
		secret:    secret,
	}
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login authenticates credentials and establishes a session. Unknown email
// and wrong password produce the same response, so the endpoint cannot be
// used to enumerate accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if !DecodeJSON(w, r, &payload) {
		return
	}
	if payload.validate().Write(w) {
		return
	}

	if ok, wait := h.protector.Allowed(payload.Email); !ok {
		slog.Warn("login blocked by lockout", "wait", wait)
		WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded",
			"Too many failed attempts. Try again later.", nil)
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), payload.Email)
	if errors.Is(err, sql.ErrNoRows) {
		h.protector.RecordFailure(payload.Email)
		WriteError(w, http.StatusUnauthorized, CodeUnauthorized, "Invalid credentials", nil)
		return
	}
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}

	valid, err := auth.CheckPassword(payload.Password, user.PasswordHash)
	if err != nil || !valid {
		h.protector.RecordFailure(payload.Email)
		WriteError(w, http.StatusUnauthorized, CodeUnauthorized, "Invalid credentials", nil)
		return
	}
	h.protector.RecordSuccess(payload.Email)

	// Transparent parameter upgrade on successful verification.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(payload.Password); err == nil {
			if err := h.queries.UpdateUserPasswordHash(r.Context(), user.ID, newHash); err != nil {
				slog.Warn("password rehash failed", "user_id", user.ID, "error", err)
			}
		}
	}
	if err := h.queries.TouchUserLogin(r.Context(), user.ID); err != nil {
		slog.Warn("stamping last login failed", "user_id", user.ID, "error", err)
	}

	// Fresh token on privilege change defeats session fixation.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		WriteInternalError(w, r, err)
		return
	}
	h.sessions.Put(r.Context(), session.KeyUserID, user.ID)

	csrfToken, err := auth.NewToken(h.secret)
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}
	h.sessions.Put(r.Context(), session.KeyCSRFToken, csrfToken)

	slog.Info("user logged in", "user_id", user.ID)
	WriteJSON(w, http.StatusOK, map[string]any{
		"user":      userResponse{ID: user.ID, Email: user.Email, Role: user.Role},
		"csrfToken": csrfToken,
	})
}

// Logout destroys the session. Destroying an already-dead session is fine.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		WriteInternalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CSRF returns the session's CSRF token, minting one if needed.
func (h *AuthHandler) CSRF(w http.ResponseWriter, r *http.Request) {
	token, err := h.ensureCSRFToken(r)
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"csrfToken": token})
}

// Me returns the authenticated user and the CSRF token for the session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := h.sessions.GetInt64(r.Context(), session.KeyUserID)
	user, err := h.queries.GetUserByID(r.Context(), userID)
	if errors.Is(err, sql.ErrNoRows) {
		// Session survived its user; treat as signed out.
		_ = h.sessions.Destroy(r.Context())
		WriteError(w, http.StatusUnauthorized, CodeUnauthorized, "Unauthorized", nil)
		return
	}
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}

	token, err := h.ensureCSRFToken(r)
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"user":      userResponse{ID: user.ID, Email: user.Email, Role: user.Role},
		"csrfToken": token,
	})
}

func (h *AuthHandler) ensureCSRFToken(r *http.Request) (string, error) {
	if token := h.sessions.GetString(r.Context(), session.KeyCSRFToken); token != "" {
		return token, nil
	}
	token, err := auth.NewToken(h.secret)
	if err != nil {
		return "", err
	}
	h.sessions.Put(r.Context(), session.KeyCSRFToken, token)
	return token, nil
}
