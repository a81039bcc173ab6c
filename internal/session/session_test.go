// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"net/http"
	"testing"
	"time"

	"github.com/emblemstudio/studio-api/internal/config"
	"github.com/emblemstudio/studio-api/internal/testutil"
)

func TestNewManagerCookieSettings(t *testing.T) {
	db := testutil.NewTestDB(t)
	cfg := &config.Config{
		SessionTTLDays: 7,
		CookieSecure:   true,
		CookieSameSite: "strict",
	}

	m := NewManager(db, cfg)

	if m.Cookie.Name != "session" {
		t.Errorf("cookie name = %q", m.Cookie.Name)
	}
	if !m.Cookie.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if !m.Cookie.Secure {
		t.Error("Secure flag not applied from config")
	}
	if m.Cookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite = %v", m.Cookie.SameSite)
	}
	if m.Cookie.Path != "/" {
		t.Errorf("cookie path = %q", m.Cookie.Path)
	}
	if m.Lifetime != 7*24*time.Hour {
		t.Errorf("lifetime = %v", m.Lifetime)
	}
}
