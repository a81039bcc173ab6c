// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"strings"
	"sync"
	"time"
)

// Lockout thresholds.
const (
	maxLoginFailures = 5
	lockoutBase      = 1 * time.Minute
	lockoutMax       = 30 * time.Minute
	failureWindow    = 15 * time.Minute
)

type accountState struct {
	failures    int
	lastFailure time.Time
	lockedUntil time.Time
}

// LoginProtector tracks failed login attempts per account and applies an
// exponential lockout. It complements the per-IP auth rate limiter: the
// limiter slows one source, the lockout covers attacks spread across IPs.
type LoginProtector struct {
	mu       sync.Mutex
	accounts map[string]*accountState
	now      func() time.Time
}

// NewLoginProtector creates an empty protector.
func NewLoginProtector() *LoginProtector {
	return &LoginProtector{
		accounts: make(map[string]*accountState),
		now:      time.Now,
	}
}

// Allowed reports whether a login attempt for the account may proceed, and
// if not, how long until the lockout lifts.
func (lp *LoginProtector) Allowed(email string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	state, ok := lp.accounts[normalizeEmail(email)]
	if !ok {
		return true, 0
	}

	now := lp.now()
	if now.Before(state.lockedUntil) {
		return false, state.lockedUntil.Sub(now)
	}

	// Stale failures age out.
	if now.Sub(state.lastFailure) > failureWindow {
		delete(lp.accounts, normalizeEmail(email))
	}
	return true, 0
}

// RecordFailure notes a failed attempt. Once the threshold is reached the
// account is locked, doubling the lockout on each subsequent failure.
func (lp *LoginProtector) RecordFailure(email string) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	key := normalizeEmail(email)
	state, ok := lp.accounts[key]
	if !ok {
		state = &accountState{}
		lp.accounts[key] = state
	}

	now := lp.now()
	if now.Sub(state.lastFailure) > failureWindow {
		state.failures = 0
	}
	state.failures++
	state.lastFailure = now

	if state.failures >= maxLoginFailures {
		lockout := lockoutBase << (state.failures - maxLoginFailures)
		if lockout > lockoutMax || lockout <= 0 {
			lockout = lockoutMax
		}
		state.lockedUntil = now.Add(lockout)
	}
}

// RecordSuccess clears the failure history for an account.
func (lp *LoginProtector) RecordSuccess(email string) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	delete(lp.accounts, normalizeEmail(email))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
