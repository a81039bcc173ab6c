// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/emblemstudio/studio-api/internal/model"
	"github.com/emblemstudio/studio-api/internal/store"
	"github.com/emblemstudio/studio-api/internal/testutil"
)

func TestUserLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	q := store.New(db)
	ctx := context.Background()

	u, err := q.CreateUser(ctx, store.CreateUserParams{
		Email:        "admin@emblem.studio",
		PasswordHash: "$argon2id$hash",
		Role:         model.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected non-zero user id")
	}
	if u.LastLoginAt != nil {
		t.Error("fresh user should have no last login")
	}

	got, err := q.GetUserByEmail(ctx, "admin@emblem.studio")
	if err != nil {
		t.Fatalf("GetUserByEmail() error: %v", err)
	}
	if got.ID != u.ID || got.Role != model.RoleAdmin {
		t.Errorf("GetUserByEmail() = %+v, want id=%d role=admin", got, u.ID)
	}

	if _, err := q.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("unknown email: err = %v, want sql.ErrNoRows", err)
	}

	if err := q.TouchUserLogin(ctx, u.ID); err != nil {
		t.Fatalf("TouchUserLogin() error: %v", err)
	}
	got, err = q.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastLoginAt == nil {
		t.Error("expected last login to be stamped")
	}

	if err := q.UpdateUserPasswordHash(ctx, u.ID, "$argon2id$newhash"); err != nil {
		t.Fatalf("UpdateUserPasswordHash() error: %v", err)
	}
	got, _ = q.GetUserByID(ctx, u.ID)
	if got.PasswordHash != "$argon2id$newhash" {
		t.Errorf("PasswordHash = %q after update", got.PasswordHash)
	}
}

func TestSettingsDefaultsAndUpsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	q := store.New(db)
	ctx := context.Background()

	// Empty table falls back to built-in defaults.
	s, err := q.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error: %v", err)
	}
	if s.ContactEmail != "hello@emblem.studio" {
		t.Errorf("default ContactEmail = %q", s.ContactEmail)
	}

	s.HeroTitle = "New headline"
	s.HeroNotes = []string{"one", "two"}
	if err := q.UpsertSettings(ctx, s); err != nil {
		t.Fatalf("UpsertSettings() insert error: %v", err)
	}

	got, err := q.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.HeroTitle != "New headline" || len(got.HeroNotes) != 2 {
		t.Errorf("GetSettings() after insert = %+v", got)
	}

	// Second save updates the same singleton row.
	got.HeroTitle = "Updated again"
	if err := q.UpsertSettings(ctx, got); err != nil {
		t.Fatalf("UpsertSettings() update error: %v", err)
	}
	n, err := q.CountSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("settings rows = %d, want 1", n)
	}
}

func TestServicesOrderingAndPublishedFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	q := store.New(db)
	ctx := context.Background()

	items := []store.CreateServiceParams{
		{Title: "Third", Meta: "c", Description: "d", Position: 2, IsPublished: true},
		{Title: "First", Meta: "a", Description: "d", Position: 0, IsPublished: true},
		{Title: "Hidden", Meta: "x", Description: "d", Position: 1, IsPublished: false},
	}
	for _, it := range items {
		if err := q.CreateService(ctx, it); err != nil {
			t.Fatalf("CreateService(%q) error: %v", it.Title, err)
		}
	}

	all, err := q.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListServices() len = %d, want 3", len(all))
	}
	if all[0].Title != "First" || all[1].Title != "Hidden" || all[2].Title != "Third" {
		t.Errorf("unexpected order: %s, %s, %s", all[0].Title, all[1].Title, all[2].Title)
	}

	published, err := q.ListPublishedServices(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 2 {
		t.Fatalf("ListPublishedServices() len = %d, want 2", len(published))
	}
	if published[0].Title != "First" || published[1].Title != "Third" {
		t.Errorf("published order: %s, %s", published[0].Title, published[1].Title)
	}

	if err := q.DeleteAllServices(ctx); err != nil {
		t.Fatalf("DeleteAllServices() error: %v", err)
	}
	n, _ := q.CountServices(ctx)
	if n != 0 {
		t.Errorf("services remaining after delete-all: %d", n)
	}
}

func TestProjectsOrderingAndPublishedFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	q := store.New(db)
	ctx := context.Background()

	for i, p := range model.DefaultProjects() {
		err := q.CreateProject(ctx, store.CreateProjectParams{
			Title: p.Title, Role: p.Role, Summary: p.Summary,
			Year: p.Year, Focus: p.Focus,
			Position: int64(i), IsPublished: i%2 == 0,
		})
		if err != nil {
			t.Fatalf("CreateProject(%q) error: %v", p.Title, err)
		}
	}

	all, err := q.ListProjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 6 {
		t.Fatalf("ListProjects() len = %d, want 6", len(all))
	}
	for i, p := range all {
		if p.Position != int64(i) {
			t.Errorf("project %d has position %d", i, p.Position)
		}
	}

	published, err := q.ListPublishedProjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 3 {
		t.Errorf("ListPublishedProjects() len = %d, want 3", len(published))
	}
}

func TestInquiriesNewestFirstWithCap(t *testing.T) {
	db := testutil.NewTestDB(t)
	q := store.New(db)
	ctx := context.Background()

	for _, name := range []string{"alpha", "beta", "gamma"} {
		err := q.CreateInquiry(ctx, store.CreateInquiryParams{
			Name:    name,
			Email:   name + "@example.com",
			Message: "A message about a project we want to build.",
		})
		if err != nil {
			t.Fatalf("CreateInquiry(%q) error: %v", name, err)
		}
	}

	list, err := q.ListInquiries(ctx, 2)
	if err != nil {
		t.Fatalf("ListInquiries() error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListInquiries(2) len = %d, want 2", len(list))
	}
	if list[0].Name != "gamma" || list[1].Name != "beta" {
		t.Errorf("unexpected order: %s, %s", list[0].Name, list[1].Name)
	}
	if list[0].Company != "" {
		t.Errorf("empty company scanned as %q", list[0].Company)
	}
}

func TestMediaLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	q := store.New(db)
	ctx := context.Background()

	m, err := q.CreateMedia(ctx, store.CreateMediaParams{
		Filename:     "1700000000000-abc123.png",
		OriginalName: "hero.png",
		Mime:         "image/png",
		Size:         2048,
		Width:        1200,
		Height:       800,
	})
	if err != nil {
		t.Fatalf("CreateMedia() error: %v", err)
	}
	if m.ID == 0 || m.CreatedAt.IsZero() {
		t.Errorf("CreateMedia() returned incomplete row: %+v", m)
	}

	got, err := q.GetMedia(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMedia() error: %v", err)
	}
	if got.Filename != m.Filename || got.Width != 1200 {
		t.Errorf("GetMedia() = %+v", got)
	}

	names, err := q.ListMediaFilenames(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != m.Filename {
		t.Errorf("ListMediaFilenames() = %v", names)
	}

	if err := q.DeleteMedia(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMedia() error: %v", err)
	}
	if _, err := q.GetMedia(ctx, m.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetMedia() after delete: err = %v, want sql.ErrNoRows", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	db := testutil.NewTestDB(t)
	q := store.New(db)
	ctx := context.Background()

	// One expired, one live. Expiry is a julian day number, matching the
	// session store's schema.
	_, err := db.ExecContext(ctx,
		`INSERT INTO sessions (token, data, expiry) VALUES
			('expired', x'00', julianday('now', '-1 day')),
			('live', x'00', julianday('now', '+1 day'))`)
	if err != nil {
		t.Fatal(err)
	}

	pruned, err := q.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions() error: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}

	n, err := q.CountSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("sessions remaining = %d, want 1", n)
	}
}

func TestSeedIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	params := store.SeedParams{AdminEmail: "admin@emblem.studio", AdminPassword: "seed-password-1"}

	if err := store.Seed(ctx, db, params); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if err := store.Seed(ctx, db, params); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	q := store.New(db)
	users, _ := q.CountUsers(ctx)
	services, _ := q.CountServices(ctx)
	projects, _ := q.CountProjects(ctx)
	settings, _ := q.CountSettings(ctx)
	if users != 1 || services != 6 || projects != 6 || settings != 1 {
		t.Errorf("seed counts: users=%d services=%d projects=%d settings=%d",
			users, services, projects, settings)
	}

	published, err := q.ListPublishedServices(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 6 || published[0].Title != "Brand Systems" {
		t.Errorf("seeded services: len=%d first=%q", len(published), published[0].Title)
	}
}
