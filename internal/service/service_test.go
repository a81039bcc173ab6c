// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emblemstudio/studio-api/internal/model"
	"github.com/emblemstudio/studio-api/internal/testutil"
)

func TestReplaceServicesOrdering(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewContentService(db)
	ctx := context.Background()

	items := []ServiceItem{
		{Title: "One", Meta: "a", Description: "first", IsPublished: true},
		{Title: "Two", Meta: "b", Description: "second", IsPublished: false},
		{Title: "Three", Meta: "c", Description: "third", IsPublished: true},
	}
	if err := svc.ReplaceServices(ctx, items); err != nil {
		t.Fatalf("ReplaceServices() error: %v", err)
	}

	content, err := svc.AdminContent(ctx, func(f string) string { return "/uploads/" + f })
	if err != nil {
		t.Fatal(err)
	}
	if len(content.Services) != 3 {
		t.Fatalf("services len = %d, want 3", len(content.Services))
	}
	for i, s := range content.Services {
		if s.Position != int64(i) {
			t.Errorf("service %q position = %d, want %d", s.Title, s.Position, i)
		}
	}

	// Replacement discards the old list entirely.
	if err := svc.ReplaceServices(ctx, items[:1]); err != nil {
		t.Fatalf("second ReplaceServices() error: %v", err)
	}
	content, _ = svc.AdminContent(ctx, func(f string) string { return f })
	if len(content.Services) != 1 || content.Services[0].Title != "One" {
		t.Errorf("after shrink: %+v", content.Services)
	}
}

func TestReplaceServicesRollbackKeepsPriorList(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewContentService(db)
	ctx := context.Background()

	good := []ServiceItem{
		{Title: "Keep me", Meta: "a", Description: "original", IsPublished: true},
	}
	if err := svc.ReplaceServices(ctx, good); err != nil {
		t.Fatalf("seeding list: %v", err)
	}

	// The second item violates the schema's length constraint, failing
	// mid-insert after the delete and first insert already ran.
	bad := []ServiceItem{
		{Title: "Fine", Meta: "a", Description: "ok", IsPublished: true},
		{Title: strings.Repeat("x", 200), Meta: "b", Description: "too long", IsPublished: true},
	}
	if err := svc.ReplaceServices(ctx, bad); err == nil {
		t.Fatal("expected constraint error")
	}

	content, err := svc.PublicContent(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(content.Services) != 1 || content.Services[0].Title != "Keep me" {
		t.Errorf("prior list not intact after rollback: %+v", content.Services)
	}
}

func TestReplaceProjectsRollbackKeepsPriorList(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewContentService(db)
	ctx := context.Background()

	good := []ProjectItem{
		{Title: "Original", Role: "r", Summary: "s", Year: "2024", Focus: "f", IsPublished: true},
	}
	if err := svc.ReplaceProjects(ctx, good); err != nil {
		t.Fatalf("seeding list: %v", err)
	}

	bad := []ProjectItem{
		{Title: "Fine", Role: "r", Summary: "s", Year: "2024", Focus: "f", IsPublished: true},
		{Title: "Bad", Role: strings.Repeat("r", 300), Summary: "s", Year: "2024", Focus: "f", IsPublished: true},
	}
	if err := svc.ReplaceProjects(ctx, bad); err == nil {
		t.Fatal("expected constraint error")
	}

	content, _ := svc.PublicContent(ctx)
	if len(content.Projects) != 1 || content.Projects[0].Title != "Original" {
		t.Errorf("prior list not intact after rollback: %+v", content.Projects)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewContentService(db)
	ctx := context.Background()

	s := model.DefaultSettings()
	s.HeroTitle = "Edited headline"
	if err := svc.SaveSettings(ctx, s); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}

	content, err := svc.PublicContent(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if content.Settings.HeroTitle != "Edited headline" {
		t.Errorf("HeroTitle = %q", content.Settings.HeroTitle)
	}
}

// makeUpload wraps raw bytes in a parsed multipart file, the same shape the
// handler gets from ParseMultipartForm.
func makeUpload(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	fh := form.File["file"][0]
	f, err := fh.Open()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f, fh
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestMediaUploadValidPNG(t *testing.T) {
	db := testutil.NewTestDB(t)
	dir := t.TempDir()
	svc, err := NewMediaService(db, dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	f, fh := makeUpload(t, "hero.png", pngBytes(t, 640, 360))
	media, err := svc.Upload(ctx, f, fh)
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}

	if media.Mime != "image/png" {
		t.Errorf("Mime = %q, want image/png", media.Mime)
	}
	if media.OriginalName != "hero.png" {
		t.Errorf("OriginalName = %q", media.OriginalName)
	}
	if media.Width != 640 || media.Height != 360 {
		t.Errorf("dimensions = %dx%d, want 640x360", media.Width, media.Height)
	}
	if media.URL != "/uploads/"+media.Filename {
		t.Errorf("URL = %q", media.URL)
	}
	if !strings.HasSuffix(media.Filename, ".png") {
		t.Errorf("Filename = %q, want .png suffix", media.Filename)
	}

	if _, err := os.Stat(filepath.Join(dir, media.Filename)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	list, err := svc.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != media.ID {
		t.Errorf("List() = %+v", list)
	}
}

func TestMediaUploadSpoofedTypeRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	dir := t.TempDir()
	svc, err := NewMediaService(db, dir)
	if err != nil {
		t.Fatal(err)
	}

	// Declared as PNG by name, but the bytes are a script.
	f, fh := makeUpload(t, "totally-a-photo.png", []byte("#!/bin/sh\necho pwned\n"))
	_, err = svc.Upload(context.Background(), f, fh)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("Upload() error = %v, want ErrUnsupportedType", err)
	}

	// Neither file nor row survives a rejected upload.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("rejected upload left %d files behind", len(entries))
	}
	list, _ := svc.List(context.Background(), 10)
	if len(list) != 0 {
		t.Errorf("rejected upload left %d rows behind", len(list))
	}
}

func TestMediaDeleteIdempotentOnMissingFile(t *testing.T) {
	db := testutil.NewTestDB(t)
	dir := t.TempDir()
	svc, err := NewMediaService(db, dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	f, fh := makeUpload(t, "hero.png", pngBytes(t, 64, 64))
	media, err := svc.Upload(ctx, f, fh)
	if err != nil {
		t.Fatal(err)
	}

	// Remove the file out from under the row; delete still succeeds.
	if err := os.Remove(filepath.Join(dir, media.Filename)); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, media.ID); err != nil {
		t.Errorf("Delete() with missing file: %v", err)
	}

	if err := svc.Delete(ctx, media.ID); !errors.Is(err, ErrMediaNotFound) {
		t.Errorf("second Delete() error = %v, want ErrMediaNotFound", err)
	}
}

func TestSweepOrphans(t *testing.T) {
	db := testutil.NewTestDB(t)
	dir := t.TempDir()
	svc, err := NewMediaService(db, dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	f, fh := makeUpload(t, "keep.png", pngBytes(t, 32, 32))
	media, err := svc.Upload(ctx, f, fh)
	if err != nil {
		t.Fatal(err)
	}

	// An orphan with an old mtime and a fresh orphan.
	oldOrphan := filepath.Join(dir, "1600000000000-deadbeef0000.png")
	if err := os.WriteFile(oldOrphan, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(oldOrphan, past, past); err != nil {
		t.Fatal(err)
	}
	freshOrphan := filepath.Join(dir, "1600000000001-deadbeef0001.png")
	if err := os.WriteFile(freshOrphan, []byte("in flight"), 0o644); err != nil {
		t.Fatal(err)
	}

	removed, err := svc.SweepOrphans(ctx, time.Hour)
	if err != nil {
		t.Fatalf("SweepOrphans() error: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	if _, err := os.Stat(oldOrphan); !os.IsNotExist(err) {
		t.Error("old orphan still present")
	}
	if _, err := os.Stat(freshOrphan); err != nil {
		t.Error("fresh orphan was swept")
	}
	if _, err := os.Stat(filepath.Join(dir, media.Filename)); err != nil {
		t.Error("tracked file was swept")
	}
}
