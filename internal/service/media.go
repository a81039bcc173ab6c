// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emblemstudio/studio-api/internal/imaging"
	"github.com/emblemstudio/studio-api/internal/model"
	"github.com/emblemstudio/studio-api/internal/store"
)

// Media service errors.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrMediaNotFound   = errors.New("media not found")
)

// MediaService stores uploaded files on disk with a database row per file.
type MediaService struct {
	queries    *store.Queries
	uploadsDir string
}

// NewMediaService creates a MediaService rooted at uploadsDir, creating the
// directory if needed.
func NewMediaService(db *sql.DB, uploadsDir string) (*MediaService, error) {
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &MediaService{queries: store.New(db), uploadsDir: uploadsDir}, nil
}

// URLFor returns the public URL for a stored filename.
func (s *MediaService) URLFor(filename string) string {
	return "/uploads/" + filename
}

// FilePath returns the on-disk path for a stored filename.
func (s *MediaService) FilePath(filename string) string {
	return filepath.Join(s.uploadsDir, filename)
}

// Upload writes the file to disk under a generated name, verifies the real
// type by sniffing the stored bytes, and records a database row. Files whose
// content is not an allowed image format are removed and rejected; a spoofed
// declared type never survives.
func (s *MediaService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (model.Media, error) {
	filename := generateFilename(header.Filename)
	path := filepath.Join(s.uploadsDir, filename)

	size, err := writeFile(path, file)
	if err != nil {
		return model.Media{}, fmt.Errorf("storing upload: %w", err)
	}

	mimeType, err := sniffMime(path)
	if err != nil {
		_ = os.Remove(path)
		return model.Media{}, fmt.Errorf("sniffing upload: %w", err)
	}
	if !model.AllowedUploadMimes[mimeType] {
		_ = os.Remove(path)
		return model.Media{}, ErrUnsupportedType
	}

	width, height, err := imaging.Dimensions(path)
	if err != nil {
		// Sniffed as an image but undecodable; treat like a spoof.
		_ = os.Remove(path)
		return model.Media{}, ErrUnsupportedType
	}

	// Thumbnail generation is best-effort; the original is the record.
	if _, err := imaging.GenerateThumbnail(path); err != nil {
		slog.Warn("thumbnail generation failed", "filename", filename, "error", err)
	}

	media, err := s.queries.CreateMedia(ctx, store.CreateMediaParams{
		Filename:     filename,
		OriginalName: header.Filename,
		Mime:         mimeType,
		Size:         size,
		Width:        int64(width),
		Height:       int64(height),
	})
	if err != nil {
		_ = os.Remove(path)
		_ = os.Remove(filepath.Join(s.uploadsDir, imaging.ThumbName(filename)))
		return model.Media{}, fmt.Errorf("recording upload: %w", err)
	}

	media.URL = s.URLFor(media.Filename)
	return media, nil
}

// List returns recent media rows with their public URLs, newest first.
func (s *MediaService) List(ctx context.Context, limit int64) ([]model.Media, error) {
	media, err := s.queries.ListMedia(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range media {
		media[i].URL = s.URLFor(media[i].Filename)
	}
	return media, nil
}

// Delete removes the database row first, then the file and its thumbnail.
// A missing file is treated as success so retries converge.
func (s *MediaService) Delete(ctx context.Context, id int64) error {
	media, err := s.queries.GetMedia(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMediaNotFound
	}
	if err != nil {
		return fmt.Errorf("loading media: %w", err)
	}

	if err := s.queries.DeleteMedia(ctx, id); err != nil {
		return fmt.Errorf("deleting media row: %w", err)
	}

	for _, name := range []string{media.Filename, imaging.ThumbName(media.Filename)} {
		if err := os.Remove(filepath.Join(s.uploadsDir, name)); err != nil && !os.IsNotExist(err) {
			slog.Warn("removing media file", "filename", name, "error", err)
		}
	}
	return nil
}

// SweepOrphans removes files in the uploads directory that have no database
// row and are older than minAge. Fresh files are skipped so an in-flight
// upload is never swept between its disk write and its row insert.
func (s *MediaService) SweepOrphans(ctx context.Context, minAge time.Duration) (int, error) {
	filenames, err := s.queries.ListMediaFilenames(ctx)
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(filenames)*2)
	for _, name := range filenames {
		known[name] = true
		known[imaging.ThumbName(name)] = true
	}

	entries, err := os.ReadDir(s.uploadsDir)
	if err != nil {
		return 0, fmt.Errorf("reading uploads directory: %w", err)
	}

	removed := 0
	cutoff := time.Now().Add(-minAge)
	for _, entry := range entries {
		if entry.IsDir() || known[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.uploadsDir, entry.Name())); err != nil {
			slog.Warn("removing orphan file", "filename", entry.Name(), "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// generateFilename builds a collision-resistant stored name: millisecond
// timestamp, a short random id, and a normalized extension.
func generateFilename(originalName string) string {
	id := uuid.New()
	ext := strings.ToLower(filepath.Ext(originalName))
	if !validExt(ext) {
		ext = ".bin"
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(id[:6]), ext)
}

func validExt(ext string) bool {
	if len(ext) < 3 || len(ext) > 6 || ext[0] != '.' {
		return false
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func writeFile(path string, src io.Reader) (int64, error) {
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}
	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}
	return size, nil
}

// sniffMime derives the MIME type from the stored file's leading bytes,
// ignoring whatever type the client declared.
func sniffMime(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.ToLower(strings.Split(http.DetectContentType(buf[:n]), ";")[0]), nil
}
