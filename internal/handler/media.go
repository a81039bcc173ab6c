// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/emblemstudio/studio-api/internal/service"
	"github.com/emblemstudio/studio-api/internal/util"
)

// MediaHandler serves upload, listing, deletion, and file delivery.
type MediaHandler struct {
	media    *service.MediaService
	maxBytes int64
}

// NewMediaHandler creates a MediaHandler with the given upload size cap.
func NewMediaHandler(media *service.MediaService, maxBytes int64) *MediaHandler {
	return &MediaHandler{media: media, maxBytes: maxBytes}
}

// Upload accepts a multipart image upload in the "file" field.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxBytes {
		WriteError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, "File too large", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			WriteError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, "File too large", nil)
			return
		}
		WriteError(w, http.StatusBadRequest, CodeValidation, "Invalid multipart payload", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeValidation, "No file uploaded", nil)
		return
	}
	defer file.Close()

	// Fast pre-check on the declared type. The stored bytes are sniffed
	// after write regardless; this only rejects the obvious early.
	if declared := header.Header.Get("Content-Type"); declared != "" && !strings.HasPrefix(declared, "image/") {
		WriteError(w, http.StatusBadRequest, CodeValidation, "Unsupported file type", nil)
		return
	}

	media, err := h.media.Upload(r.Context(), file, header)
	if errors.Is(err, service.ErrUnsupportedType) {
		WriteError(w, http.StatusBadRequest, CodeValidation, "Unsupported file type", nil)
		return
	}
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{"media": media})
}

// List returns recent media rows for the admin.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	media, err := h.media.List(r.Context(), 200)
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"media": media})
}

// Delete removes a media row and its files.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, CodeValidation, "Invalid id", nil)
		return
	}

	err = h.media.Delete(r.Context(), id)
	if errors.Is(err, service.ErrMediaNotFound) {
		WriteError(w, http.StatusNotFound, CodeNotFound, "Not found", nil)
		return
	}
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeFile delivers a stored upload. Only filenames the media service
// could have generated are ever opened, so traversal is impossible.
func (h *MediaHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if !util.IsValidUploadName(filename) {
		WriteError(w, http.StatusNotFound, CodeNotFound, "Not found", nil)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=604800")
	http.ServeFile(w, r, h.media.FilePath(filename))
}
