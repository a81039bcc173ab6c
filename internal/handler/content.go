// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/emblemstudio/studio-api/internal/service"
)

// ContentHandler serves the public and admin content endpoints.
type ContentHandler struct {
	content *service.ContentService
	media   *service.MediaService
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(content *service.ContentService, media *service.MediaService) *ContentHandler {
	return &ContentHandler{content: content, media: media}
}

// Public returns the published site content: settings, services, projects.
func (h *ContentHandler) Public(w http.ResponseWriter, r *http.Request) {
	content, err := h.content.PublicContent(r.Context())
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, content)
}

// Admin returns the full editing snapshot including unpublished rows,
// recent inquiries, and media.
func (h *ContentHandler) Admin(w http.ResponseWriter, r *http.Request) {
	content, err := h.content.AdminContent(r.Context(), h.media.URLFor)
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, content)
}

// SaveSettings validates and replaces the settings document.
func (h *ContentHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var payload settingsPayload
	if !DecodeJSON(w, r, &payload) {
		return
	}
	if payload.validate().Write(w) {
		return
	}

	if err := h.content.SaveSettings(r.Context(), payload.toModel()); err != nil {
		WriteInternalError(w, r, err)
		return
	}
	WriteStatusOK(w, http.StatusOK)
}

// SaveServices validates and atomically replaces the services list.
func (h *ContentHandler) SaveServices(w http.ResponseWriter, r *http.Request) {
	var payload []servicePayload
	if !DecodeJSON(w, r, &payload) {
		return
	}
	items, fe := validateServices(payload)
	if fe.Write(w) {
		return
	}

	if err := h.content.ReplaceServices(r.Context(), items); err != nil {
		WriteInternalError(w, r, err)
		return
	}
	WriteStatusOK(w, http.StatusOK)
}

// SaveProjects validates and atomically replaces the projects list.
func (h *ContentHandler) SaveProjects(w http.ResponseWriter, r *http.Request) {
	var payload []projectPayload
	if !DecodeJSON(w, r, &payload) {
		return
	}
	items, fe := validateProjects(payload)
	if fe.Write(w) {
		return
	}

	if err := h.content.ReplaceProjects(r.Context(), items); err != nil {
		WriteInternalError(w, r, err)
		return
	}
	WriteStatusOK(w, http.StatusOK)
}
