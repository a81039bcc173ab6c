// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/emblemstudio/studio-api/internal/service"
	"github.com/emblemstudio/studio-api/internal/store"
	"github.com/emblemstudio/studio-api/internal/util"
)

// InquiryHandler serves the public contact form and the admin inquiry list.
type InquiryHandler struct {
	content *service.ContentService
}

// NewInquiryHandler creates an InquiryHandler.
func NewInquiryHandler(content *service.ContentService) *InquiryHandler {
	return &InquiryHandler{content: content}
}

// Create accepts a contact form submission. Bots that fill the honeypot
// field get the same 201 as everyone else, but nothing is stored.
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload inquiryPayload
	if !DecodeJSON(w, r, &payload) {
		return
	}
	if payload.validate().Write(w) {
		return
	}

	if payload.Website != "" {
		WriteStatusOK(w, http.StatusCreated)
		return
	}

	err := h.content.CreateInquiry(r.Context(), store.CreateInquiryParams{
		Name:    util.StripTags(payload.Name),
		Email:   payload.Email,
		Company: util.StripTags(payload.Company),
		Message: util.StripTags(payload.Message),
	})
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}
	WriteStatusOK(w, http.StatusCreated)
}

// List returns recent inquiries for the admin, newest first.
func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.content.ListInquiries(r.Context(), 100)
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"inquiries": inquiries})
}
