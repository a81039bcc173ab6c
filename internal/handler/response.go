// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP API endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Error codes used in API responses.
const (
	CodeValidation   = "validation_error"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeTooLarge     = "payload_too_large"
	CodeInternal     = "internal_error"
)

// MaxJSONBody caps JSON request bodies at 1MB.
const MaxJSONBody = 1 << 20

type apiError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// WriteError writes a JSON error envelope.
func WriteError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	resp := apiError{}
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	WriteJSON(w, status, resp)
}

// WriteInternalError logs the underlying error and writes a generic 500.
// Details never reach the client.
func WriteInternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	WriteError(w, http.StatusInternalServerError, CodeInternal, "Server error", nil)
}

// WriteStatusOK writes the {"status":"ok"} acknowledgement body.
func WriteStatusOK(w http.ResponseWriter, status int) {
	WriteJSON(w, status, map[string]string{"status": "ok"})
}

// DecodeJSON reads a size-capped JSON body into dst. A false return means an
// error response was already written.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, "Request body too large", nil)
			return false
		}
		WriteError(w, http.StatusBadRequest, CodeValidation, "Invalid payload",
			map[string]string{"body": "malformed JSON"})
		return false
	}
	return true
}
