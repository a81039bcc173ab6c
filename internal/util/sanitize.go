// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small shared helpers.
package util

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// StripTags removes all HTML markup from free-form text and decodes the
// entities the sanitizer introduces, leaving plain text for storage.
func StripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// uploadNamePattern matches the filenames the media service generates:
// a millisecond timestamp, a dash, a short hex id, and an extension, with
// an optional thumbnail prefix.
var uploadNamePattern = regexp.MustCompile(`^(thumb_)?[0-9]{10,16}-[0-9a-f]{12}\.[a-z0-9]{2,5}$`)

// IsValidUploadName reports whether a requested filename is one the media
// service could have generated. Anything else, including traversal
// attempts, is rejected before touching the filesystem.
func IsValidUploadName(name string) bool {
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return false
	}
	return uploadNamePattern.MatchString(name)
}
