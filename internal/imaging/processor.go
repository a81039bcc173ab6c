// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging generates thumbnail variants for uploaded images.
package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	_ "image/gif"  // GIF decoding
	_ "image/jpeg" // JPEG decoding
	_ "image/png"  // PNG decoding

	_ "golang.org/x/image/webp" // WebP decoding
)

// ThumbnailSize is the bounding box for generated thumbnails.
const ThumbnailSize = 480

// JPEGQuality is the encode quality for thumbnail output.
const JPEGQuality = 82

// ThumbPrefix is prepended to the source filename for the thumbnail variant.
const ThumbPrefix = "thumb_"

// Dimensions returns the pixel width and height of an image file without
// decoding the full image.
func Dimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// ThumbName returns the thumbnail filename for a stored upload. Thumbnails
// are always JPEG regardless of the source format.
func ThumbName(filename string) string {
	ext := filepath.Ext(filename)
	return ThumbPrefix + filename[:len(filename)-len(ext)] + ".jpg"
}

// GenerateThumbnail decodes the source image, fits it into the thumbnail
// bounding box preserving aspect ratio, and writes it as JPEG next to the
// source. Images already smaller than the box are kept at their own size.
func GenerateThumbnail(srcPath string) (string, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("opening source image: %w", err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("decoding source image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > ThumbnailSize || bounds.Dy() > ThumbnailSize {
		img = imaging.Fit(img, ThumbnailSize, ThumbnailSize, imaging.Lanczos)
	}

	dir, base := filepath.Split(srcPath)
	dstPath := filepath.Join(dir, ThumbName(base))
	if err := imaging.Save(img, dstPath, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return "", fmt.Errorf("saving thumbnail: %w", err)
	}
	return dstPath, nil
}
