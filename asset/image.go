// Package asset stores uploaded images and produces resized variants of them.
package asset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	// MaxStoredWidth bounds originals so variants never have to decode
	// arbitrarily large uploads.
	MaxStoredWidth = 4096
	jpegQuality    = 85
)

// Image is an uploaded image asset.
type Image struct {
	ID           string
	Key          string // storage key of the file
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// Store wraps a Backend with image processing.
type Store struct {
	backend Backend
}

// NewStore returns a Store writing to b.
func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// Save decodes src, shrinks it to MaxStoredWidth if needed, and stores it as JPEG.
func (s *Store) Save(ctx context.Context, src io.Reader, originalName string) (Image, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Dx() > MaxStoredWidth {
		img = scale(img, MaxStoredWidth)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, fmt.Errorf("encode jpeg: %w", err)
	}

	id := uuid.NewString()
	out := Image{
		ID:           id,
		Key:          id + ".jpg",
		OriginalName: originalName,
		Width:        img.Bounds().Dx(),
		Height:       img.Bounds().Dy(),
		Size:         buf.Len(),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.backend.Put(ctx, out.Key, buf.Bytes(), "image/jpeg"); err != nil {
		return Image{}, err
	}
	return out, nil
}

// Exists reports whether img refers to a stored file.
func (s *Store) Exists(ctx context.Context, img *Image) bool {
	if img == nil || img.Key == "" {
		return false
	}
	ok, err := s.backend.Exists(ctx, img.Key)
	return err == nil && ok
}

// URL returns the public link of img.
func (s *Store) URL(img Image) string {
	return s.backend.URL(img.Key)
}

// Delete removes the original file of img.
func (s *Store) Delete(ctx context.Context, img Image) error {
	return s.backend.Delete(ctx, img.Key)
}

// ScaleWidth returns a variant of img that is width pixels wide, keeping the
// aspect ratio. Images already at or below width are returned unchanged.
// Variants are written next to the original and reused once present.
func (s *Store) ScaleWidth(ctx context.Context, img Image, width int) (Image, error) {
	if width <= 0 || img.Width <= width {
		return img, nil
	}
	height := img.Height * width / img.Width
	if height < 1 {
		height = 1
	}
	variant := img
	variant.Key = variantKey(img.Key, "ScaleWidth"+strconv.Itoa(width))
	variant.Width = width
	variant.Height = height

	if n, err := s.backend.Size(ctx, variant.Key); err == nil {
		variant.Size = int(n)
		return variant, nil
	}

	rc, err := s.backend.Get(ctx, img.Key)
	if err != nil {
		return img, fmt.Errorf("read original: %w", err)
	}
	defer rc.Close()
	src, _, err := image.Decode(rc)
	if err != nil {
		return img, fmt.Errorf("decode original: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scale(src, width), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return img, fmt.Errorf("encode variant: %w", err)
	}
	if err := s.backend.Put(ctx, variant.Key, buf.Bytes(), "image/jpeg"); err != nil {
		return img, err
	}
	variant.Size = buf.Len()
	return variant, nil
}

func scale(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	newH := h * width / w
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// variantKey turns "abc.jpg" into "abc__ScaleWidth1200.jpg".
func variantKey(key, suffix string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "__" + suffix + ext
}
