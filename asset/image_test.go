package asset

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, x%h, color.RGBA{R: 200, G: 40, B: 90, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir, "/public/assets")
	require.NoError(t, err)
	return NewStore(fs), dir
}

func TestSaveStoresJPEG(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	img, err := s.Save(ctx, bytes.NewReader(pngBytes(t, 640, 480)), "Holiday Snap.png")
	require.NoError(t, err)

	assert.Equal(t, 640, img.Width)
	assert.Equal(t, 480, img.Height)
	assert.Equal(t, "Holiday Snap.png", img.OriginalName)
	assert.Equal(t, img.ID+".jpg", img.Key)
	assert.FileExists(t, filepath.Join(dir, img.Key))
	assert.True(t, s.Exists(ctx, &img))
	assert.Equal(t, "/public/assets/"+img.Key, s.URL(img))
}

func TestSaveRejectsNonImage(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Save(context.Background(), bytes.NewReader([]byte("not an image")), "x.txt")
	assert.Error(t, err)
}

func TestScaleWidthDownscales(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	img, err := s.Save(ctx, bytes.NewReader(pngBytes(t, 1600, 900)), "wide.png")
	require.NoError(t, err)

	scaled, err := s.ScaleWidth(ctx, img, 1200)
	require.NoError(t, err)
	assert.Equal(t, 1200, scaled.Width)
	assert.Equal(t, 675, scaled.Height)
	assert.Equal(t, img.ID+"__ScaleWidth1200.jpg", scaled.Key)
	assert.FileExists(t, filepath.Join(dir, scaled.Key))

	again, err := s.ScaleWidth(ctx, img, 1200)
	require.NoError(t, err)
	assert.Equal(t, scaled.Key, again.Key)
	assert.Equal(t, 1200, again.Width)
	assert.Positive(t, scaled.Size)
	assert.Equal(t, scaled.Size, again.Size, "existing variant keeps its length")
}

func TestScaleWidthNeverUpscales(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	img, err := s.Save(ctx, bytes.NewReader(pngBytes(t, 800, 600)), "small.png")
	require.NoError(t, err)

	got, err := s.ScaleWidth(ctx, img, 1200)
	require.NoError(t, err)
	assert.Equal(t, img, got)
}

func TestScaleWidthMissingOriginal(t *testing.T) {
	s, _ := newTestStore(t)
	img := Image{ID: "gone", Key: "gone.jpg", Width: 2000, Height: 1000}

	got, err := s.ScaleWidth(context.Background(), img, 1200)
	assert.Error(t, err)
	assert.Equal(t, img, got)
}

func TestExists(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	assert.False(t, s.Exists(ctx, nil))
	assert.False(t, s.Exists(ctx, &Image{}))
	assert.False(t, s.Exists(ctx, &Image{Key: "missing.jpg"}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "present.jpg"), []byte("x"), 0o644))
	assert.True(t, s.Exists(ctx, &Image{Key: "present.jpg"}))
}

func TestFSSize(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs, err := NewFS(dir, "/public/assets")
	require.NoError(t, err)

	_, err = fs.Size(ctx, "missing.jpg")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, fs.Put(ctx, "a.jpg", []byte("12345"), "image/jpeg"))
	n, err := fs.Size(ctx, "a.jpg")
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	b, err := Open(ctx, "file://"+t.TempDir(), "https://cdn.example.com/assets/")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/assets/a.jpg", b.URL("a.jpg"))

	_, err = Open(ctx, "file://", "")
	assert.Error(t, err)

	_, err = Open(ctx, "ftp://example.com", "")
	assert.Error(t, err)
}
