package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// ErrNotFound is returned by a Backend when the requested key does not exist.
var ErrNotFound = errors.New("asset: not found")

// Backend stores asset bytes under flat keys and knows how to link to them.
type Backend interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
	// Size returns the stored length of key, or ErrNotFound.
	Size(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
	// URL returns the public link for key. It may be site-relative.
	URL(key string) string
}

// Open builds a Backend from a storage URL:
//
//	file://public/assets
//	s3://bucket?region=eu-west-1&endpoint=http://localhost:9000&path_style=true
//	s3://bucket?access_key_id=AKIA...&secret_access_key=...
//
// S3 keys left out of the URL come from AWS_ACCESS_KEY_ID and
// AWS_SECRET_ACCESS_KEY, then the default AWS chain.
// baseURL is the public prefix assets are served under.
func Open(ctx context.Context, storageURL, baseURL string) (Backend, error) {
	switch {
	case strings.HasPrefix(storageURL, "file://"):
		dir := strings.TrimPrefix(storageURL, "file://")
		if dir == "" {
			return nil, fmt.Errorf("asset: empty path in storage URL %q", storageURL)
		}
		return NewFS(dir, baseURL)
	case strings.HasPrefix(storageURL, "s3://"):
		cfg, err := parseS3URL(storageURL, baseURL)
		if err != nil {
			return nil, err
		}
		return NewS3(ctx, cfg)
	}
	return nil, fmt.Errorf("asset: unsupported storage URL %q (use file://... or s3://...)", storageURL)
}

func parseS3URL(storageURL, baseURL string) (S3Config, error) {
	u, err := url.Parse(storageURL)
	if err != nil {
		return S3Config{}, fmt.Errorf("asset: parse storage URL: %w", err)
	}
	if u.Host == "" {
		return S3Config{}, fmt.Errorf("asset: missing bucket in storage URL %q", storageURL)
	}
	q := u.Query()
	pathStyle, _ := strconv.ParseBool(q.Get("path_style"))
	cfg := S3Config{
		Bucket:          u.Host,
		Region:          q.Get("region"),
		Endpoint:        q.Get("endpoint"),
		UsePathStyle:    pathStyle,
		AccessKeyID:     q.Get("access_key_id"),
		SecretAccessKey: q.Get("secret_access_key"),
		BaseURL:         baseURL,
	}
	if cfg.AccessKeyID == "" {
		cfg.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
	return cfg, nil
}

func joinURL(base, key string) string {
	if base == "" {
		return "/" + key
	}
	return strings.TrimRight(base, "/") + "/" + key
}
