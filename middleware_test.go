package sharecare

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheControlFor(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"/public/assets/a.jpg", "public, max-age=31536000, immutable"},
		{"/admin/", "no-store"},
		{"/admin/page/hello-world/", "no-store"},
		{"/feed.xml", "public, max-age=86400"},
		{"/sitemap.xml", "public, max-age=86400"},
		{"/blog/hello-world/share.json", "public, max-age=300"},
		{"/blog/hello-world/", "public, max-age=3600"},
		{"/", "public, max-age=3600"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cacheControlFor(tt.path), tt.path)
	}
}

func TestIsFilePath(t *testing.T) {
	app := &App{Config: testConfig(t.TempDir())}
	for path, want := range map[string]bool{
		"/public/style.css":            true,
		"/public/assets/a.jpg":         true,
		"/blog/hello-world/share.json": true,
		"/feed.xml":                    true,
		"/apple-touch-icon.png":        true,
		"/blog/hello-world":            false,
		"/admin":                       false,
	} {
		assert.Equal(t, want, app.isFilePath(path), path)
	}
}

func TestAdminResponsesAreNotCached(t *testing.T) {
	app := newTestApp(t, nil)
	rec := newBrowser(t, app).get("/admin/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}
