package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/sharecare"
)

func setupEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "cli.db")
	t.Setenv("SITE_NAME", "CLI Blog")
	t.Setenv("SITE_URL", "https://cli.example.com")
	t.Setenv("DATABASE_PATH", dbPath)
	t.Setenv("PUBLIC_DIR", filepath.Join(dir, "public"))
	t.Setenv("STORAGE_URL", "file://"+filepath.Join(dir, "public", "assets"))
	t.Setenv("ENABLE_FACEBOOK_CACHE_CLEAR", "false")

	store, err := sharecare.NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.SavePage(sharecare.Post{
		Slug:    "draft-post",
		Title:   "Draft Post",
		Date:    "2024-05-01",
		Content: "<p>Still writing this.</p>",
	}))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLinksCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "links", "draft-post")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "facebook\thttps://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fcli.example.com%2Fblog%2Fdraft-post%2F", lines[0])
	assert.True(t, strings.HasPrefix(lines[3], "email\tmailto:"))
}

func TestTagsCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "tags", "draft-post")
	require.NoError(t, err)
	assert.Contains(t, out, `<meta property="og:title" content="Draft Post">`)
	assert.Contains(t, out, `<meta property="og:description" content="Still writing this.">`)
	assert.Contains(t, out, `<meta name="twitter:title" content="Draft Post">`)
}

func TestShareCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "share", "draft-post")
	require.NoError(t, err)
	var d sharecare.ShareData
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "https://cli.example.com/blog/draft-post/", d.URL)
	assert.Equal(t, "CLI Blog", d.SiteName)
}

func TestUnknownSlug(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "links", "missing")
	assert.EqualError(t, err, `no post with slug "missing"`)
}

func TestScrapeCommand(t *testing.T) {
	setupEnv(t)
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.URL.Query().Get("id")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	t.Setenv("FACEBOOK_GRAPH_URL", srv.URL+"/")

	out, err := run(t, "scrape", "https://cli.example.com/blog/draft-post/")
	require.NoError(t, err)
	assert.Equal(t, "https://cli.example.com/blog/draft-post/", gotID)
	assert.Contains(t, out, "Scrape requested")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sharecare dev\n", out)
}
