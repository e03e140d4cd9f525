package sharecare

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/eringen/sharecare/asset"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testImage(id string) asset.Image {
	return asset.Image{
		ID:           id,
		Key:          id + ".jpg",
		OriginalName: id + ".png",
		Width:        1200,
		Height:       630,
		Size:         4096,
		UploadedAt:   "2024-03-01T10:00:00Z",
	}
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestNewStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := s.SavePage(testPost()); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}
	s.Close()

	s, err = NewStore(path)
	if err != nil {
		t.Fatalf("reopening store failed: %v", err)
	}
	defer s.Close()
	if _, err := s.GetPage("hello-world"); err != nil {
		t.Fatalf("GetPage after reopen failed: %v", err)
	}
}

func TestSaveAndGetPage(t *testing.T) {
	s := setupTestStore(t)

	og := testImage("og")
	pin := testImage("pin")
	for _, img := range []asset.Image{og, pin} {
		if err := s.SaveImage(img); err != nil {
			t.Fatalf("SaveImage failed: %v", err)
		}
	}

	post := testPost()
	post.Summary = "Meta description"
	post.Share = Overrides{
		OGTitleCustom:        "Share title",
		OGDescriptionCustom:  "Share description",
		OGImageCustom:        &og,
		PinterestImageCustom: &pin,
	}
	if err := s.SavePage(post); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}

	got, err := s.GetPage("hello-world")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got.Title != post.Title || got.Date != post.Date || got.Content != post.Content {
		t.Errorf("got %+v, want %+v", got, post)
	}
	if got.Summary != "Meta description" {
		t.Errorf("Summary = %q", got.Summary)
	}
	if !got.Published {
		t.Error("Published should be true")
	}
	if got.Share.OGTitleCustom != "Share title" || got.Share.OGDescriptionCustom != "Share description" {
		t.Errorf("overrides = %+v", got.Share)
	}
	if got.Share.OGImageCustom == nil || *got.Share.OGImageCustom != og {
		t.Errorf("OGImageCustom = %+v, want %+v", got.Share.OGImageCustom, og)
	}
	if got.Share.PinterestImageCustom == nil || got.Share.PinterestImageCustom.Key != "pin.jpg" {
		t.Errorf("PinterestImageCustom = %+v", got.Share.PinterestImageCustom)
	}
	if got.SummaryImage != nil {
		t.Errorf("SummaryImage = %+v, want nil", got.SummaryImage)
	}
	if got.SiteURL != "" {
		t.Errorf("SiteURL should not be stored, got %q", got.SiteURL)
	}
}

func TestSavePageUpdate(t *testing.T) {
	s := setupTestStore(t)
	post := testPost()
	post.Share.OGTitleCustom = "First"
	if err := s.SavePage(post); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}

	post.Share.OGTitleCustom = ""
	post.Title = "Updated"
	if err := s.SavePage(post); err != nil {
		t.Fatalf("SavePage update failed: %v", err)
	}

	got, err := s.GetPage(post.Slug)
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got.Title != "Updated" || got.Share.OGTitleCustom != "" {
		t.Errorf("got title %q override %q", got.Title, got.Share.OGTitleCustom)
	}
}

func TestSavePageRejectsLongOverrides(t *testing.T) {
	s := setupTestStore(t)
	post := testPost()
	for i := 0; i <= MaxTitleLength; i++ {
		post.Share.OGTitleCustom += "x"
	}
	if err := s.SavePage(post); !errors.Is(err, ErrTitleTooLong) {
		t.Fatalf("SavePage error = %v, want ErrTitleTooLong", err)
	}
	if _, err := s.GetPageAny(post.Slug); !errors.Is(err, ErrNotFound) {
		t.Errorf("rejected post was stored: %v", err)
	}
}

func TestDanglingImageResolvesToNil(t *testing.T) {
	s := setupTestStore(t)
	img := testImage("gone")
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	post := testPost()
	post.SummaryImage = &img
	if err := s.SavePage(post); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}
	if err := s.DeleteImage("gone"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}

	got, err := s.GetPage(post.Slug)
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got.SummaryImage != nil {
		t.Errorf("SummaryImage = %+v, want nil", got.SummaryImage)
	}
}

func TestGetPageNotFound(t *testing.T) {
	s := setupTestStore(t)
	if _, err := s.GetPage("nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPage error = %v, want ErrNotFound", err)
	}
}

func TestGetPageUnpublished(t *testing.T) {
	s := setupTestStore(t)
	post := testPost()
	post.Published = false
	if err := s.SavePage(post); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}

	if _, err := s.GetPage(post.Slug); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPage should not return drafts, got %v", err)
	}
	got, err := s.GetPageAny(post.Slug)
	if err != nil {
		t.Fatalf("GetPageAny failed: %v", err)
	}
	if got.Published {
		t.Error("Published should be false")
	}
}

func TestSetPublished(t *testing.T) {
	s := setupTestStore(t)
	post := testPost()
	post.Published = false
	if err := s.SavePage(post); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}

	if err := s.SetPublished(post.Slug, true); err != nil {
		t.Fatalf("SetPublished failed: %v", err)
	}
	if _, err := s.GetPage(post.Slug); err != nil {
		t.Errorf("published post not found: %v", err)
	}
	if err := s.SetPublished("missing", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetPublished on missing post = %v, want ErrNotFound", err)
	}
}

func TestListPages(t *testing.T) {
	s := setupTestStore(t)
	posts := []Post{
		{Slug: "old", Title: "Old", Date: "2024-01-01", Published: true},
		{Slug: "new", Title: "New", Date: "2024-03-01", Published: true},
		{Slug: "draft", Title: "Draft", Date: "2024-02-01"},
	}
	for _, p := range posts {
		if err := s.SavePage(p); err != nil {
			t.Fatalf("SavePage failed: %v", err)
		}
	}

	got, err := s.ListPages()
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "new" || got[1].Slug != "old" {
		t.Errorf("ListPages = %+v", got)
	}

	all, err := s.ListAllPages()
	if err != nil {
		t.Fatalf("ListAllPages failed: %v", err)
	}
	if len(all) != 3 || all[1].Slug != "draft" {
		t.Errorf("ListAllPages = %+v", all)
	}
}

func TestDeletePage(t *testing.T) {
	s := setupTestStore(t)
	if err := s.SavePage(testPost()); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}
	if err := s.DeletePage("hello-world"); err != nil {
		t.Fatalf("DeletePage failed: %v", err)
	}
	if _, err := s.GetPageAny("hello-world"); !errors.Is(err, ErrNotFound) {
		t.Errorf("post should be deleted, got %v", err)
	}
	if err := s.DeletePage("nonexistent"); err != nil {
		t.Errorf("deleting a missing post should not fail: %v", err)
	}
}

func TestImages(t *testing.T) {
	s := setupTestStore(t)
	older := testImage("older")
	newer := testImage("newer")
	newer.UploadedAt = "2024-03-02T10:00:00Z"
	for _, img := range []asset.Image{older, newer} {
		if err := s.SaveImage(img); err != nil {
			t.Fatalf("SaveImage failed: %v", err)
		}
	}

	got, err := s.GetImage("older")
	if err != nil {
		t.Fatalf("GetImage failed: %v", err)
	}
	if got != older {
		t.Errorf("GetImage = %+v, want %+v", got, older)
	}

	list, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != "newer" {
		t.Errorf("ListImages = %+v", list)
	}

	if _, err := s.GetImage("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetImage error = %v, want ErrNotFound", err)
	}
}

func TestPageCache(t *testing.T) {
	s := setupTestStore(t)
	c := NewPageCache(s, time.Hour)

	posts, err := c.ListPages()
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("empty cache should return an empty slice, got %#v", posts)
	}

	if err := s.SavePage(testPost()); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}
	if _, err := c.GetPage("hello-world"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cache should still be stale, got %v", err)
	}

	c.Invalidate()
	got, err := c.GetPage("hello-world")
	if err != nil {
		t.Fatalf("GetPage after Invalidate failed: %v", err)
	}
	if got.Title != "Hello World" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestPageCacheExpires(t *testing.T) {
	s := setupTestStore(t)
	c := NewPageCache(s, time.Nanosecond)
	if _, err := c.ListPages(); err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if err := s.SavePage(testPost()); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}
	time.Sleep(time.Millisecond)

	posts, err := c.ListPages()
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("expired cache should reload, got %d posts", len(posts))
	}
}
