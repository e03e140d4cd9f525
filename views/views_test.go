package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/sharecare/cms"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestSharePreview(t *testing.T) {
	p := Preview{
		Title:       `Fish & "Chips"`,
		Description: "Crispy.",
		ImageURL:    "https://example.com/a.jpg",
		Link:        "https://example.com/blog/fish/",
	}

	out := render(t, SharePreview(p))
	assert.Contains(t, out, "Fish &amp; &#34;Chips&#34;")
	assert.Contains(t, out, "EXAMPLE.COM")
	assert.Contains(t, out, `src="https://example.com/a.jpg"`)
	assert.NotContains(t, out, "<h4>Twitter</h4>")
	assert.NotContains(t, out, "<h4>Pinterest</h4>")

	p.IncludeTwitter = true
	p.IncludePinterest = true
	p.PinterestImageURL = "https://example.com/pin.jpg"
	out = render(t, SharePreview(p))
	assert.Contains(t, out, "<h4>Twitter</h4>")
	assert.Contains(t, out, "<h4>Pinterest</h4>")
	assert.Contains(t, out, `src="https://example.com/pin.jpg"`)
}

func TestPostIncludesMetaTagsAndShareLinks(t *testing.T) {
	post := PostView{
		PostSummary: PostSummary{Title: "Hello", Date: "2024-01-02"},
		Content:     "<p>Body</p>",
		MetaTags:    "\n<meta property=\"og:title\" content=\"Hello\">",
		ShareLinks: []ShareLink{
			{Platform: "facebook", Label: "Facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=x"},
			{Platform: "email", Label: "Email", URL: "mailto:?subject=a&body=b"},
		},
	}
	out := render(t, Post(SiteConfig{Name: "Blog"}, post))
	assert.Contains(t, out, `<meta property="og:title" content="Hello">`)
	assert.Contains(t, out, "<title>Hello | Blog</title>")
	assert.Contains(t, out, "<p>Body</p>")
	assert.Contains(t, out, `href="https://www.facebook.com/sharer/sharer.php?u=x"`)
	assert.Contains(t, out, `href="mailto:?subject=a&amp;body=b"`)
}

func TestAdminEditRendersFields(t *testing.T) {
	var fields cms.FieldList
	fields.AddFieldToTab("Root.Main", cms.NewText("Title", "Title", "Hi"))
	share := cms.NewText("OGTitleCustom", "Share title", "")
	share.Placeholder = "Hi"
	share.MaxLength = 90
	fields.AddFieldToTab("Root.Share", share)
	fields.AddFieldToTab("Root.Share", cms.NewLiteral("ShareCarePreview", `<div class="share-preview"></div>`))
	img := cms.NewImageUpload("OGImageCustom", "Share image", "/public/assets/a.jpg")
	img.Description = `<a href="#">ratio</a>`
	fields.AddFieldToTab("Root.Share", img)

	out := render(t, AdminEdit(SiteConfig{Name: "Blog"}, EditForm{Slug: "hi", Fields: &fields, CSRFToken: "tok"}))
	assert.Contains(t, out, `<legend>Share</legend>`)
	assert.Contains(t, out, `name="OGTitleCustom"`)
	assert.Contains(t, out, `placeholder="Hi"`)
	assert.Contains(t, out, `maxlength="90"`)
	assert.Contains(t, out, `<div class="share-preview"></div>`)
	assert.Contains(t, out, `name="OGImageCustom_remove"`)
	assert.Contains(t, out, `<a href="#">ratio</a>`)
	assert.Contains(t, out, `name="_csrf" value="tok"`)
}

func TestDomain(t *testing.T) {
	assert.Equal(t, "EXAMPLE.COM", Domain("https://example.com:8080/x"))
	assert.Equal(t, "", Domain(""))
}
