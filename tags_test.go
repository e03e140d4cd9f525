package sharecare

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// metaContent parses rendered tags into key -> content, keyed by the
// property or name attribute.
func metaContent(t *testing.T, tags string) map[string]string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><head>" + tags + "</head></html>"))
	require.NoError(t, err)
	out := map[string]string{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var key, content string
			for _, a := range n.Attr {
				switch a.Key {
				case "property", "name":
					key = a.Val
				case "content":
					content = a.Val
				}
			}
			out[key] = content
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func TestOpenGraphTags(t *testing.T) {
	env := newTestEnv(t)
	p := testPost()
	p.Share.OGImageCustom = env.image(t, 1600, 800)

	tags := env.ext.OpenGraphTags(context.Background(), p)
	assert.Contains(t, tags, `<meta property="og:title" content="Hello World">`)

	m := metaContent(t, tags)
	assert.Equal(t, "article", m["og:type"])
	assert.Equal(t, "https://example.com/blog/hello-world/", m["og:url"])
	assert.Equal(t, "Example Blog", m["og:site_name"])
	assert.Equal(t, "First sentence here. Second one.", m["og:description"])
	assert.True(t, strings.HasPrefix(m["og:image"], "https://example.com/public/assets/"))
	assert.Equal(t, "1200", m["og:image:width"])
	assert.Equal(t, "600", m["og:image:height"])
}

func TestOpenGraphTagsMinimalPage(t *testing.T) {
	env := newTestEnv(t)

	m := metaContent(t, env.ext.OpenGraphTags(context.Background(), titled("Bare")))
	assert.Equal(t, "Bare", m["og:title"])
	assert.NotContains(t, m, "og:url")
	assert.NotContains(t, m, "og:description")
	assert.NotContains(t, m, "og:image")
}

func TestOpenGraphTagsEscapeValues(t *testing.T) {
	env := newTestEnv(t)
	p := testPost()
	p.Share.OGTitleCustom = `Say "hi" <now> & later`

	tags := env.ext.OpenGraphTags(context.Background(), p)
	assert.NotContains(t, tags, "<now>")
	assert.Equal(t, `Say "hi" <now> & later`, metaContent(t, tags)["og:title"])
}

func TestTwitterMetaTags(t *testing.T) {
	env := newTestEnv(t, func(c *Config) { c.TwitterUsername = "@example" })
	p := testPost()
	p.Share.OGImageCustom = env.image(t, 800, 418)

	tags := env.ext.TwitterMetaTags(context.Background(), p)
	assert.Contains(t, tags, `<meta name="twitter:card" content="summary_large_image">`)

	m := metaContent(t, tags)
	assert.Equal(t, "Hello World", m["twitter:title"])
	assert.Equal(t, "First sentence here. Second one.", m["twitter:description"])
	assert.Equal(t, "https://example.com/public/assets/"+p.Share.OGImageCustom.Key, m["twitter:image"])
	assert.Equal(t, "@example", m["twitter:site"])
	assert.Equal(t, "@example", m["twitter:creator"])
}

func TestTwitterMetaTagsCardNeedsWideAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("narrow upload", func(t *testing.T) {
		env := newTestEnv(t)
		p := testPost()
		p.Share.OGImageCustom = env.image(t, TwitterCardMinWidth-1, 200)
		m := metaContent(t, env.ext.TwitterMetaTags(ctx, p))
		assert.NotContains(t, m, "twitter:card")
		assert.NotContains(t, m, "twitter:image")
	})

	t.Run("site default", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeIcon(t, 512)
		m := metaContent(t, env.ext.TwitterMetaTags(ctx, testPost()))
		assert.NotContains(t, m, "twitter:card")
	})

	t.Run("threshold", func(t *testing.T) {
		env := newTestEnv(t)
		p := testPost()
		p.Share.OGImageCustom = env.image(t, TwitterCardMinWidth, 200)
		m := metaContent(t, env.ext.TwitterMetaTags(ctx, p))
		assert.Equal(t, "summary_large_image", m["twitter:card"])
	})
}

func TestTwitterMetaTagsUsername(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t, func(c *Config) { c.TwitterUsername = "example" })
	m := metaContent(t, env.ext.TwitterMetaTags(ctx, testPost()))
	assert.Equal(t, "@example", m["twitter:site"])

	env = newTestEnv(t)
	m = metaContent(t, env.ext.TwitterMetaTags(ctx, testPost()))
	assert.NotContains(t, m, "twitter:site")
	assert.NotContains(t, m, "twitter:creator")
}

func TestMetaTags(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	tags := env.ext.MetaTags(ctx, testPost())
	assert.Contains(t, tags, `property="og:title"`)
	assert.Contains(t, tags, `name="twitter:title"`)
	assert.True(t, strings.HasPrefix(tags, "\n<meta "))

	off := newTestEnv(t, func(c *Config) { c.TwitterCard = false })
	tags = off.ext.MetaTags(ctx, testPost())
	assert.Contains(t, tags, `property="og:title"`)
	assert.NotContains(t, tags, "twitter:")
}
