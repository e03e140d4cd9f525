package sharecare

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// TwitterCardMinWidth is the narrowest image Twitter accepts for a large
// summary card.
const TwitterCardMinWidth = 280

// TwitterMetaTags renders the Twitter Card meta tags, one per line.
func (e *Extension) TwitterMetaTags(ctx context.Context, p Page) string {
	var b strings.Builder
	description, _ := e.OGDescription(p)
	writeMeta(&b, "name", "twitter:title", e.OGTitle(p))
	writeMeta(&b, "name", "twitter:description", description)

	// The site default image is not an uploaded asset and is usually too
	// small for a large card.
	if img, ok := e.OGImage(ctx, p); ok && img.Asset != nil && img.Width >= TwitterCardMinWidth {
		writeMeta(&b, "name", "twitter:card", "summary_large_image")
		writeMeta(&b, "name", "twitter:image", img.URL)
	}

	if user := strings.TrimPrefix(e.cfg.TwitterUsername, "@"); user != "" {
		writeMeta(&b, "name", "twitter:site", "@"+user)
		writeMeta(&b, "name", "twitter:creator", "@"+user)
	}
	return b.String()
}

// OpenGraphTags renders the Open Graph meta tags, one per line.
func (e *Extension) OpenGraphTags(ctx context.Context, p Page) string {
	var b strings.Builder
	writeMeta(&b, "property", "og:title", e.OGTitle(p))
	writeMeta(&b, "property", "og:type", "article")
	if link, ok := e.absoluteLink(p); ok {
		writeMeta(&b, "property", "og:url", link)
	}
	if name := e.OGSiteName(); name != "" {
		writeMeta(&b, "property", "og:site_name", name)
	}
	if description, ok := e.OGDescription(p); ok {
		writeMeta(&b, "property", "og:description", description)
	}
	if img, ok := e.OGImage(ctx, p); ok {
		writeMeta(&b, "property", "og:image", img.URL)
		if img.Width > 0 && img.Height > 0 {
			writeMeta(&b, "property", "og:image:width", strconv.Itoa(img.Width))
			writeMeta(&b, "property", "og:image:height", strconv.Itoa(img.Height))
		}
	}
	return b.String()
}

// MetaTags is everything a page head needs for link previews.
func (e *Extension) MetaTags(ctx context.Context, p Page) string {
	tags := e.OpenGraphTags(ctx, p)
	if e.cfg.TwitterCard {
		tags += e.TwitterMetaTags(ctx, p)
	}
	return tags
}

func writeMeta(b *strings.Builder, attr, key, value string) {
	b.WriteString("\n<meta ")
	b.WriteString(attr)
	b.WriteString(`="`)
	b.WriteString(key)
	b.WriteString(`" content="`)
	b.WriteString(templ.EscapeString(value))
	b.WriteString(`">`)
}
