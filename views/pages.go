package views

import (
	"context"

	"github.com/a-h/templ"
)

// Home lists published posts.
func Home(site SiteConfig, posts []PostSummary) templ.Component {
	body := component(func(ctx context.Context, h *htmlWriter) {
		if len(posts) == 0 {
			h.raw("<p>No posts yet.</p>")
			return
		}
		h.raw("<ul>")
		for _, p := range posts {
			h.raw("<li><a")
			h.attr("href", p.Link)
			h.raw(">")
			h.text(p.Title)
			h.raw("</a> <small>")
			h.text(p.Date)
			h.raw("</small>")
			if p.Summary != "" {
				h.raw("<p>")
				h.text(p.Summary)
				h.raw("</p>")
			}
			h.raw("</li>")
		}
		h.raw("</ul>")
	})
	return layout(site, site.Name, "", body)
}

// Post renders a post with its share meta tags and share buttons.
func Post(site SiteConfig, post PostView) templ.Component {
	body := component(func(ctx context.Context, h *htmlWriter) {
		h.raw("<article><h1>")
		h.text(post.Title)
		h.raw("</h1><p><small>")
		h.text(post.Date)
		h.raw("</small></p>")
		h.raw(post.Content)
		h.raw("</article>")
		if len(post.ShareLinks) > 0 {
			h.raw(`<nav class="share" aria-label="Share">`)
			for _, l := range post.ShareLinks {
				h.raw("<a")
				h.attr("href", l.URL)
				h.attr("class", "share-"+l.Platform)
				if l.Platform != "email" {
					h.raw(` target="_blank" rel="noopener"`)
				}
				h.raw(">")
				h.text(l.Label)
				h.raw("</a>")
			}
			h.raw("</nav>")
		}
	})
	return layout(site, post.Title, post.MetaTags, body)
}

// NotFound is the 404 page.
func NotFound(site SiteConfig) templ.Component {
	return layout(site, "Not found", "", component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Page not found</h1><p><a href="/">Back to home</a></p>`)
	}))
}

// ServerError is the 500 page.
func ServerError(site SiteConfig) templ.Component {
	return layout(site, "Error", "", component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Something went wrong</h1><p>Please try again later.</p>`)
	}))
}
