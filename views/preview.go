package views

import (
	"context"

	"github.com/a-h/templ"
)

// SharePreview approximates how the page appears when shared on Facebook,
// and optionally Twitter and Pinterest.
func SharePreview(p Preview) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		domain := Domain(p.Link)

		h.raw(`<div class="share-preview">`)
		h.raw(`<h4>Facebook</h4><div class="preview-card facebook">`)
		previewImage(h, p.ImageURL)
		h.raw(`<div class="meta"><div class="domain">`)
		h.text(domain)
		h.raw(`</div><div class="title">`)
		h.text(p.Title)
		h.raw(`</div><div class="desc">`)
		h.text(p.Description)
		h.raw(`</div></div></div>`)

		if p.IncludeTwitter {
			h.raw(`<h4>Twitter</h4><div class="preview-card twitter">`)
			previewImage(h, p.ImageURL)
			h.raw(`<div class="meta"><div class="title">`)
			h.text(p.Title)
			h.raw(`</div><div class="desc">`)
			h.text(p.Description)
			h.raw(`</div><div class="domain">`)
			h.text(domain)
			h.raw(`</div></div></div>`)
		}

		if p.IncludePinterest {
			img := p.PinterestImageURL
			if img == "" {
				img = p.ImageURL
			}
			h.raw(`<h4>Pinterest</h4><div class="preview-card pinterest">`)
			previewImage(h, img)
			h.raw(`<div class="meta"><div class="title">`)
			h.text(p.Title)
			h.raw(`</div></div></div>`)
		}
		h.raw(`</div>`)
	})
}

func previewImage(h *htmlWriter, src string) {
	if src == "" {
		return
	}
	h.raw("<img")
	h.attr("src", src)
	h.raw(` alt="">`)
}
