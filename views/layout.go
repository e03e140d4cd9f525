package views

import (
	"context"

	"github.com/a-h/templ"
)

const styles = `
body{font-family:system-ui,sans-serif;max-width:46rem;margin:2rem auto;padding:0 1rem;color:#1c1917;line-height:1.6}
a{color:#1d4ed8}
header{display:flex;justify-content:space-between;align-items:baseline;border-bottom:1px solid #e7e5e4;margin-bottom:1.5rem}
.share{display:flex;gap:.75rem;flex-wrap:wrap;margin:2rem 0;padding-top:1rem;border-top:1px solid #e7e5e4}
.message{background:#eff6ff;border:1px solid #bfdbfe;padding:.5rem 1rem;border-radius:4px}
.tabs fieldset{border:1px solid #e7e5e4;margin:1rem 0;padding:1rem}
label{display:block;font-weight:600;margin-top:.75rem}
input[type=text],textarea{width:100%;box-sizing:border-box;padding:.4rem}
.description{font-size:.85rem;color:#57534e}
.preview-card{border:1px solid #d6d3d1;max-width:500px;margin:1rem 0;font-family:Helvetica,Arial,sans-serif}
.preview-card img{width:100%;display:block}
.preview-card .meta{padding:.5rem .75rem;background:#f2f3f5}
.preview-card .domain{font-size:12px;color:#606770}
.preview-card .title{font-weight:600}
.preview-card .desc{font-size:14px;color:#606770}
.preview-card.twitter{border-radius:14px;overflow:hidden}
.preview-card.pinterest{max-width:236px;border-radius:16px;overflow:hidden}
`

// layout wraps body in the HTML document shell. head is trusted markup.
func layout(site SiteConfig, title, head string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw("<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		if title != "" && title != site.Name {
			h.text(title)
			h.raw(" | ")
		}
		h.text(site.Name)
		h.raw("</title>")
		h.raw(head)
		h.raw("\n<style>", styles, "</style></head><body>")
		h.raw(`<header><a href="/"><strong>`)
		h.text(site.Name)
		h.raw("</strong></a></header><main>")
		h.component(ctx, body)
		h.raw("</main></body></html>")
	})
}
