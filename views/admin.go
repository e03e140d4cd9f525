package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/eringen/sharecare/cms"
)

func csrfInput(h *htmlWriter, token string) {
	h.raw(`<input type="hidden" name="_csrf"`)
	h.attr("value", token)
	h.raw(">")
}

func message(h *htmlWriter, msg string) {
	if msg == "" {
		return
	}
	h.raw(`<div class="message"><p>`)
	h.text(msg)
	h.raw("</p></div>")
}

// AdminLogin is the password form.
func AdminLogin(site SiteConfig, showError bool, csrfToken string) templ.Component {
	return layout(site, "Admin", "", component(func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1>Admin</h1>")
		if showError {
			message(h, "Invalid password.")
		}
		h.raw(`<form method="post" action="/admin/login/">`)
		csrfInput(h, csrfToken)
		h.raw(`<label for="password">Password</label><input type="password" id="password" name="password" autofocus>`)
		h.raw(`<p><button type="submit">Log in</button></p></form>`)
	}))
}

// AdminDashboard lists every post with edit, publish and delete actions.
func AdminDashboard(site SiteConfig, posts []PostSummary, msg, csrfToken string) templ.Component {
	return layout(site, "Admin", "", component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Posts</h1>`)
		message(h, msg)
		h.raw(`<p><a href="/admin/new/">New post</a></p><table><tbody>`)
		for _, p := range posts {
			h.raw("<tr><td><a")
			h.attr("href", "/admin/page/"+PathEscape(p.Slug)+"/")
			h.raw(">")
			h.text(p.Title)
			h.raw("</a></td><td>")
			h.text(p.Date)
			h.raw("</td><td>")
			if p.Published {
				h.raw("published")
			} else {
				h.raw(`<form method="post"`)
				h.attr("action", "/admin/publish/"+PathEscape(p.Slug)+"/")
				h.raw(">")
				csrfInput(h, csrfToken)
				h.raw(`<button type="submit">Publish</button></form>`)
			}
			h.raw(`</td><td><form method="post"`)
			h.attr("action", "/admin/page/"+PathEscape(p.Slug)+"/")
			h.raw(`><input type="hidden" name="_method" value="DELETE">`)
			csrfInput(h, csrfToken)
			h.raw(`<button type="submit">Delete</button></form></td></tr>`)
		}
		h.raw(`</tbody></table><form method="post" action="/admin/logout/">`)
		csrfInput(h, csrfToken)
		h.raw(`<button type="submit">Log out</button></form>`)
	}))
}

// AdminEdit renders the post editor with every tab of form.Fields.
func AdminEdit(site SiteConfig, form EditForm) templ.Component {
	title := "Edit post"
	if form.IsNew {
		title = "New post"
	}
	return layout(site, title, "", component(func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1>")
		h.text(title)
		h.raw(`</h1><p><a href="/admin/">Back</a></p>`)
		message(h, form.Message)
		h.raw(`<form method="post" action="/admin/save/" enctype="multipart/form-data" class="tabs">`)
		csrfInput(h, form.CSRFToken)
		h.raw(`<input type="hidden" name="original_slug"`)
		h.attr("value", form.Slug)
		h.raw(">")
		if form.Fields != nil {
			for _, tab := range form.Fields.Tabs {
				h.raw("<fieldset")
				h.attr("id", tab.Path)
				h.raw("><legend>")
				h.text(tab.Title)
				h.raw("</legend>")
				for _, f := range tab.Fields {
					renderField(h, f)
				}
				h.raw("</fieldset>")
			}
		}
		h.raw(`<p><button type="submit">Save</button> `)
		h.raw(`<button type="submit" name="publish" value="1">Save &amp; publish</button></p></form>`)
	}))
}

func renderField(h *htmlWriter, f cms.Field) {
	if f.Kind == cms.Literal {
		h.raw(f.HTML)
		return
	}
	h.raw("<div")
	h.attr("class", "field field-"+f.Name)
	h.raw("><label")
	h.attr("for", f.Name)
	h.raw(">")
	h.text(f.Title)
	h.raw("</label>")

	switch f.Kind {
	case cms.Text:
		h.raw(`<input type="text"`)
		h.attr("id", f.Name)
		h.attr("name", f.Name)
		h.attr("value", f.Value)
		if f.Placeholder != "" {
			h.attr("placeholder", f.Placeholder)
		}
		if f.MaxLength > 0 {
			h.attr("maxlength", itoa(f.MaxLength))
		}
		h.raw(">")
	case cms.Textarea:
		h.raw("<textarea")
		h.attr("id", f.Name)
		h.attr("name", f.Name)
		if f.Rows > 0 {
			h.attr("rows", itoa(f.Rows))
		}
		if f.Placeholder != "" {
			h.attr("placeholder", f.Placeholder)
		}
		if f.MaxLength > 0 {
			h.attr("maxlength", itoa(f.MaxLength))
		}
		h.raw(">")
		h.text(f.Value)
		h.raw("</textarea>")
	case cms.Upload:
		if f.PreviewURL != "" {
			h.raw(`<img width="200" alt=""`)
			h.attr("src", f.PreviewURL)
			h.raw(`><label class="description"><input type="checkbox" value="1"`)
			h.attr("name", f.Name+"_remove")
			h.raw("> Remove</label>")
		}
		h.raw(`<input type="file"`)
		h.attr("id", f.Name)
		h.attr("name", f.Name)
		h.attr("accept", f.Accept)
		h.raw(">")
	}

	if f.Description != "" {
		h.raw(`<p class="description">`, f.Description, "</p>")
	}
	h.raw("</div>")
}
