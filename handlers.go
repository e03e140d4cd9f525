package sharecare

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/sharecare/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPages()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(a.site(), summaries(posts)))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Cache.GetPage(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		}
		return err
	}
	post = a.withSite(post)
	ctx := c.Request().Context()

	view := views.PostView{
		PostSummary: summaryOf(post),
		Content:     post.Content,
		MetaTags:    a.Share.MetaTags(ctx, post),
	}
	for _, l := range a.Share.ShareLinks(ctx, post) {
		view.ShareLinks = append(view.ShareLinks, views.ShareLink{Platform: l.Platform, Label: l.Label, URL: l.URL})
	}
	return Render(c, a.Views.Post(a.site(), view))
}

func (a *App) handleShareJSON(c echo.Context) error {
	post, err := a.Cache.GetPage(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, a.Share.ShareData(c.Request().Context(), a.withSite(post)))
}

func (a *App) handleAppleTouchIcon(c echo.Context) error {
	return c.File(filepath.Join(a.Config.PublicDir, defaultImageFile))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound && !wantsJSON(c) {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func wantsJSON(c echo.Context) bool {
	return filepath.Ext(c.Request().URL.Path) == ".json"
}

func summaryOf(p Post) views.PostSummary {
	return views.PostSummary{
		Slug:      p.Slug,
		Title:     p.Title,
		Date:      p.Date,
		Summary:   p.Summary,
		Link:      p.Link(),
		Published: p.Published,
	}
}

func summaries(posts []Post) []views.PostSummary {
	out := make([]views.PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, summaryOf(p))
	}
	return out
}
