package sharecare

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/sharecare/asset"
	"github.com/eringen/sharecare/cms"
	"github.com/eringen/sharecare/views"
)

const maxUploadSize = 10 << 20 // 10MB

// uploadError is a problem with an uploaded file the editor can fix.
type uploadError struct {
	field string
	err   error
}

func (e *uploadError) Error() string {
	return e.field + ": " + e.err.Error()
}

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(a.site(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := writeAdminSession(c, true); err != nil {
			return err
		}
		a.loginLimiter.Reset(c.RealIP())
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(a.site(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := writeAdminSession(c, false); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminNew(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post := Post{Date: time.Now().Format("2006-01-02")}
	return Render(c, a.Views.AdminEdit(a.site(), a.editForm(c, post, true, "")))
}

func (a *App) handleAdminEdit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, err := a.Store.GetPageAny(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		}
		return err
	}
	return Render(c, a.Views.AdminEdit(a.site(), a.editForm(c, post, false, c.QueryParam("msg"))))
}

// editForm builds the editor fields for post and lets the share extension
// add its own.
func (a *App) editForm(c echo.Context, post Post, isNew bool, msg string) views.EditForm {
	post = a.withSite(post)
	fields := BaseFields(post)
	a.Share.UpdateCMSFields(c.Request().Context(), post, fields)
	return views.EditForm{
		Slug:      post.Slug,
		IsNew:     isNew,
		Published: post.Published,
		Fields:    fields,
		Message:   msg,
		CSRFToken: CsrfToken(c),
	}
}

// BaseFields is the editing form of a post before extensions add to it.
func BaseFields(p Post) *cms.FieldList {
	fields := &cms.FieldList{}
	fields.AddFieldToTab("Root.Main", cms.NewText("Title", "Title", p.Title))
	slug := cms.NewText("Slug", "URL slug", p.Slug)
	slug.Placeholder = "generated from the title"
	fields.AddFieldToTab("Root.Main", slug)
	date := cms.NewText("Date", "Date", p.Date)
	date.Placeholder = "YYYY-MM-DD"
	fields.AddFieldToTab("Root.Main", date)
	fields.AddFieldToTab("Root.Main", cms.NewTextarea(FieldContent, "Content (HTML)", p.Content, 14))
	fields.AddFieldToTab("Root."+TabMetadata, cms.NewTextarea(FieldMetaDescription, "Meta description", p.Summary, 3))
	return fields
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	ctx := c.Request().Context()

	title := strings.TrimSpace(c.FormValue("Title"))
	slug := strings.TrimSpace(c.FormValue("Slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}
	date := strings.TrimSpace(c.FormValue("Date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}

	originalSlug := strings.TrimSpace(c.FormValue("original_slug"))
	var existing Post
	if originalSlug != "" {
		var err error
		existing, err = a.Store.GetPageAny(originalSlug)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	post := existing
	post.Slug = slug
	post.Title = title
	post.Date = date
	post.Content = c.FormValue(FieldContent)
	post.Summary = c.FormValue(FieldMetaDescription)
	if a.Config.Mode == ModeFields {
		post.Share.OGTitleCustom = strings.TrimSpace(c.FormValue(FieldOGTitleCustom))
		post.Share.OGDescriptionCustom = strings.TrimSpace(c.FormValue(FieldOGDescriptionCustom))
	}

	var err error
	switch a.Config.Mode {
	case ModeFields:
		if post.Share.OGImageCustom, err = a.formImage(c, FieldOGImageCustom, post.Share.OGImageCustom); err != nil {
			return a.saveError(c, err)
		}
		if a.Config.Pinterest {
			if post.Share.PinterestImageCustom, err = a.formImage(c, FieldPinterestImageCustom, post.Share.PinterestImageCustom); err != nil {
				return a.saveError(c, err)
			}
		}
	case ModeSummary:
		if post.SummaryImage, err = a.formImage(c, FieldMetaImage, post.SummaryImage); err != nil {
			return a.saveError(c, err)
		}
	}

	publish := c.FormValue("publish") != ""
	if publish {
		post.Published = true
	}

	if err := post.Share.Validate(); err != nil {
		return RenderStatus(c, http.StatusBadRequest, a.Views.AdminEdit(a.site(), a.editForm(c, post, originalSlug == "", err.Error())))
	}
	if err := a.Store.SavePage(post); err != nil {
		return err
	}
	if originalSlug != "" && originalSlug != slug {
		if err := a.Store.DeletePage(originalSlug); err != nil {
			return err
		}
	}
	a.Cache.Invalidate()

	// Posts are unversioned: the write is what goes live, published or not.
	a.Share.OnAfterWrite(ctx, a.withSite(post))
	msg := "Saved"
	if publish {
		msg = "Saved and published"
	}
	return c.Redirect(http.StatusSeeOther, "/admin/page/"+url.PathEscape(slug)+"/?msg="+url.QueryEscape(msg))
}

func (a *App) handleAdminPublish(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if err := a.Store.SetPublished(slug, true); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	a.Cache.Invalidate()
	post, err := a.Store.GetPageAny(slug)
	if err != nil {
		return err
	}
	a.Share.OnAfterPublish(c.Request().Context(), a.withSite(post))
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=published")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeletePage(c.Param("slug")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPages()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(a.site(), summaries(posts), msg, CsrfToken(c)))
}

// formImage returns the image for an upload field: a newly uploaded file,
// nil when the editor ticked remove, or current.
func (a *App) formImage(c echo.Context, name string, current *asset.Image) (*asset.Image, error) {
	file, err := c.FormFile(name)
	if err != nil {
		if c.FormValue(name+"_remove") != "" {
			return nil, nil
		}
		return current, nil
	}
	if file.Size > maxUploadSize {
		return current, &uploadError{field: name, err: errors.New("file too large (max 10MB)")}
	}
	src, err := file.Open()
	if err != nil {
		return current, err
	}
	defer src.Close()

	img, err := a.Assets.Save(c.Request().Context(), src, file.Filename)
	if err != nil {
		return current, &uploadError{field: name, err: fmt.Errorf("invalid image: %w", err)}
	}
	if err := a.Store.SaveImage(img); err != nil {
		_ = a.Assets.Delete(c.Request().Context(), img)
		return current, err
	}
	return &img, nil
}

func (a *App) saveError(c echo.Context, err error) error {
	var ue *uploadError
	if errors.As(err, &ue) {
		return c.String(http.StatusBadRequest, ue.Error())
	}
	return err
}
