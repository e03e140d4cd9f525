package sharecare

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	sessionName = "admin_session"
	csrfCookie  = "_csrf"
)

// cacheRule sets Cache-Control for paths it matches. First match wins.
type cacheRule struct {
	match  func(path string) bool
	header string
}

var cacheRules = []cacheRule{
	{func(p string) bool { return strings.HasPrefix(p, "/public/") }, "public, max-age=31536000, immutable"},
	{func(p string) bool { return strings.HasPrefix(p, "/admin") }, "no-store"},
	{func(p string) bool { return p == "/sitemap.xml" || p == "/feed.xml" }, "public, max-age=86400"},
	{func(p string) bool { return strings.HasSuffix(p, "/share.json") }, "public, max-age=300"},
}

const defaultCacheControl = "public, max-age=3600"

func cacheControlFor(path string) string {
	for _, r := range cacheRules {
		if r.match(path) {
			return r.header
		}
	}
	return defaultCacheControl
}

func (a *App) setupMiddleware() {
	e := a.Echo
	e.IPExtractor = echo.ExtractIPFromXFFHeader(echo.TrustLinkLocal(false))
	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())
	// The dashboard deletes posts through a POST form carrying _method.
	e.Pre(middleware.MethodOverrideWithConfig(middleware.MethodOverrideConfig{
		Getter: middleware.MethodFromForm("_method"),
	}))

	e.Use(
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogStatus:  true,
			LogURI:     true,
			LogMethod:  true,
			LogLatency: true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
				return nil
			},
		}),
		middleware.Recover(),
		middleware.GzipWithConfig(middleware.GzipConfig{
			Level:   5,
			Skipper: func(c echo.Context) bool { return a.isAssetPath(c.Request().URL.Path) },
		}),
		middleware.SecureWithConfig(middleware.SecureConfig{
			XSSProtection:         "1; mode=block",
			ContentTypeNosniff:    "nosniff",
			XFrameOptions:         "DENY",
			ReferrerPolicy:        "strict-origin-when-cross-origin",
			ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; form-action 'self'",
			HSTSMaxAge:            31536000,
		}),
		session.Middleware(a.newSessionStore()),
		middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup:    "header:X-CSRF-Token,form:" + csrfCookie,
			CookieName:     csrfCookie,
			CookiePath:     "/",
			CookieSameSite: http.SameSiteLaxMode,
			CookieSecure:   a.Config.CookieSecure,
			ErrorHandler: func(err error, c echo.Context) error {
				return c.String(http.StatusForbidden, "Forbidden")
			},
		}),
		middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
			RedirectCode: http.StatusMovedPermanently,
			Skipper:      func(c echo.Context) bool { return a.isFilePath(c.Request().URL.Path) },
		}),
		func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Response().Header().Set("Cache-Control", cacheControlFor(c.Request().URL.Path))
				return next(c)
			}
		},
	)
}

// isAssetPath reports whether path is served from the public directory or
// the asset backend.
func (a *App) isAssetPath(path string) bool {
	return strings.HasPrefix(path, "/public/") ||
		(a.Config.AssetBaseURL != "" && strings.HasPrefix(path, a.Config.AssetBaseURL))
}

// isFilePath reports whether path names a file rather than a page, so it
// must not gain a trailing slash.
func (a *App) isFilePath(path string) bool {
	if a.isAssetPath(path) {
		return true
	}
	switch {
	case strings.HasSuffix(path, ".json"), strings.HasSuffix(path, ".xml"), strings.HasSuffix(path, ".png"):
		return true
	}
	return false
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   12 * 3600,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// IsAdmin reports whether the request carries a logged-in admin session.
func IsAdmin(c echo.Context) bool {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return false
	}
	auth, _ := sess.Values["authenticated"].(bool)
	return auth
}

// writeAdminSession logs the admin in, or out by expiring the cookie.
func writeAdminSession(c echo.Context, loggedIn bool) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	if loggedIn {
		sess.Values["authenticated"] = true
	} else {
		sess.Options.MaxAge = -1
	}
	return sess.Save(c.Request(), c.Response())
}

// CsrfToken is the token forms must echo back in _csrf.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
