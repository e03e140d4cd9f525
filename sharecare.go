// Package sharecare generates social sharing metadata for content pages:
// Open Graph and Twitter Card tags, share links for Facebook, Twitter,
// Pinterest, LinkedIn and email, and Facebook cache clearing when a page
// changes.
//
// The Extension type is the library surface a host wires into its page
// lifecycle. App is a small Echo host built on it, with a SQLite post store
// and an admin editor.
package sharecare

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/sharecare/asset"
	"github.com/eringen/sharecare/facebook"
	"github.com/eringen/sharecare/ratelimit"
	"github.com/eringen/sharecare/views"
)

// ViewFuncs holds the templ components the host renders. Replace any of them
// with WithViews to restyle the site.
type ViewFuncs struct {
	Home           func(site views.SiteConfig, posts []views.PostSummary) templ.Component
	Post           func(site views.SiteConfig, post views.PostView) templ.Component
	AdminLogin     func(site views.SiteConfig, showError bool, csrfToken string) templ.Component
	AdminDashboard func(site views.SiteConfig, posts []views.PostSummary, message, csrfToken string) templ.Component
	AdminEdit      func(site views.SiteConfig, form views.EditForm) templ.Component
	NotFound       func(site views.SiteConfig) templ.Component
	ServerError    func(site views.SiteConfig) templ.Component
}

// DefaultViews returns the built-in templates.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:           views.Home,
		Post:           views.Post,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		AdminEdit:      views.AdminEdit,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

// App is the host application. It wires together the store, cache, asset
// storage, the share extension, handlers and middleware.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Cache  *PageCache
	Assets *asset.Store
	Share  *Extension
	Views  ViewFuncs

	backend      asset.Backend
	scraper      *facebook.Scraper
	loginLimiter *ratelimit.Limiter
	customRoutes []func(*App)
	opened       bool
}

// New creates an App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetPrefix("sharecare")

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Open initializes the store, asset storage, cache and share extension.
// It is all the CLI needs; Init adds the HTTP layer on top.
func (a *App) Open(ctx context.Context) error {
	if a.opened {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("sharecare: init store: %w", err)
	}
	a.Store = store

	backend, err := asset.Open(ctx, a.Config.StorageURL, a.Config.AssetBaseURL)
	if err != nil {
		a.Store.Close()
		return fmt.Errorf("sharecare: init assets: %w", err)
	}
	a.backend = backend
	a.Assets = asset.NewStore(backend)

	a.Cache = NewPageCache(a.Store, a.Config.PageCacheTTL)
	a.Share = NewExtension(a.Config, a.Assets, UseLogger(a.Echo.Logger), UseScraper(a.scraper))
	a.opened = true
	return nil
}

// Init opens the app and registers middleware and routes without starting
// the server.
func (a *App) Init(ctx context.Context) error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("sharecare: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("sharecare: SessionSecret is required")
	}
	if err := a.Open(ctx); err != nil {
		return err
	}

	a.loginLimiter = ratelimit.New(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves HTTP until the server stops.
func (a *App) Start() error {
	if err := a.Init(context.Background()); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.PublicDir)
	if fs, ok := a.backend.(*asset.FS); ok {
		base := a.Config.AssetBaseURL
		if strings.HasPrefix(base, "/") && !strings.HasPrefix(base, "/public/") {
			e.Static(strings.TrimRight(base, "/"), fs.Dir())
		}
	}
	e.GET("/"+defaultImageFile, a.handleAppleTouchIcon)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/blog/:slug/share.json", a.handleShareJSON)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/new/", a.handleAdminNew)
	e.GET("/admin/page/:slug/", a.handleAdminEdit)
	e.DELETE("/admin/page/:slug/", a.handleAdminDelete)
	e.POST("/admin/save/", a.handleAdminSave)
	e.POST("/admin/publish/:slug/", a.handleAdminPublish)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Share != nil {
		a.Share.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// site returns the template view of the site settings.
func (a *App) site() views.SiteConfig {
	return views.SiteConfig{Name: a.Config.SiteName, URL: a.Config.SiteURL}
}

// Page returns the post with the given slug, published or not, ready to be
// passed to the share extension.
func (a *App) Page(slug string) (Post, error) {
	p, err := a.Store.GetPageAny(slug)
	if err != nil {
		return Post{}, err
	}
	return a.withSite(p), nil
}

// withSite makes p able to build its absolute link.
func (a *App) withSite(p Post) Post {
	p.SiteURL = a.Config.SiteURL
	return p
}
