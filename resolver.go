package sharecare

import (
	"context"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/log"

	"github.com/eringen/sharecare/asset"
	"github.com/eringen/sharecare/facebook"
	"github.com/eringen/sharecare/summary"
)

// MaxImageWidth caps share images. Wider images are scaled down; narrower
// ones are used as they are.
const MaxImageWidth = 1200

const defaultImageFile = "apple-touch-icon.png"

// Logger receives non-fatal problems. echo.Logger and gommon's *log.Logger
// both satisfy it.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// Extension attaches share metadata, share links and Facebook cache clearing
// to content pages.
type Extension struct {
	cfg     Config
	assets  *asset.Store
	scraper *facebook.Scraper
	logger  Logger
}

// ExtensionOption configures an Extension.
type ExtensionOption func(*Extension)

// UseLogger sends warnings to l.
func UseLogger(l Logger) ExtensionOption {
	return func(e *Extension) {
		if l != nil {
			e.logger = l
		}
	}
}

// UseScraper replaces the scraper built from Config.
func UseScraper(s *facebook.Scraper) ExtensionOption {
	return func(e *Extension) {
		if s != nil {
			e.scraper = s
		}
	}
}

// NewExtension builds an Extension. assets may be nil, in which case only
// the default image is ever used.
func NewExtension(cfg Config, assets *asset.Store, opts ...ExtensionOption) *Extension {
	cfg.setDefaults()
	e := &Extension{
		cfg:    cfg,
		assets: assets,
		logger: log.New("sharecare"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.scraper == nil && cfg.EnableFacebookCacheClear {
		e.scraper = facebook.New(
			facebook.WithEndpoint(cfg.FacebookEndpoint),
			facebook.WithAccessToken(cfg.FacebookAccessToken),
			facebook.WithTimeout(cfg.ScrapeTimeout),
			facebook.WithMinInterval(cfg.ScrapeInterval),
		)
	}
	return e
}

// Config returns the settings the extension runs with.
func (e *Extension) Config() Config {
	return e.cfg
}

// Close releases the scraper's background resources.
func (e *Extension) Close() {
	if e.scraper != nil {
		e.scraper.Close()
	}
}

// DefaultOGTitle is the page title.
func (e *Extension) DefaultOGTitle(p Page) string {
	return p.DisplayTitle()
}

// OGTitle returns the share title override when set, else the page title.
// The override is returned trimmed; a whitespace-only override counts as unset.
func (e *Extension) OGTitle(p Page) string {
	if e.cfg.Mode == ModeFields {
		if o, ok := p.(Overridable); ok {
			if t := strings.TrimSpace(o.ShareOverrides().OGTitleCustom); t != "" {
				return t
			}
		}
	}
	return e.DefaultOGTitle(p)
}

// DefaultOGDescription is the value used when the editor supplied nothing:
// the meta description (ModeFields only) or a summary of the content.
func (e *Extension) DefaultOGDescription(p Page) (string, bool) {
	if e.cfg.Mode == ModeFields {
		if d, ok := metaDescription(p); ok {
			return d, true
		}
	}
	if c, ok := p.(ContentHolder); ok {
		if s := summary.FromHTML(c.ContentHTML(), summary.DefaultMaxWords, summary.DefaultFlex); s != "" {
			return s, true
		}
	}
	return "", false
}

// OGDescription returns the editor's description, the share override in
// ModeFields or the meta description in ModeSummary, else
// DefaultOGDescription.
func (e *Extension) OGDescription(p Page) (string, bool) {
	switch e.cfg.Mode {
	case ModeFields:
		if o, ok := p.(Overridable); ok {
			if d := strings.TrimSpace(o.ShareOverrides().OGDescriptionCustom); d != "" {
				return d, true
			}
		}
	case ModeSummary:
		if d, ok := metaDescription(p); ok {
			return d, true
		}
	}
	return e.DefaultOGDescription(p)
}

func metaDescription(p Page) (string, bool) {
	m, ok := p.(MetaDescriber)
	if !ok {
		return "", false
	}
	d := strings.TrimSpace(m.MetaDescription())
	return d, d != ""
}

// OGImage returns the page's share image capped to MaxImageWidth, or the
// site default when the page has none.
func (e *Extension) OGImage(ctx context.Context, p Page) (ShareImage, bool) {
	var candidate *asset.Image
	switch e.cfg.Mode {
	case ModeFields:
		if o, ok := p.(Overridable); ok {
			candidate = o.ShareOverrides().OGImageCustom
		}
	case ModeSummary:
		if s, ok := p.(SummaryImager); ok {
			candidate = s.MetaImage()
		}
	}
	if img, ok := e.shareImage(ctx, candidate); ok {
		return img, true
	}
	return e.DefaultOGImage()
}

// PinterestImage returns the Pinterest override capped to MaxImageWidth,
// else OGImage.
func (e *Extension) PinterestImage(ctx context.Context, p Page) (ShareImage, bool) {
	if e.cfg.Mode == ModeFields {
		if o, ok := p.(Overridable); ok {
			if img, ok := e.shareImage(ctx, o.ShareOverrides().PinterestImageCustom); ok {
				return img, true
			}
		}
	}
	return e.OGImage(ctx, p)
}

// DefaultOGImage is the site's apple-touch-icon.png when it exists.
func (e *Extension) DefaultOGImage() (ShareImage, bool) {
	path := filepath.Join(e.cfg.PublicDir, defaultImageFile)
	f, err := os.Open(path)
	if err != nil {
		return ShareImage{}, false
	}
	defer f.Close()
	img := ShareImage{URL: AbsoluteURL(e.cfg.SiteURL, defaultImageFile)}
	if cfg, _, err := image.DecodeConfig(f); err == nil {
		img.Width, img.Height = cfg.Width, cfg.Height
	}
	return img, true
}

// OGSiteName is the configured site name.
func (e *Extension) OGSiteName() string {
	return e.cfg.SiteName
}

func (e *Extension) shareImage(ctx context.Context, img *asset.Image) (ShareImage, bool) {
	if e.assets == nil || !e.assets.Exists(ctx, img) {
		return ShareImage{}, false
	}
	scaled, err := e.assets.ScaleWidth(ctx, *img, MaxImageWidth)
	if err != nil {
		e.logger.Warnf("sharecare: scale image %s: %v", img.Key, err)
		scaled = *img
	}
	return ShareImage{
		URL:    AbsoluteURL(e.cfg.SiteURL, e.assets.URL(scaled)),
		Width:  scaled.Width,
		Height: scaled.Height,
		Asset:  &scaled,
	}, true
}
