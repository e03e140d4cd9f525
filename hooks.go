package sharecare

import "context"

// ClearFacebookCache asks Facebook to re-scrape the page so shared links show
// the current title, description and image. It does nothing when clearing is
// disabled or the page has no public URL. Failures are logged, not returned.
func (e *Extension) ClearFacebookCache(ctx context.Context, p Page) {
	if !e.cfg.EnableFacebookCacheClear || e.scraper == nil {
		return
	}
	link, ok := e.absoluteLink(p)
	if !ok {
		return
	}
	if v, ok := p.(PublicViewer); !ok || !v.CanViewAnonymous() {
		return
	}
	if _, err := e.scraper.Scrape(ctx, link); err != nil {
		e.logger.Warnf("sharecare: clear facebook cache: %v", err)
	}
}

// OnAfterPublish runs after a page goes live.
func (e *Extension) OnAfterPublish(ctx context.Context, p Page) {
	e.ClearFacebookCache(ctx, p)
}

// OnAfterWrite runs after a page is saved. Versioned pages wait for publish.
func (e *Extension) OnAfterWrite(ctx context.Context, p Page) {
	if v, ok := p.(Versioned); ok && v.IsVersioned() {
		return
	}
	e.ClearFacebookCache(ctx, p)
}
