package sharecare

import (
	"context"
	"encoding/xml"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description,omitempty"`
	PubDate     string        `xml:"pubDate,omitempty"`
	GUID        string        `xml:"guid"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length string `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

type sitemapURLSet struct {
	XMLName    xml.Name     `xml:"urlset"`
	XMLNS      string       `xml:"xmlns,attr"`
	XMLNSImage string       `xml:"xmlns:image,attr"`
	URLs       []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string        `xml:"loc"`
	LastMod string        `xml:"lastmod,omitempty"`
	Image   *sitemapImage `xml:"image:image,omitempty"`
}

type sitemapImage struct {
	Loc string `xml:"image:loc"`
}

// Feed builds the RSS feed of posts. Items carry the share title and
// description and the share image as enclosure.
func (a *App) Feed(ctx context.Context, posts []Post) ([]byte, error) {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		p = a.withSite(p)
		item := rssItem{
			Title: a.Share.OGTitle(p),
			Link:  p.AbsoluteLink(),
			GUID:  p.AbsoluteLink(),
		}
		item.Description, _ = a.Share.OGDescription(p)
		if t, err := time.Parse("2006-01-02", p.Date); err == nil {
			item.PubDate = t.Format(time.RFC1123Z)
		}
		if img, ok := a.Share.OGImage(ctx, p); ok && img.Asset != nil && img.Asset.Size > 0 {
			item.Enclosure = &rssEnclosure{URL: img.URL, Length: strconv.Itoa(img.Asset.Size), Type: "image/jpeg"}
		}
		items = append(items, item)
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.SiteName,
			Link:        BuildURL(a.Config.SiteURL),
			Description: a.Config.SiteName,
			Items:       items,
		},
	}
	return marshalXML(feed)
}

// Sitemap builds the sitemap of posts, listing each post's share image.
func (a *App) Sitemap(ctx context.Context, posts []Post) ([]byte, error) {
	urls := []sitemapURL{{Loc: BuildURL(a.Config.SiteURL)}}
	for _, p := range posts {
		p = a.withSite(p)
		u := sitemapURL{Loc: p.AbsoluteLink(), LastMod: p.Date}
		if img, ok := a.Share.OGImage(ctx, p); ok && img.Asset != nil {
			u.Image = &sitemapImage{Loc: img.URL}
		}
		urls = append(urls, u)
	}
	return marshalXML(sitemapURLSet{
		XMLNS:      "http://www.sitemaps.org/schemas/sitemap/0.9",
		XMLNSImage: "http://www.google.com/schemas/sitemap-image/1.1",
		URLs:       urls,
	})
}

func marshalXML(v any) ([]byte, error) {
	out, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPages()
	if err != nil {
		return err
	}
	body, err := a.Feed(c.Request().Context(), posts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPages()
	if err != nil {
		return err
	}
	body, err := a.Sitemap(c.Request().Context(), posts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", body)
}
