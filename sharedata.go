package sharecare

import "context"

// ShareData is the resolved share metadata of a page, as served by
// /blog/:slug/share.json and printed by the CLI.
type ShareData struct {
	URL         string      `json:"url,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	SiteName    string      `json:"site_name,omitempty"`
	Image       *ImageData  `json:"image,omitempty"`
	Pinterest   *ImageData  `json:"pinterest_image,omitempty"`
	Links       []ShareLink `json:"links"`
}

// ImageData describes a share image in ShareData.
type ImageData struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ShareData resolves everything a share widget needs for p.
func (e *Extension) ShareData(ctx context.Context, p Page) ShareData {
	d := ShareData{
		Title:    e.OGTitle(p),
		SiteName: e.OGSiteName(),
		Links:    e.ShareLinks(ctx, p),
	}
	if d.Links == nil {
		d.Links = []ShareLink{}
	}
	d.URL, _ = e.absoluteLink(p)
	d.Description, _ = e.OGDescription(p)
	if img, ok := e.OGImage(ctx, p); ok {
		d.Image = imageData(img)
	}
	if e.cfg.Pinterest {
		if img, ok := e.PinterestImage(ctx, p); ok {
			d.Pinterest = imageData(img)
		}
	}
	return d
}

func imageData(img ShareImage) *ImageData {
	return &ImageData{URL: img.URL, Width: img.Width, Height: img.Height}
}
