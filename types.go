package sharecare

import "github.com/eringen/sharecare/asset"

// Post is the content page stored in SQLite and rendered by the host.
type Post struct {
	Slug      string
	Title     string
	Date      string
	Summary   string // meta description
	Content   string // HTML
	Published bool

	Share        Overrides
	SummaryImage *asset.Image

	// SiteURL is filled in when the post is loaded so AbsoluteLink works.
	SiteURL string
}

func (p Post) DisplayTitle() string { return p.Title }
func (p Post) ContentHTML() string { return p.Content }
func (p Post) MetaDescription() string { return p.Summary }
func (p Post) ShareOverrides() Overrides { return p.Share }
func (p Post) MetaImage() *asset.Image { return p.SummaryImage }
func (p Post) CanViewAnonymous() bool { return p.Published }

// IsVersioned is false: a post is one row, so saving a published post
// changes the live page straight away.
func (p Post) IsVersioned() bool { return false }

// Link is the site-relative URL of the post.
func (p Post) Link() string {
	return "/blog/" + p.Slug + "/"
}

// AbsoluteLink returns the public URL, or "" when the site URL is unknown.
func (p Post) AbsoluteLink() string {
	if p.SiteURL == "" || p.Slug == "" {
		return ""
	}
	return BuildURL(p.SiteURL, "blog", p.Slug)
}

// ShareImage is a resolved share image. Asset is nil for the site default.
type ShareImage struct {
	URL    string
	Width  int
	Height int
	Asset  *asset.Image
}

// ShareLink is one outbound share URL.
type ShareLink struct {
	Platform string `json:"platform"`
	Label    string `json:"label"`
	URL      string `json:"url"`
}
