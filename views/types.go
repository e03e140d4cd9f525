package views

import "github.com/eringen/sharecare/cms"

// SiteConfig holds site-wide settings every page template needs.
type SiteConfig struct {
	Name string
	URL  string
}

// PostSummary is a post as listed on the home page and the dashboard.
type PostSummary struct {
	Slug      string
	Title     string
	Date      string
	Summary   string
	Link      string
	Published bool
}

// ShareLink is one share button.
type ShareLink struct {
	Platform string
	Label    string
	URL      string
}

// PostView is a full post page. MetaTags is trusted markup for <head>.
type PostView struct {
	PostSummary
	Content    string // trusted HTML
	MetaTags   string
	ShareLinks []ShareLink
}

// Preview is the data behind the share preview cards in the editor.
type Preview struct {
	Title             string
	Description       string
	ImageURL          string
	PinterestImageURL string
	Link              string
	IncludeTwitter    bool
	IncludePinterest  bool
}

// EditForm is the post editor.
type EditForm struct {
	Slug      string
	IsNew     bool
	Published bool
	Fields    *cms.FieldList
	Message   string
	CSRFToken string
}
