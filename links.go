package sharecare

import (
	"context"
	"strings"
)

// Platform identifiers used in ShareLink.Platform.
const (
	PlatformFacebook  = "facebook"
	PlatformTwitter   = "twitter"
	PlatformPinterest = "pinterest"
	PlatformLinkedIn  = "linkedin"
	PlatformEmail     = "email"
)

func (e *Extension) absoluteLink(p Page) (string, bool) {
	l, ok := p.(AbsoluteLinker)
	if !ok {
		return "", false
	}
	link := l.AbsoluteLink()
	return link, link != ""
}

// FacebookShareLink opens the Facebook share dialog for the page.
func (e *Extension) FacebookShareLink(p Page) (string, bool) {
	link, ok := e.absoluteLink(p)
	if !ok {
		return "", false
	}
	return "https://www.facebook.com/sharer/sharer.php?u=" + rawURLEncode(link), true
}

// TwitterShareLink opens a tweet composer prefilled with the share title.
func (e *Extension) TwitterShareLink(p Page) (string, bool) {
	link, ok := e.absoluteLink(p)
	if !ok {
		return "", false
	}
	return "https://twitter.com/intent/tweet?text=" + rawURLEncode(e.OGTitle(p)) +
		"&url=" + rawURLEncode(link), true
}

// PinterestShareLink pins the Pinterest (or share) image with the share title
// as description. It needs both a page link and an image.
func (e *Extension) PinterestShareLink(ctx context.Context, p Page) (string, bool) {
	link, ok := e.absoluteLink(p)
	if !ok {
		return "", false
	}
	img, ok := e.PinterestImage(ctx, p)
	if !ok {
		return "", false
	}
	return "https://www.pinterest.com/pin/create/button/?url=" + rawURLEncode(link) +
		"&media=" + rawURLEncode(img.URL) +
		"&description=" + rawURLEncode(e.OGTitle(p)), true
}

// LinkedInShareLink shares the page on LinkedIn with title, summary and
// site name.
func (e *Extension) LinkedInShareLink(p Page) (string, bool) {
	link, ok := e.absoluteLink(p)
	if !ok {
		return "", false
	}
	description, _ := e.OGDescription(p)
	return "https://www.linkedin.com/shareArticle?mini=true&url=" + rawURLEncode(link) +
		"&title=" + rawURLEncode(e.OGTitle(p)) +
		"&summary=" + rawURLEncode(description) +
		"&source=" + rawURLEncode(e.OGSiteName()), true
}

// EmailShareLink is a mailto link whose body contains the page URL.
func (e *Extension) EmailShareLink(p Page) (string, bool) {
	link, ok := e.absoluteLink(p)
	if !ok {
		return "", false
	}
	body := strings.ReplaceAll(e.cfg.Messages.EmailBody, "{URL}", link)
	return "mailto:?subject=" + rawURLEncode(e.cfg.Messages.EmailSubject) +
		"&body=" + rawURLEncode(body), true
}

// ShareLinks returns every link the page can produce, in display order.
func (e *Extension) ShareLinks(ctx context.Context, p Page) []ShareLink {
	var links []ShareLink
	add := func(platform, label, url string, ok bool) {
		if ok {
			links = append(links, ShareLink{Platform: platform, Label: label, URL: url})
		}
	}
	u, ok := e.FacebookShareLink(p)
	add(PlatformFacebook, "Facebook", u, ok)
	u, ok = e.TwitterShareLink(p)
	add(PlatformTwitter, "Twitter", u, ok)
	if e.cfg.Pinterest {
		u, ok = e.PinterestShareLink(ctx, p)
		add(PlatformPinterest, "Pinterest", u, ok)
	}
	u, ok = e.LinkedInShareLink(p)
	add(PlatformLinkedIn, "LinkedIn", u, ok)
	u, ok = e.EmailShareLink(p)
	add(PlatformEmail, "Email", u, ok)
	return links
}
