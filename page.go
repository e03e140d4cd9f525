package sharecare

import (
	"errors"
	"unicode/utf8"

	"github.com/eringen/sharecare/asset"
)

// Page is the minimum a content page provides to the share extension.
// Everything else is optional and detected with type assertions.
type Page interface {
	DisplayTitle() string
}

// AbsoluteLinker is a page with a public URL. Pages without one cannot be
// shared or scraped.
type AbsoluteLinker interface {
	AbsoluteLink() string
}

// ContentHolder exposes the HTML body used to build summaries.
type ContentHolder interface {
	ContentHTML() string
}

// MetaDescriber exposes the page's meta description.
type MetaDescriber interface {
	MetaDescription() string
}

// Overridable exposes the per-page share overrides.
type Overridable interface {
	ShareOverrides() Overrides
}

// SummaryImager exposes the listing/summary image used in ModeSummary.
type SummaryImager interface {
	MetaImage() *asset.Image
}

// PublicViewer reports whether anonymous visitors can see the page.
type PublicViewer interface {
	CanViewAnonymous() bool
}

// Versioned pages have a draft/live split and are only scraped on publish.
type Versioned interface {
	IsVersioned() bool
}

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 150
)

var (
	ErrTitleTooLong       = errors.New("sharecare: share title exceeds 100 characters")
	ErrDescriptionTooLong = errors.New("sharecare: share description exceeds 150 characters")
)

// Overrides are editor-supplied values that replace the generated share data.
type Overrides struct {
	OGTitleCustom        string
	OGDescriptionCustom  string
	OGImageCustom        *asset.Image
	PinterestImageCustom *asset.Image
}

// Validate checks the stored length limits.
func (o Overrides) Validate() error {
	if utf8.RuneCountInString(o.OGTitleCustom) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(o.OGDescriptionCustom) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
