package sharecare

import (
	"bytes"
	"context"

	"github.com/a-h/templ"

	"github.com/eringen/sharecare/asset"
	"github.com/eringen/sharecare/cms"
	"github.com/eringen/sharecare/views"
)

// Field names added to the editing form.
const (
	FieldMessage              = "ShareCareMessage"
	FieldPreview              = "ShareCarePreview"
	FieldFieldsMessage        = "ShareCareFieldsMessage"
	FieldOGTitleCustom        = "OGTitleCustom"
	FieldOGDescriptionCustom  = "OGDescriptionCustom"
	FieldOGImageCustom        = "OGImageCustom"
	FieldPinterestImageCustom = "PinterestImageCustom"
	FieldMetaDescription      = "MetaDescription"
	FieldMetaImage            = "MetaImage"
	FieldContent              = "Content"
	TabMetadata               = "Metadata"
)

const (
	shareTitleMaxLength = 90
	mainTab             = "Root.Main"
)

// PublishedChecker lets the summary image field warn about live pages with
// no image.
type PublishedChecker interface {
	IsPublished() bool
}

// UpdateCMSFields adds the Share tab with a live preview to fields and, per
// mode, the override fields or the summary fields.
func (e *Extension) UpdateCMSFields(ctx context.Context, p Page, fields *cms.FieldList) {
	tab := "Root." + e.cfg.Messages.TabName
	msgs := e.cfg.Messages

	if msgs.CMSMessage != "" {
		fields.AddFieldToTab(tab, cms.NewLiteral(FieldMessage, notice(msgs.CMSMessage)))
	}
	fields.AddFieldToTab(tab, cms.NewLiteral(FieldPreview, e.renderPreview(ctx, p)))

	switch e.cfg.Mode {
	case ModeFields:
		e.addOverrideFields(ctx, p, tab, fields)
	case ModeSummary:
		e.addSummaryFields(ctx, p, fields)
	}
}

func (e *Extension) addOverrideFields(ctx context.Context, p Page, tab string, fields *cms.FieldList) {
	msgs := e.cfg.Messages
	var o Overrides
	if ov, ok := p.(Overridable); ok {
		o = ov.ShareOverrides()
	}

	if msgs.FieldsMessage != "" {
		fields.AddFieldToTab(tab, cms.NewLiteral(FieldFieldsMessage, notice(msgs.FieldsMessage)))
	}

	title := cms.NewText(FieldOGTitleCustom, msgs.ShareTitle, o.OGTitleCustom)
	title.Placeholder = e.DefaultOGTitle(p)
	title.MaxLength = shareTitleMaxLength
	fields.AddFieldToTab(tab, title)

	description := cms.NewTextarea(FieldOGDescriptionCustom, msgs.ShareDescription, o.OGDescriptionCustom, 2)
	description.Placeholder, _ = e.DefaultOGDescription(p)
	description.MaxLength = MaxDescriptionLength
	fields.AddFieldToTab(tab, description)

	image := cms.NewImageUpload(FieldOGImageCustom, msgs.ShareImage, e.previewURL(ctx, o.OGImageCustom))
	image.Description = msgs.ShareImageRatio
	fields.AddFieldToTab(tab, image)

	if e.cfg.Pinterest {
		pin := cms.NewImageUpload(FieldPinterestImageCustom, msgs.PinterestImage, e.previewURL(ctx, o.PinterestImageCustom))
		pin.Description = msgs.PinterestImageHint
		fields.AddFieldToTab(tab, pin)
	}
}

func (e *Extension) addSummaryFields(ctx context.Context, p Page, fields *cms.FieldList) {
	msgs := e.cfg.Messages
	fields.RemoveByName(TabMetadata)

	var current string
	if m, ok := p.(MetaDescriber); ok {
		current = m.MetaDescription()
	}
	description := cms.NewTextarea(FieldMetaDescription, msgs.SummaryTitle, current, 2)
	description.Description = templ.EscapeString(msgs.SummaryDescription)
	description.Placeholder, _ = e.DefaultOGDescription(p)
	fields.AddFieldToTab(mainTab, description, FieldContent)

	var img *asset.Image
	if s, ok := p.(SummaryImager); ok {
		img = s.MetaImage()
	}
	hint := templ.EscapeString(msgs.SummaryImageHint)
	if img == nil && isPublished(p) {
		hint += ` <i style="color:#ec720f">` + templ.EscapeString(msgs.SummaryImageNotEmpty) + `</i>`
	}
	upload := cms.NewImageUpload(FieldMetaImage, msgs.SummaryImageTitle, e.previewURL(ctx, img))
	upload.Description = hint
	fields.AddFieldToTab(mainTab, upload, FieldContent)
}

// Preview returns the data behind the share preview.
func (e *Extension) Preview(ctx context.Context, p Page) views.Preview {
	description, _ := e.OGDescription(p)
	link, _ := e.absoluteLink(p)
	pv := views.Preview{
		Title:            e.OGTitle(p),
		Description:      description,
		Link:             link,
		IncludeTwitter:   e.cfg.TwitterCard,
		IncludePinterest: e.cfg.Pinterest,
	}
	if img, ok := e.OGImage(ctx, p); ok {
		pv.ImageURL = img.URL
	}
	if e.cfg.Pinterest {
		if img, ok := e.PinterestImage(ctx, p); ok {
			pv.PinterestImageURL = img.URL
		}
	}
	return pv
}

func (e *Extension) renderPreview(ctx context.Context, p Page) string {
	var buf bytes.Buffer
	if err := views.SharePreview(e.Preview(ctx, p)).Render(ctx, &buf); err != nil {
		e.logger.Warnf("sharecare: render share preview: %v", err)
		return ""
	}
	return buf.String()
}

func (e *Extension) previewURL(ctx context.Context, img *asset.Image) string {
	if e.assets == nil || !e.assets.Exists(ctx, img) {
		return ""
	}
	return e.assets.URL(*img)
}

// isPublished prefers an explicit publish state, then anonymous visibility.
func isPublished(p Page) bool {
	if pc, ok := p.(PublishedChecker); ok {
		return pc.IsPublished()
	}
	if v, ok := p.(PublicViewer); ok {
		return v.CanViewAnonymous()
	}
	return false
}

func notice(msg string) string {
	return `<div class="message notice"><p>` + msg + `</p></div>`
}
