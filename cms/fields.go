// Package cms models the editing form of a content page: tabs holding
// fields, addressed by dotted paths such as "Root.Share".
package cms

// Kind is the type of form control a field renders as.
type Kind int

const (
	Literal Kind = iota
	Text
	Textarea
	Upload
)

// Field is one form control. HTML is used by Literal fields only and is
// rendered unescaped.
type Field struct {
	Kind        Kind
	Name        string
	Title       string
	Value       string
	Placeholder string
	Description string // may contain HTML
	MaxLength   int
	Rows        int
	HTML        string
	Accept      string // upload: accepted MIME types
	PreviewURL  string // upload: current file
}

// NewLiteral returns a field that renders html as-is.
func NewLiteral(name, html string) Field {
	return Field{Kind: Literal, Name: name, HTML: html}
}

// NewText returns a single-line text input.
func NewText(name, title, value string) Field {
	return Field{Kind: Text, Name: name, Title: title, Value: value}
}

// NewTextarea returns a multi-line text input.
func NewTextarea(name, title, value string, rows int) Field {
	return Field{Kind: Textarea, Name: name, Title: title, Value: value, Rows: rows}
}

// NewImageUpload returns a single image upload control.
func NewImageUpload(name, title, currentURL string) Field {
	return Field{Kind: Upload, Name: name, Title: title, Accept: "image/*", PreviewURL: currentURL}
}

// Tab groups fields under a path like "Root.Main".
type Tab struct {
	Path   string
	Title  string
	Fields []Field
}

// FieldList is an ordered set of tabs.
type FieldList struct {
	Tabs []*Tab
}

// Tab returns the tab at path, creating it at the end when absent.
func (l *FieldList) Tab(path string) *Tab {
	for _, t := range l.Tabs {
		if t.Path == path {
			return t
		}
	}
	t := &Tab{Path: path, Title: tabTitle(path)}
	l.Tabs = append(l.Tabs, t)
	return t
}

// AddFieldToTab appends f to the tab at path, or inserts it before the
// field named before when that field is on the tab.
func (l *FieldList) AddFieldToTab(path string, f Field, before ...string) {
	t := l.Tab(path)
	if len(before) > 0 {
		for i, existing := range t.Fields {
			if existing.Name == before[0] {
				t.Fields = append(t.Fields[:i], append([]Field{f}, t.Fields[i:]...)...)
				return
			}
		}
	}
	t.Fields = append(t.Fields, f)
}

// RemoveByName drops every field and every tab with the given name. Tabs
// match on the last path segment.
func (l *FieldList) RemoveByName(name string) {
	tabs := l.Tabs[:0]
	for _, t := range l.Tabs {
		if tabTitle(t.Path) == name {
			continue
		}
		fields := t.Fields[:0]
		for _, f := range t.Fields {
			if f.Name != name {
				fields = append(fields, f)
			}
		}
		t.Fields = fields
		tabs = append(tabs, t)
	}
	l.Tabs = tabs
}

// Field finds a field by name across all tabs.
func (l *FieldList) Field(name string) (Field, bool) {
	for _, t := range l.Tabs {
		for _, f := range t.Fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return Field{}, false
}

func tabTitle(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}
