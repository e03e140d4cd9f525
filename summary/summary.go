// Package summary turns HTML page content into a short plain-text summary.
package summary

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Defaults used for share descriptions.
const (
	DefaultMaxWords = 20
	DefaultFlex     = 5
	Ellipsis        = "..."
)

// FromHTML summarises HTML content with Summary.
func FromHTML(content string, maxWords, flex int) string {
	return Summary(PlainText(content), maxWords, flex)
}

// PlainText strips tags from HTML content, drops script and style bodies,
// decodes entities and collapses whitespace.
func PlainText(content string) string {
	z := html.NewTokenizer(strings.NewReader(content))
	var b strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if a == atom.Script || a == atom.Style {
				switch tt {
				case html.StartTagToken:
					skip++
				case html.EndTagToken:
					if skip > 0 {
						skip--
					}
				}
				continue
			}
			if isBlock(a) {
				b.WriteByte(' ')
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// Summary returns whole leading sentences of text. When the first sentence
// alone is longer than maxWords it is cut to maxWords words and suffixed with
// Ellipsis. Further sentences are added while fewer than maxWords words have
// been taken and the next sentence keeps the total within maxWords+flex.
func Summary(text string, maxWords, flex int) string {
	sentences := splitSentences(strings.Fields(text))
	if len(sentences) == 0 || maxWords <= 0 {
		return ""
	}
	first := sentences[0]
	if len(first) > maxWords {
		return strings.Join(first[:maxWords], " ") + Ellipsis
	}
	out := append([]string(nil), first...)
	for _, s := range sentences[1:] {
		if len(out) >= maxWords || len(out)+len(s) > maxWords+flex {
			break
		}
		out = append(out, s...)
	}
	return strings.Join(out, " ")
}

func splitSentences(words []string) [][]string {
	var sentences [][]string
	var cur []string
	for _, w := range words {
		cur = append(cur, w)
		if endsSentence(w) {
			sentences = append(sentences, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		sentences = append(sentences, cur)
	}
	return sentences
}

func endsSentence(word string) bool {
	w := strings.TrimRight(word, `"')]”’`)
	if w == "" {
		return false
	}
	switch w[len(w)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Br, atom.Li, atom.Ul, atom.Ol,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Blockquote, atom.Pre, atom.Tr, atom.Td, atom.Th,
		atom.Section, atom.Article, atom.Header, atom.Footer, atom.Hr:
		return true
	}
	return false
}
