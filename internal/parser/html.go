package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxSnippetLen = 200

// HTMLSnippeter reduces an HTML message body to a short plain-text snippet
// used in progress output and the final report
type HTMLSnippeter struct {
	spaceRegex *regexp.Regexp
}

// NewHTMLSnippeter creates a new snippeter
func NewHTMLSnippeter() *HTMLSnippeter {
	return &HTMLSnippeter{
		spaceRegex: regexp.MustCompile(`\s+`),
	}
}

// Snippet extracts the leading text content of an HTML body, collapsed to a
// single line and truncated. Returns "" for empty or unparsable input.
func (s *HTMLSnippeter) Snippet(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, head").Remove()

	text := s.spaceRegex.ReplaceAllString(doc.Text(), " ")
	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > maxSnippetLen {
		text = strings.TrimSpace(string(runes[:maxSnippetLen]))
	}
	return text
}
