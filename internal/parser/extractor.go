package parser

import (
	"regexp"
	"strings"
)

// Extractor finds 6-digit verification codes in message subjects
type Extractor struct {
	patterns []*codePattern
}

type codePattern struct {
	Locale string
	Regex  *regexp.Regexp
}

// NewExtractor creates a new code extractor.
//
// Every pattern is anchored on a lead-in phrase ("code is", "验证码为",
// "código es") so that unrelated numeric content, like an order number in a
// shipping subject, is never mistaken for a code. Patterns are tried in
// order; add new locales here without touching Extract.
func NewExtractor() *Extractor {
	return &Extractor{
		patterns: []*codePattern{
			{
				Locale: "en",
				Regex:  regexp.MustCompile(`(?i)\b(?:verification\s+)?code\s*(?:is|:)\s*(\d{6})\b`),
			},
			{
				Locale: "zh",
				Regex:  regexp.MustCompile(`(?:验证码|校验码|驗證碼)\s*(?:为|是|為|[:：])?\s*(\d{6})`),
			},
			{
				Locale: "es",
				Regex:  regexp.MustCompile(`(?i)c[oó]digo(?:\s+de\s+verificaci[oó]n)?\s+es\s*[:：]?\s*(\d{6})\b`),
			},
		},
	}
}

// Extract returns the first 6-digit code found in the subject, matched by any
// of the supported locale phrasings, and whether one was found.
func (e *Extractor) Extract(subject string) (string, bool) {
	for _, pattern := range e.patterns {
		match := pattern.Regex.FindStringSubmatch(subject)
		if len(match) > 1 {
			return strings.TrimSpace(match[1]), true
		}
	}
	return "", false
}
