package parser

import (
	"strings"
	"testing"
)

func TestHTMLSnippeter_Snippet(t *testing.T) {
	s := NewHTMLSnippeter()

	tests := []struct {
		name string
		html string
		want string
	}{
		{"empty", "", ""},
		{"plain paragraph", "<p>Your code is 482913</p>", "Your code is 482913"},
		{
			"strips script and style",
			"<html><head><style>p{color:red}</style></head><body><script>alert(1)</script><p>hello</p></body></html>",
			"hello",
		},
		{"collapses whitespace", "<div>one\n\n  two\t three</div>", "one two three"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Snippet(tt.html); got != tt.want {
				t.Errorf("Snippet() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTMLSnippeter_Truncates(t *testing.T) {
	s := NewHTMLSnippeter()
	long := "<p>" + strings.Repeat("a", 500) + "</p>"

	got := s.Snippet(long)
	if len([]rune(got)) != maxSnippetLen {
		t.Errorf("Snippet() length = %d, want %d", len([]rune(got)), maxSnippetLen)
	}
}
