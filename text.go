package main

import (
	"strings"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// plainConverter turns entity-escaped snippets such as "Rock &amp; Roll"
// into the text a reader sees. Markdown escaping is off: the site renders
// the value as text, not markdown.
var plainConverter = md.NewConverter("", true, &md.Options{EscapeMode: "disabled"})

// plainText returns s without HTML entities or markup. Input the converter
// rejects is returned trimmed.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "&<") {
		return s
	}
	out, err := plainConverter.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(out)
}

// truncateRunes cuts s to at most n runes and drops trailing whitespace
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:n]), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n'
	})
}

// firstNonEmpty returns the first candidate with visible text
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return strings.TrimSpace(c)
		}
	}
	return ""
}
