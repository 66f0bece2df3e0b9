package cv

import (
	"strings"

	"golang.org/x/net/html"
)

// Sanitize strips every tag from s and keeps the decoded text. Contents of
// script and style elements are dropped. Strings without markup are returned
// as they are.
func Sanitize(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			if isRawElement(z) {
				skip++
			}
		case html.EndTagToken:
			if isRawElement(z) && skip > 0 {
				skip--
			}
		}
	}
}

func isRawElement(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

// SanitizeLines sanitizes each line and drops the ones left blank.
func SanitizeLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if s := Sanitize(l); strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func sanitizeOptional(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return ""
	}
	return Sanitize(*s)
}
