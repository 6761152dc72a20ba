package archive

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup returns the text content of an HTML fragment. Line-break tags
// are dropped without inserting a newline and entities are decoded.
func StripMarkup(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF; a strings.Reader has no other failure mode.
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
