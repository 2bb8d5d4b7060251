package article

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseDocument parses raw HTML leniently. A nil document means the input
// was unusable; callers degrade instead of failing.
func parseDocument(data []byte) *goquery.Document {
	if len(data) == 0 {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	return doc
}

// metaContent returns the content attribute of the first meta tag with the
// given name, trimmed. Missing tags yield an empty string.
func metaContent(doc *goquery.Document, name string) string {
	if doc == nil {
		return ""
	}

	selector := "meta[name='" + name + "']"
	content, _ := doc.Find(selector).First().Attr("content")

	return strings.TrimSpace(content)
}

// plainText strips all markup from an HTML fragment.
func plainText(markup string) string {
	if markup == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(doc.Text())
}
