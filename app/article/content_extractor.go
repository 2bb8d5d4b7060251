package article

import (
	"bytes"
	"log/slog"

	readability "github.com/go-shiori/go-readability"
)

// ContentExtractor pulls the main article body out of a page, discarding
// navigation, ads and other boilerplate. Extraction never fails: malformed
// or empty input degrades to an empty string.
type ContentExtractor struct{}

func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

func (e *ContentExtractor) Run(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	article, err := readability.FromReader(bytes.NewReader(data), nil)
	if err != nil {
		slog.Debug("Content extraction failed, degrading to empty body", "error", err)
		return ""
	}

	slog.Debug("Content extracted successfully",
		"title", article.Title,
		"content_length", len(article.Content))

	return article.Content
}
