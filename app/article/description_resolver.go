package article

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"
)

// Summarizer produces a generated excerpt from plain text. Implemented by
// TextRankSummarizer; injectable so tests can observe whether the costly
// fallback was invoked at all.
type Summarizer interface {
	Run(text string) string
}

type descriptionStrategy func(doc *goquery.Document, bodyMarkup string) string

// DescriptionResolver resolves a short excerpt for an article through an
// ordered fallback chain. Authors who supply explicit description metadata
// are never overridden by a generated summary.
type DescriptionResolver struct {
	strategies []descriptionStrategy
}

func NewDescriptionResolver(summarizer Summarizer) *DescriptionResolver {
	resolver := &DescriptionResolver{}

	metaStrategy := func(name string) descriptionStrategy {
		return func(doc *goquery.Document, _ string) string {
			return metaContent(doc, name)
		}
	}

	resolver.strategies = []descriptionStrategy{
		metaStrategy("description"),
		metaStrategy("og:description"),
		metaStrategy("twitter:description"),
		func(_ *goquery.Document, bodyMarkup string) string {
			return summarizer.Run(plainText(bodyMarkup))
		},
	}

	return resolver
}

// Run returns the first non-empty result of the fallback chain. An empty
// string is a valid terminal state, not an error.
func (r *DescriptionResolver) Run(rawHTML []byte, bodyMarkup string) string {
	doc := parseDocument(rawHTML)

	for _, strategy := range r.strategies {
		if result := strategy(doc, bodyMarkup); result != "" {
			return result
		}
	}

	slog.Debug("No description resolved, leaving excerpt empty")
	return ""
}
