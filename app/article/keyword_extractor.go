package article

import (
	"strings"

	rake "github.com/afjoseph/RAKE.Go"
)

const maxKeywords = 5

// KeywordRanker extracts candidate keywords from plain text, best first.
// Implemented by RakeRanker; injectable so tests can assert it stays idle
// when a keywords meta tag is present.
type KeywordRanker interface {
	Run(text string) []string
}

// KeywordExtractor returns up to five keyword strings for an article. A
// keywords meta tag always wins over statistical extraction.
type KeywordExtractor struct {
	ranker KeywordRanker
}

func NewKeywordExtractor(ranker KeywordRanker) *KeywordExtractor {
	return &KeywordExtractor{ranker: ranker}
}

func (e *KeywordExtractor) Run(rawHTML []byte, bodyMarkup string) []string {
	doc := parseDocument(rawHTML)

	if meta := metaContent(doc, "keywords"); meta != "" {
		return splitMetaKeywords(meta)
	}

	text := plainText(bodyMarkup)
	if text == "" {
		return nil
	}

	keywords := e.ranker.Run(text)
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}

	for i, keyword := range keywords {
		keywords[i] = strings.TrimSpace(keyword)
	}

	return keywords
}

// splitMetaKeywords takes the first five comma-separated tokens in document
// order, trimmed.
func splitMetaKeywords(meta string) []string {
	tokens := strings.Split(meta, ",")
	if len(tokens) > maxKeywords {
		tokens = tokens[:maxKeywords]
	}

	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		keywords = append(keywords, strings.TrimSpace(token))
	}

	return keywords
}

// RakeRanker scores candidate phrases with the RAKE algorithm and filters
// them to phrases of at least minCharLength characters, at most maxWords
// words, occurring at least minFrequency times in the document.
type RakeRanker struct {
	minCharLength int
	maxWords      int
	minFrequency  int
}

func NewRakeRanker() *RakeRanker {
	return &RakeRanker{
		minCharLength: 3,
		maxWords:      3,
		minFrequency:  5,
	}
}

func (r *RakeRanker) Run(text string) []string {
	candidates := rake.RunRake(text)
	lowered := strings.ToLower(text)

	var keywords []string
	for _, candidate := range candidates {
		phrase := strings.TrimSpace(candidate.Key)

		if len(phrase) < r.minCharLength {
			continue
		}
		if len(strings.Fields(phrase)) > r.maxWords {
			continue
		}
		if strings.Count(lowered, strings.ToLower(phrase)) < r.minFrequency {
			continue
		}

		keywords = append(keywords, phrase)
	}

	return keywords
}
