package article

import (
	"sort"
	"strings"

	textrank "github.com/DavidBelicza/TextRank/v2"
	"golang.org/x/text/language"
)

const summarySentenceCount = 3

// TextRankSummarizer generates a short extractive summary by ranking
// sentences with a graph-based algorithm and concatenating the top ranked
// ones in their original document order. It is the last resort of the
// description fallback chain, so it only runs when a page carries no usable
// description metadata.
type TextRankSummarizer struct {
	language string
}

// NewTextRankSummarizer accepts a BCP 47 language tag. Unknown tags fall
// back to English.
func NewTextRankSummarizer(tag string) *TextRankSummarizer {
	parsed, err := language.Parse(tag)
	if err != nil {
		parsed = language.English
	}

	base, _ := parsed.Base()

	return &TextRankSummarizer{language: base.String()}
}

func (s *TextRankSummarizer) Run(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	tr := textrank.NewTextRank()
	rule := textrank.NewDefaultRule()
	lang := textrank.NewDefaultLanguage()
	lang.SetActiveLanguage(s.language)
	algorithm := textrank.NewDefaultAlgorithm()

	tr.Populate(text, lang, rule)
	tr.Ranking(algorithm)

	sentences := textrank.FindSentencesByRelationWeight(tr, summarySentenceCount)
	if len(sentences) == 0 {
		return ""
	}

	// Highest ranked sentences, restored to document order
	sort.Slice(sentences, func(i, j int) bool {
		return sentences[i].ID < sentences[j].ID
	})

	parts := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		parts = append(parts, strings.TrimSpace(sentence.Value))
	}

	return strings.Join(parts, " ")
}
