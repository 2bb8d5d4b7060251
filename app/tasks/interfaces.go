package tasks

import (
	"context"

	"github.com/lysyi3m/pocket-comb/app/linkpost"
	"github.com/lysyi3m/pocket-comb/app/pocket"
)

// FeedClient fetches bookmarks added since the cursor together with the new
// cursor value. Implemented by pocket.Client.
type FeedClient interface {
	FetchSince(ctx context.Context, tags []string, since string) ([]pocket.Item, string, error)
}

// ArticleFetcher downloads raw article HTML. Implemented by article.Fetcher.
type ArticleFetcher interface {
	Run(ctx context.Context, url string) ([]byte, error)
}

// BodyExtractor pulls the main article body out of raw HTML. Implemented by
// article.ContentExtractor.
type BodyExtractor interface {
	Run(data []byte) string
}

// DescriptionResolver resolves an excerpt for an article. Implemented by
// article.DescriptionResolver.
type DescriptionResolver interface {
	Run(rawHTML []byte, bodyMarkup string) string
}

// KeywordExtractor returns keyword strings for an article. Implemented by
// article.KeywordExtractor.
type KeywordExtractor interface {
	Run(rawHTML []byte, bodyMarkup string) []string
}

// Materializer writes one linkpost document per post. Implemented by
// linkpost.Materializer.
type Materializer interface {
	Run(post linkpost.Post, postDir, draftDir string) (linkpost.Result, error)
}

// StateStore persists the advanced cursor after a completed batch.
type StateStore interface {
	SetSince(since string) error
}
