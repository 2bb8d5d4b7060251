package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/pocket-comb/app/linkpost"
	"github.com/lysyi3m/pocket-comb/app/pocket"
)

// SyncSettings carries the per-invocation configuration of a sync run. It is
// passed in explicitly at construction, there is no ambient configuration
// state.
type SyncSettings struct {
	Tags     []string
	Since    string
	PostDir  string
	DraftDir string
}

// SyncSummary aggregates the per-item outcomes of one batch.
type SyncSummary struct {
	Posts   int
	Drafts  int
	Skipped int
}

// SyncTask drives one incremental sync: fetch the batch of bookmarks added
// since the cursor, enrich and materialize each item, then advance the
// cursor. Items are processed strictly sequentially, in the order delivered
// by the feed client (newest first).
type SyncTask struct {
	Task
	settings     SyncSettings
	client       FeedClient
	fetcher      ArticleFetcher
	extractor    BodyExtractor
	descriptions DescriptionResolver
	keywords     KeywordExtractor
	materializer Materializer
	state        StateStore

	summary SyncSummary
}

func NewSyncTask(settings SyncSettings, client FeedClient, fetcher ArticleFetcher,
	extractor BodyExtractor, descriptions DescriptionResolver, keywords KeywordExtractor,
	materializer Materializer, state StateStore) *SyncTask {
	return &SyncTask{
		Task:         NewTask(TaskTypeSync),
		settings:     settings,
		client:       client,
		fetcher:      fetcher,
		extractor:    extractor,
		descriptions: descriptions,
		keywords:     keywords,
		materializer: materializer,
		state:        state,
	}
}

// Summary returns the counters aggregated during Execute.
func (t *SyncTask) Summary() SyncSummary {
	return t.summary
}

func (t *SyncTask) Execute(ctx context.Context) error {
	t.Start()

	slog.Info("Requesting new items from Pocket", "tags", t.settings.Tags, "since", t.settings.Since)

	items, newSince, err := t.client.FetchSince(ctx, t.settings.Tags, t.settings.Since)
	if err != nil {
		return fmt.Errorf("failed to fetch bookmarks: %w", err)
	}

	if len(items) == 0 {
		slog.Info("No new bookmarks")
		return nil
	}

	slog.Info("Syncing items", "count", len(items))

	for _, item := range items {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := t.processItem(ctx, item); err != nil {
			return err
		}
	}

	// The cursor advances only after every item in the batch was attempted,
	// so an aborted run re-fetches the same batch. Re-processing is safe:
	// existing files are never overwritten.
	if err := t.state.SetSince(newSince); err != nil {
		return fmt.Errorf("failed to persist cursor: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"posts", t.summary.Posts,
		"drafts", t.summary.Drafts,
		"skipped", t.summary.Skipped)

	return nil
}

// processItem enriches and materializes a single bookmark. Per-item data and
// fetch failures are recoverable: they count as skipped and the batch
// continues. Only a missing destination directory aborts the batch.
func (t *SyncTask) processItem(ctx context.Context, item pocket.Item) error {
	if item.ResolvedID == "" || item.GivenURL == "" {
		slog.Warn("Skipping incomplete item", "item_id", item.ResolvedID, "url", item.GivenURL)
		t.summary.Skipped++
		return nil
	}

	isDraft := item.ResolvedTitle == ""

	timestamp, ok := item.AddedAt()
	if !ok {
		timestamp = time.Now()
	}

	rawHTML, err := t.fetcher.Run(ctx, item.GivenURL)
	if err != nil {
		slog.Warn("Skipping item, failed to fetch article", "item_id", item.ResolvedID, "url", item.GivenURL, "error", err)
		t.summary.Skipped++
		return nil
	}

	body := t.extractor.Run(rawHTML)

	post := linkpost.Post{
		ID:        item.ResolvedID,
		Title:     item.ResolvedTitle,
		URL:       item.GivenURL,
		Timestamp: timestamp,
		Excerpt:   t.descriptions.Run(rawHTML, body),
		Body:      body,
		Keywords:  t.keywords.Run(rawHTML, body),
		IsDraft:   isDraft,
	}

	result, err := t.materializer.Run(post, t.settings.PostDir, t.settings.DraftDir)
	if err != nil {
		if errors.Is(err, linkpost.ErrDestinationMissing) {
			return fmt.Errorf("misconfigured destination, aborting batch: %w", err)
		}
		return fmt.Errorf("failed to materialize linkpost: %w", err)
	}

	if result == linkpost.ResultSkipped {
		slog.Info("Linkpost already exists, skipping", "item_id", item.ResolvedID, "url", item.GivenURL)
		t.summary.Skipped++
		return nil
	}

	if isDraft {
		t.summary.Drafts++
		slog.Info("Linked to drafts", "item_id", item.ResolvedID, "url", item.GivenURL, "keywords", len(post.Keywords))
	} else {
		t.summary.Posts++
		slog.Info("Linked to posts", "item_id", item.ResolvedID, "title", item.ResolvedTitle, "url", item.GivenURL, "keywords", len(post.Keywords))
	}

	return nil
}
