package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/pocket-comb/app/linkpost"
	"github.com/lysyi3m/pocket-comb/app/pocket"
)

type fakeFeedClient struct {
	items []pocket.Item
	since string
	err   error
}

func (c *fakeFeedClient) FetchSince(_ context.Context, _ []string, _ string) ([]pocket.Item, string, error) {
	return c.items, c.since, c.err
}

type fakeFetcher struct {
	pages   map[string]string
	failing map[string]bool
}

func (f *fakeFetcher) Run(_ context.Context, url string) ([]byte, error) {
	if f.failing[url] {
		return nil, fmt.Errorf("connection refused")
	}
	return []byte(f.pages[url]), nil
}

type fakeExtractor struct{}

func (e *fakeExtractor) Run(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return "<p>extracted body</p>"
}

type fakeResolver struct{}

func (r *fakeResolver) Run(rawHTML []byte, _ string) string {
	// Mimics the meta tag chain: pages carrying a description yield it
	if strings.Contains(string(rawHTML), `name="description"`) {
		return "Short desc"
	}
	return ""
}

type fakeKeywords struct{}

func (k *fakeKeywords) Run(_ []byte, _ string) []string {
	return []string{"go"}
}

type fakeState struct {
	since string
	calls int
	err   error
}

func (s *fakeState) SetSince(since string) error {
	if s.err != nil {
		return s.err
	}
	s.since = since
	s.calls++
	return nil
}

func scenarioItems() []pocket.Item {
	return []pocket.Item{
		// A: no title, becomes a draft
		{ResolvedID: "100", GivenURL: "https://example.com/a", TimeAdded: "1700000000"},
		// B: titled with a description meta tag, becomes a post
		{ResolvedID: "101", GivenURL: "https://example.com/b", ResolvedTitle: "Item B", TimeAdded: "1700000100"},
		// C: missing url, unprocessable
		{ResolvedID: "102", ResolvedTitle: "Item C", TimeAdded: "1700000200"},
	}
}

func newScenarioTask(t *testing.T, postDir, draftDir string, state *fakeState) *SyncTask {
	t.Helper()

	client := &fakeFeedClient{items: scenarioItems(), since: "1700000300"}
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://example.com/a": `<html><head></head><body>a</body></html>`,
		"https://example.com/b": `<html><head><meta name="description" content="Short desc"></head><body>b</body></html>`,
	}}

	settings := SyncSettings{
		Tags:     []string{"blog"},
		Since:    "1690000000",
		PostDir:  postDir,
		DraftDir: draftDir,
	}

	return NewSyncTask(settings, client, fetcher, &fakeExtractor{}, &fakeResolver{},
		&fakeKeywords{}, linkpost.NewMaterializer(), state)
}

func TestSyncTask_Execute_Scenario(t *testing.T) {
	postDir := t.TempDir()
	draftDir := t.TempDir()
	state := &fakeState{}

	task := newScenarioTask(t, postDir, draftDir, state)

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	summary := task.Summary()
	if summary.Posts != 1 || summary.Drafts != 1 || summary.Skipped != 1 {
		t.Errorf("Expected 1 post, 1 draft, 1 skipped, got %+v", summary)
	}

	if state.calls != 1 {
		t.Errorf("Expected cursor to advance exactly once, got %d", state.calls)
	}
	if state.since != "1700000300" {
		t.Errorf("Expected cursor to advance to client-returned value, got %q", state.since)
	}

	// A lands in the draft directory, B in the post directory
	draftName := time.Unix(1700000000, 0).Format("2006-01-02") + "-100.markdown"
	if _, err := os.Stat(filepath.Join(draftDir, draftName)); err != nil {
		t.Errorf("Expected draft file %s: %v", draftName, err)
	}

	postName := time.Unix(1700000100, 0).Format("2006-01-02") + "-101.markdown"
	postPath := filepath.Join(postDir, postName)
	data, err := os.ReadFile(postPath)
	if err != nil {
		t.Fatalf("Expected post file %s: %v", postName, err)
	}
	if !strings.Contains(string(data), "excerpt: Short desc") {
		t.Errorf("Expected post excerpt to come from the description meta tag")
	}

	// C must not have produced any file
	for _, dir := range []string{postDir, draftDir} {
		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 {
			t.Errorf("Expected exactly one file in %s, got %d", dir, len(entries))
		}
	}
}

func TestSyncTask_Execute_RerunIsIdempotent(t *testing.T) {
	postDir := t.TempDir()
	draftDir := t.TempDir()
	state := &fakeState{}

	first := newScenarioTask(t, postDir, draftDir, state)
	if err := first.Execute(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	second := newScenarioTask(t, postDir, draftDir, state)
	if err := second.Execute(context.Background()); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	summary := second.Summary()
	if summary.Posts != 0 || summary.Drafts != 0 {
		t.Errorf("Expected no new posts or drafts on rerun, got %+v", summary)
	}
	if summary.Skipped != 3 {
		t.Errorf("Expected A, B and C to be skipped on rerun, got %+v", summary)
	}

	if state.calls != 2 {
		t.Errorf("Expected cursor persistence after both completed batches, got %d", state.calls)
	}
}

func TestSyncTask_Execute_EmptyBatchIsNoOp(t *testing.T) {
	state := &fakeState{}

	settings := SyncSettings{PostDir: t.TempDir(), DraftDir: t.TempDir()}
	task := NewSyncTask(settings, &fakeFeedClient{since: "42"}, &fakeFetcher{}, &fakeExtractor{},
		&fakeResolver{}, &fakeKeywords{}, linkpost.NewMaterializer(), state)

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected empty batch to report success, got: %v", err)
	}

	if state.calls != 0 {
		t.Errorf("Expected no cursor persistence for an empty batch, got %d calls", state.calls)
	}
}

func TestSyncTask_Execute_AuthErrorIsFatal(t *testing.T) {
	state := &fakeState{}

	settings := SyncSettings{PostDir: t.TempDir(), DraftDir: t.TempDir()}
	client := &fakeFeedClient{err: fmt.Errorf("call failed: %w", pocket.ErrUnauthorized)}
	task := NewSyncTask(settings, client, &fakeFetcher{}, &fakeExtractor{},
		&fakeResolver{}, &fakeKeywords{}, linkpost.NewMaterializer(), state)

	err := task.Execute(context.Background())
	if !errors.Is(err, pocket.ErrUnauthorized) {
		t.Fatalf("Expected authentication error to surface, got: %v", err)
	}

	if state.calls != 0 {
		t.Errorf("Expected cursor to stay put on a failed fetch, got %d calls", state.calls)
	}
}

func TestSyncTask_Execute_DestinationMissingAbortsBatch(t *testing.T) {
	draftDir := t.TempDir()
	state := &fakeState{}

	missingDir := filepath.Join(t.TempDir(), "does-not-exist")
	task := newScenarioTask(t, missingDir, draftDir, state)

	err := task.Execute(context.Background())
	if !errors.Is(err, linkpost.ErrDestinationMissing) {
		t.Fatalf("Expected ErrDestinationMissing to abort the batch, got: %v", err)
	}

	if state.calls != 0 {
		t.Errorf("Expected cursor NOT to advance after an aborted batch, got %d calls", state.calls)
	}
}

func TestSyncTask_Execute_FetchFailureIsRecoverable(t *testing.T) {
	postDir := t.TempDir()
	draftDir := t.TempDir()
	state := &fakeState{}

	client := &fakeFeedClient{
		items: []pocket.Item{
			{ResolvedID: "200", GivenURL: "https://example.com/down", ResolvedTitle: "Down", TimeAdded: "1700000000"},
			{ResolvedID: "201", GivenURL: "https://example.com/up", ResolvedTitle: "Up", TimeAdded: "1700000100"},
		},
		since: "1700000200",
	}
	fetcher := &fakeFetcher{
		pages:   map[string]string{"https://example.com/up": "<html><body>up</body></html>"},
		failing: map[string]bool{"https://example.com/down": true},
	}

	settings := SyncSettings{PostDir: postDir, DraftDir: draftDir}
	task := NewSyncTask(settings, client, fetcher, &fakeExtractor{}, &fakeResolver{},
		&fakeKeywords{}, linkpost.NewMaterializer(), state)

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected per-item fetch failure to be recoverable, got: %v", err)
	}

	summary := task.Summary()
	if summary.Posts != 1 || summary.Skipped != 1 {
		t.Errorf("Expected 1 post and 1 skipped, got %+v", summary)
	}

	if state.since != "1700000200" {
		t.Errorf("Expected cursor to advance after the batch, got %q", state.since)
	}
}

func TestSyncTask_Execute_DraftClassification(t *testing.T) {
	postDir := t.TempDir()
	draftDir := t.TempDir()

	cases := []struct {
		title   string
		isDraft bool
	}{
		{"", true},
		{"Some Title", false},
	}

	for i, tc := range cases {
		client := &fakeFeedClient{
			items: []pocket.Item{{
				ResolvedID:    fmt.Sprintf("30%d", i),
				GivenURL:      "https://example.com/x",
				ResolvedTitle: tc.title,
				TimeAdded:     fmt.Sprintf("17000%d0000", i),
			}},
			since: "1",
		}
		fetcher := &fakeFetcher{pages: map[string]string{"https://example.com/x": "<html><body>x</body></html>"}}

		settings := SyncSettings{PostDir: postDir, DraftDir: draftDir}
		task := NewSyncTask(settings, client, fetcher, &fakeExtractor{}, &fakeResolver{},
			&fakeKeywords{}, linkpost.NewMaterializer(), &fakeState{})

		if err := task.Execute(context.Background()); err != nil {
			t.Fatalf("Case %d failed: %v", i, err)
		}

		summary := task.Summary()
		if tc.isDraft && summary.Drafts != 1 {
			t.Errorf("Case %d: expected a draft for empty title, got %+v", i, summary)
		}
		if !tc.isDraft && summary.Posts != 1 {
			t.Errorf("Case %d: expected a post for non-empty title, got %+v", i, summary)
		}
	}
}
