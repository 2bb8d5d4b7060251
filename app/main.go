package main

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lysyi3m/pocket-comb/app/article"
	"github.com/lysyi3m/pocket-comb/app/cfg"
	"github.com/lysyi3m/pocket-comb/app/config"
	"github.com/lysyi3m/pocket-comb/app/linkpost"
	"github.com/lysyi3m/pocket-comb/app/pocket"
	"github.com/lysyi3m/pocket-comb/app/tasks"
)

func main() {
	// Optional .env so POCKET_CONSUMER_KEY and friends can live outside the
	// config file
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := config.NewStore(appCfg.ConfigFile)

	if err := run(ctx, appCfg, store); err != nil {
		slog.Error("Command failed", "command", appCfg.Command, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg *cfg.Cfg, store *config.Store) error {
	switch appCfg.Command {
	case "init":
		return runInit(store)
	case "auth":
		return runAuth(ctx, appCfg, store)
	case "sync":
		return runSync(ctx, appCfg, store)
	default:
		return fmt.Errorf("unknown command: %s", appCfg.Command)
	}
}

func runInit(store *config.Store) error {
	if err := store.CreateDefault(); err != nil {
		return err
	}

	slog.Info("Configuration file created", "path", store.Path())
	return nil
}

func runAuth(ctx context.Context, appCfg *cfg.Cfg, store *config.Store) error {
	conf, err := store.Load()
	if err != nil {
		return err
	}

	consumerKey := cmp.Or(os.Getenv("POCKET_CONSUMER_KEY"), conf.PocketConsumerKey)
	redirectURI := cmp.Or(os.Getenv("POCKET_REDIRECT_URI"), conf.PocketRedirectURI)
	if consumerKey == "" || redirectURI == "" {
		return fmt.Errorf("pocket_consumer_key and pocket_redirect_uri must be set in %s before authenticating", store.Path())
	}

	client := pocket.NewClient(newHTTPClient(appCfg), pocket.DefaultBaseURL, consumerKey, "", appCfg.UserAgent)

	requestToken, err := client.RequestToken(ctx, redirectURI)
	if err != nil {
		return fmt.Errorf("failed to obtain request token: %w", err)
	}

	fmt.Println("Open the following URL in your browser to authorize pocket-comb:")
	fmt.Println()
	fmt.Printf("  %s\n", client.AuthorizeURL(requestToken, redirectURI))
	fmt.Println()
	fmt.Println("When finished, press ENTER.")
	bufio.NewReader(os.Stdin).ReadString('\n')

	accessToken, username, err := client.AccessToken(ctx, requestToken)
	if err != nil {
		return fmt.Errorf("failed to obtain access token: %w", err)
	}

	if err := store.SaveAccessToken(conf, accessToken); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}

	slog.Info("Authenticated against Pocket", "username", username)
	return nil
}

func runSync(ctx context.Context, appCfg *cfg.Cfg, store *config.Store) error {
	conf, err := store.Load()
	if err != nil {
		return err
	}

	consumerKey := cmp.Or(os.Getenv("POCKET_CONSUMER_KEY"), conf.PocketConsumerKey)
	if consumerKey == "" {
		return fmt.Errorf("pocket_consumer_key must be set in %s", store.Path())
	}

	accessToken := cmp.Or(os.Getenv("POCKET_ACCESS_TOKEN"), store.AccessToken(conf))
	if accessToken == "" {
		return fmt.Errorf("no access token found, run `pocket-comb auth` before syncing")
	}

	httpClient := newHTTPClient(appCfg)
	timeout := time.Duration(appCfg.Timeout) * time.Second

	client := pocket.NewClient(httpClient, pocket.DefaultBaseURL, consumerKey, accessToken, appCfg.UserAgent)
	fetcher := article.NewFetcher(httpClient, appCfg.UserAgent, timeout)
	extractor := article.NewContentExtractor()
	summarizer := article.NewTextRankSummarizer(appCfg.SummaryLanguage)
	descriptions := article.NewDescriptionResolver(summarizer)
	keywords := article.NewKeywordExtractor(article.NewRakeRanker())
	materializer := linkpost.NewMaterializer()

	settings := tasks.SyncSettings{
		Tags:     conf.PocketSyncTags,
		Since:    conf.PocketSince,
		PostDir:  conf.LinkpostPostDir,
		DraftDir: conf.LinkpostDraftDir,
	}

	task := tasks.NewSyncTask(settings, client, fetcher, extractor, descriptions, keywords,
		materializer, &configState{store: store, config: conf})

	return task.Execute(ctx)
}

// configState adapts the config store to the orchestrator's cursor
// persistence contract.
type configState struct {
	store  *config.Store
	config *config.Config
}

func (s *configState) SetSince(since string) error {
	s.config.PocketSince = since
	return s.store.Save(s.config)
}

func newHTTPClient(appCfg *cfg.Cfg) *http.Client {
	return &http.Client{
		Timeout: time.Duration(appCfg.Timeout) * time.Second,
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
