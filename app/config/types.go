package config

// Config represents the persistent pocket-comb configuration, stored as a
// YAML file in the Jekyll site root.
type Config struct {
	PocketConsumerKey string   `yaml:"pocket_consumer_key"`
	PocketRedirectURI string   `yaml:"pocket_redirect_uri"`
	PocketAccessToken string   `yaml:"pocket_access_token"`
	PocketSyncTags    []string `yaml:"pocket_sync_tags"`
	PocketSince       string   `yaml:"pocket_since"`
	LinkpostPostDir   string   `yaml:"linkpost_post_dir"`
	LinkpostDraftDir  string   `yaml:"linkpost_draft_dir"`
}
