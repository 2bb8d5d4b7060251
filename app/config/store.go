package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultFileName = "_pocketcomb.yml"

const (
	defaultPostDir  = "_posts/linkposts"
	defaultDraftDir = "_drafts/linkposts"
)

// Store handles loading and saving of the pocket-comb configuration file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("could not open the configuration file %s, "+
			"are you in the correct directory and did you run `pocket-comb init` first: %w", s.path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", s.path, err)
	}

	s.setDefaults(&config)

	return &config, nil
}

func (s *Store) Save(config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file %s: %w", s.path, err)
	}

	return nil
}

// CreateDefault writes a configuration file with default values. An existing
// file is never overwritten.
func (s *Store) CreateDefault() error {
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("configuration file %s already exists", s.path)
	}

	config := &Config{
		PocketSyncTags:   []string{"blog"},
		LinkpostPostDir:  defaultPostDir,
		LinkpostDraftDir: defaultDraftDir,
	}

	return s.Save(config)
}

func (s *Store) setDefaults(config *Config) {
	if config.LinkpostPostDir == "" {
		config.LinkpostPostDir = defaultPostDir
	}
	if config.LinkpostDraftDir == "" {
		config.LinkpostDraftDir = defaultDraftDir
	}
}
