package config

import (
	"log/slog"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "pocket-comb"
	keyringUser    = "pocket_access_token"
)

// AccessToken returns the Pocket access token, preferring the system keyring
// over the token stored in the configuration file.
func (s *Store) AccessToken(config *Config) string {
	if token, err := keyring.Get(keyringService, keyringUser); err == nil && token != "" {
		return token
	}
	return config.PocketAccessToken
}

// SaveAccessToken stores the Pocket access token in the system keyring,
// falling back to the configuration file when no keyring is available.
func (s *Store) SaveAccessToken(config *Config, token string) error {
	err := keyring.Set(keyringService, keyringUser, token)
	if err == nil {
		return nil
	}
	slog.Debug("Keyring unavailable, storing access token in configuration file", "error", err)

	config.PocketAccessToken = token
	return s.Save(config)
}
