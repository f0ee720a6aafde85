// Package auth stores and resolves the GitHub token used for imports.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TokenEnvVar is checked before any configured or stored token.
const TokenEnvVar = "GITHUB_TOKEN"

// GitHubCredentials stores a GitHub personal access token.
type GitHubCredentials struct {
	Token string `json:"token,omitempty"`
	Login string `json:"login,omitempty"`
}

// Credentials holds stored credentials.
type Credentials struct {
	GitHub *GitHubCredentials `json:"github,omitempty"`
}

// Source says where a resolved token came from.
type Source string

const (
	SourceNone   Source = "none"
	SourceEnv    Source = "env"
	SourceConfig Source = "config"
	SourceStored Source = "stored"
)

// CredentialPath returns the path to the credentials file (~/.primer/credentials.json).
func CredentialPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".primer", "credentials.json"), nil
}

// Load reads credentials from ~/.primer/credentials.json.
// Returns empty credentials if the file doesn't exist.
func Load() (*Credentials, error) {
	path, err := CredentialPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	return &creds, nil
}

// Save writes credentials to ~/.primer/credentials.json with restricted permissions.
func Save(creds *Credentials) error {
	path, err := CredentialPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling credentials: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

// GitHubToken resolves the token for GitHub requests: the environment
// variable first, then the configured token, then stored credentials.
// An empty token means requests go out unauthenticated.
func GitHubToken(configured string) (string, Source) {
	if tok := os.Getenv(TokenEnvVar); tok != "" {
		return tok, SourceEnv
	}
	if configured != "" {
		return configured, SourceConfig
	}

	creds, err := Load()
	if err != nil || creds.GitHub == nil || creds.GitHub.Token == "" {
		return "", SourceNone
	}
	return creds.GitHub.Token, SourceStored
}
