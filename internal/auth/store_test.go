package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(TokenEnvVar, "")
	return home
}

func TestLoadMissing(t *testing.T) {
	withHome(t)
	creds, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if creds.GitHub != nil {
		t.Errorf("expected empty credentials, got %+v", creds)
	}
}

func TestSaveAndLoad(t *testing.T) {
	home := withHome(t)

	if err := Save(&Credentials{GitHub: &GitHubCredentials{Token: "ghp_abc", Login: "octo"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path := filepath.Join(home, ".primer", "credentials.json")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600, got %o", perm)
	}

	creds, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if creds.GitHub == nil || creds.GitHub.Token != "ghp_abc" || creds.GitHub.Login != "octo" {
		t.Errorf("unexpected credentials %+v", creds.GitHub)
	}
}

func TestLoadCorrupt(t *testing.T) {
	home := withHome(t)
	dir := filepath.Join(home, ".primer")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "credentials.json"), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestGitHubTokenPriority(t *testing.T) {
	withHome(t)

	if tok, src := GitHubToken(""); tok != "" || src != SourceNone {
		t.Errorf("expected no token, got %q from %s", tok, src)
	}

	if err := Save(&Credentials{GitHub: &GitHubCredentials{Token: "stored"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if tok, src := GitHubToken(""); tok != "stored" || src != SourceStored {
		t.Errorf("expected stored token, got %q from %s", tok, src)
	}

	if tok, src := GitHubToken("configured"); tok != "configured" || src != SourceConfig {
		t.Errorf("expected configured token, got %q from %s", tok, src)
	}

	t.Setenv(TokenEnvVar, "from-env")
	if tok, src := GitHubToken("configured"); tok != "from-env" || src != SourceEnv {
		t.Errorf("expected env token, got %q from %s", tok, src)
	}
}
