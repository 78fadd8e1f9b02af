package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_DefaultsAndCallbackAutogen(t *testing.T) {
	path := writeConfig(t, `
crypto:
  installation_secret: "s3cret"
social:
  callback_base_url: "https://id.example.test/"
  providers:
    facebook:
      enabled: true
      client_id: "cid"
      client_secret: "cs"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Addr != ":8080" || c.Storage.Driver != "memory" || c.Cache.Kind != "memory" {
		t.Fatalf("defaults not applied: %+v", c)
	}
	fb := c.Social.Providers["facebook"]
	want := "https://id.example.test/v1/social/facebook/callback"
	if fb.RedirectURL != want {
		t.Fatalf("redirect url: got %q want %q", fb.RedirectURL, want)
	}
	if c.SessionTTL() <= 0 {
		t.Fatalf("session ttl not parsed: %v", c.SessionTTL())
	}
}

func TestLoad_MissingInstallationSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9999"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error without installation secret")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SOCIALPOST_INSTALLATION_SECRET", "env-secret")
	t.Setenv("SOCIALPOST_ADDR", ":7070")
	t.Setenv("SOCIALPOST_FACEBOOK_CLIENT_SECRET", "env-cs")

	path := writeConfig(t, `
social:
  providers:
    facebook:
      enabled: true
      client_id: "cid"
      client_secret: "file-cs"
      redirect_url: "https://id.example.test/cb"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Crypto.InstallationSecret != "env-secret" {
		t.Fatalf("secret override failed: %q", c.Crypto.InstallationSecret)
	}
	if c.Server.Addr != ":7070" {
		t.Fatalf("addr override failed: %q", c.Server.Addr)
	}
	if c.Social.Providers["facebook"].ClientSecret != "env-cs" {
		t.Fatalf("provider secret override failed")
	}
}

func TestLoad_EnabledProviderWithoutCredentials(t *testing.T) {
	path := writeConfig(t, `
crypto:
  installation_secret: "s3cret"
social:
  providers:
    github:
      enabled: true
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for enabled provider without credentials")
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	path := writeConfig(t, `
crypto:
  installation_secret: "s3cret"
storage:
  driver: postgres
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for postgres driver without dsn")
	}
}
