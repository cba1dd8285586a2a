package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFile_DefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != 8080 || cfg.Mode != "release" {
		t.Fatalf("port=%d mode=%q", cfg.Port, cfg.Mode)
	}
	if cfg.PingPeriod != 54*time.Second || cfg.PongWait != 60*time.Second {
		t.Fatalf("ping=%s pong=%s", cfg.PingPeriod, cfg.PongWait)
	}
	if len(cfg.TURN.URLs) != 1 || cfg.TURN.URLs[0] != "stun:stun.l.google.com:19302" {
		t.Fatalf("turn urls=%v", cfg.TURN.URLs)
	}
	if cfg.TURN.CredentialTTL != 3600 || cfg.TURN.StaticTTL != 86400 || cfg.TURN.UseLTCred {
		t.Fatalf("turn=%+v", cfg.TURN)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeConfig(t, `
port: 9000
mode: debug
join_rate_limit: 3
turn:
  urls:
    - stun:stun.example.com:3478
    - turn:turn.example.com:3478?transport=udp
    - http://not-a-relay
  use_lt_cred: true
  shared_secret: " s3cret "
  credential_ttl: 600
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != 9000 || cfg.Mode != "debug" || cfg.JoinRateLimit != 3 {
		t.Fatalf("cfg=%+v", cfg)
	}
	want := []string{"stun:stun.example.com:3478", "turn:turn.example.com:3478?transport=udp"}
	if len(cfg.TURN.URLs) != len(want) {
		t.Fatalf("urls=%v, want %v", cfg.TURN.URLs, want)
	}
	for i := range want {
		if cfg.TURN.URLs[i] != want[i] {
			t.Fatalf("urls=%v, want %v", cfg.TURN.URLs, want)
		}
	}
	if !cfg.TURN.UseLTCred || cfg.TURN.SharedSecret != "s3cret" || cfg.TURN.CredentialTTL != 600 {
		t.Fatalf("turn=%+v", cfg.TURN)
	}
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("TURN_URLS", "stun:a.example.com:3478, turn:b.example.com:3478")
	t.Setenv("TURN_USE_LT_CRED", "true")
	t.Setenv("TURN_SHARED_SECRET", "env-secret")
	t.Setenv("TURN_CREDENTIAL_TTL", "120")
	t.Setenv("TURN_USERNAME", "static-user")
	t.Setenv("TURN_PASSWORD", "static-pass")

	cfg, err := LoadFile(writeConfig(t, "port: 9000\n"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != 4000 {
		t.Fatalf("port=%d, want env override 4000", cfg.Port)
	}
	if len(cfg.TURN.URLs) != 2 || cfg.TURN.URLs[1] != "turn:b.example.com:3478" {
		t.Fatalf("urls=%v", cfg.TURN.URLs)
	}
	if !cfg.TURN.UseLTCred || cfg.TURN.SharedSecret != "env-secret" || cfg.TURN.CredentialTTL != 120 {
		t.Fatalf("turn=%+v", cfg.TURN)
	}
	if cfg.TURN.Username != "static-user" || cfg.TURN.Password != "static-pass" {
		t.Fatalf("static pair=%q/%q", cfg.TURN.Username, cfg.TURN.Password)
	}
}

func TestLoadFile_RejectsBadTimings(t *testing.T) {
	if _, err := LoadFile(writeConfig(t, "ping_period: 90s\npong_wait: 60s\n")); err == nil {
		t.Fatalf("expected error for ping_period >= pong_wait")
	}
	if _, err := LoadFile(writeConfig(t, "turn:\n  credential_ttl: 0\n")); err == nil {
		t.Fatalf("expected error for zero credential ttl")
	}
}

func TestRelayURLs(t *testing.T) {
	got := RelayURLs([]string{" stun:a.example.com ", "", "turns:b.example.com:5349,bogus", "ftp://x"})
	if len(got) != 2 || got[0] != "stun:a.example.com" || got[1] != "turns:b.example.com:5349" {
		t.Fatalf("got %v", got)
	}
}
