package turn

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time { return time.Unix(1_700_000_000, 0).UTC() }

func expectedCredential(t *testing.T, secret []byte, username string) string {
	t.Helper()
	mac := hmac.New(sha1.New, secret)
	_, _ = mac.Write([]byte(username))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestIssue_EphemeralDeterministic(t *testing.T) {
	iss := NewIssuer(Options{
		URLs:         []string{"turn:turn.example.com:3478"},
		Ephemeral:    true,
		SharedSecret: "shared-secret",
		TTL:          3600,
		Now:          fixedNow,
		TokenSource:  func() (string, error) { return "deadbeef", nil },
	})

	cred, err := iss.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if cred.Username != "1700003600:deadbeef" {
		t.Fatalf("Username: got %q", cred.Username)
	}
	if want := expectedCredential(t, []byte("shared-secret"), cred.Username); cred.Credential != want {
		t.Fatalf("Credential: got %q, want %q", cred.Credential, want)
	}
	if cred.TTL != 3600 || len(cred.URLs) != 1 {
		t.Fatalf("cred=%+v", cred)
	}
}

func TestIssue_EphemeralExpiryWithinOneSecond(t *testing.T) {
	const ttl = 90
	iss := NewIssuer(Options{Ephemeral: true, SharedSecret: "s", TTL: ttl})

	t0 := time.Now().Unix()
	cred, err := iss.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	ts, token, ok := strings.Cut(cred.Username, ":")
	if !ok || len(token) != 8 {
		t.Fatalf("username %q is not <expiry>:<8 hex chars>", cred.Username)
	}
	expiry, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		t.Fatalf("ParseInt: %v", err)
	}
	if d := expiry - (t0 + ttl); d < -1 || d > 1 {
		t.Fatalf("expiry %d not within 1s of %d", expiry, t0+ttl)
	}
	if want := expectedCredential(t, []byte("s"), cred.Username); cred.Credential != want {
		t.Fatalf("credential mismatch")
	}
}

func TestIssue_RandomTokensDiffer(t *testing.T) {
	iss := NewIssuer(Options{Ephemeral: true, SharedSecret: "s", Now: fixedNow})
	a, _ := iss.Issue()
	b, _ := iss.Issue()
	if a.Username == b.Username {
		t.Fatalf("two credentials share username %q", a.Username)
	}
}

func TestIssue_StaticWins(t *testing.T) {
	iss := NewIssuer(Options{
		URLs:           []string{"turn:t.example.com"},
		StaticUsername: "user",
		StaticPassword: "pass",
		Ephemeral:      true,
		SharedSecret:   "ignored",
	})
	if iss.Mode() != ModeStatic {
		t.Fatalf("mode=%v", iss.Mode())
	}
	cred, err := iss.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if cred.Username != "user" || cred.Credential != "pass" || cred.TTL != DefaultStaticTTL {
		t.Fatalf("cred=%+v", cred)
	}
}

func TestIssue_NotConfigured(t *testing.T) {
	cases := []Options{
		{URLs: []string{"stun:s.example.com"}},
		{URLs: []string{"stun:s.example.com"}, Ephemeral: true},
		{URLs: []string{"stun:s.example.com"}, SharedSecret: "s"},
		{URLs: []string{"stun:s.example.com"}, StaticUsername: "only-user"},
	}
	for i, opts := range cases {
		cred, err := NewIssuer(opts).Issue()
		if !errors.Is(err, ErrNotConfigured) {
			t.Fatalf("case %d: err=%v", i, err)
		}
		if cred.Username != "" || cred.Credential != "" || len(cred.URLs) != 1 {
			t.Fatalf("case %d: cred=%+v", i, cred)
		}
	}
}

func TestIssue_TokenSourceError(t *testing.T) {
	boom := errors.New("boom")
	iss := NewIssuer(Options{Ephemeral: true, SharedSecret: "s", TokenSource: func() (string, error) { return "", boom }})
	if _, err := iss.Issue(); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}

func TestVerify(t *testing.T) {
	secret := []byte("secret")
	username := Username(fixedNow().Add(time.Hour), "abcd1234")
	cred := Sign(secret, username)

	if err := Verify(secret, username, cred, fixedNow()); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := Verify([]byte("other"), username, cred, fixedNow()); err != ErrBadCredential {
		t.Fatalf("wrong secret: err=%v", err)
	}
	if err := Verify(secret, username, cred, fixedNow().Add(2*time.Hour)); err != ErrExpired {
		t.Fatalf("expired: err=%v", err)
	}
	if err := Verify(secret, "nonsense:abc", Sign(secret, "nonsense:abc"), fixedNow()); err != ErrMalformedUsername {
		t.Fatalf("malformed: err=%v", err)
	}
}

func TestICEServers(t *testing.T) {
	iss := NewIssuer(Options{
		URLs:         []string{"stun:s.example.com:3478", "turn:t.example.com:3478?transport=udp", "turns:t.example.com:5349"},
		Ephemeral:    true,
		SharedSecret: "s",
		Now:          fixedNow,
		TokenSource:  func() (string, error) { return "00ff00ff", nil },
	})
	servers, err := iss.ICEServers()
	if err != nil {
		t.Fatalf("ICEServers: %v", err)
	}
	if len(servers) != 3 {
		t.Fatalf("len=%d", len(servers))
	}
	if servers[0].Username != "" || servers[0].Credential != nil {
		t.Fatalf("stun entry carries credentials: %+v", servers[0])
	}
	for _, s := range servers[1:] {
		if s.Username != "1700003600:00ff00ff" || s.Credential != Sign([]byte("s"), s.Username) {
			t.Fatalf("turn entry=%+v", s)
		}
	}
}

func TestICEServers_Unconfigured(t *testing.T) {
	servers, err := NewIssuer(Options{URLs: []string{"turn:t.example.com"}}).ICEServers()
	if err != nil {
		t.Fatalf("ICEServers: %v", err)
	}
	if len(servers) != 1 || servers[0].Username != "" {
		t.Fatalf("servers=%+v", servers)
	}
}
