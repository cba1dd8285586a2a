package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseRoomID(t *testing.T) {
	cases := []struct {
		raw     string
		want    RoomID
		wantErr error
	}{
		{raw: "abc", want: "abc"},
		{raw: "  abc \t", want: "abc"},
		{raw: "", wantErr: ErrRoomIDEmpty},
		{raw: "   ", wantErr: ErrRoomIDEmpty},
		{raw: strings.Repeat("x", MaxRoomIDLen+1), wantErr: ErrRoomIDTooLong},
	}
	for _, tc := range cases {
		got, err := ParseRoomID(tc.raw)
		if err != tc.wantErr {
			t.Fatalf("ParseRoomID(%q) err=%v, want %v", tc.raw, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseRoomID(%q)=%q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestRoomStateJSON(t *testing.T) {
	b, err := json.Marshal(map[string]RoomState{"state": RoomPaired})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"state":"PAIRED"}` {
		t.Fatalf("got %s", b)
	}
}

func TestUserSetUsername(t *testing.T) {
	u := NewUser("sid-1")
	if u.Username != DefaultUsername {
		t.Fatalf("default username=%q", u.Username)
	}
	if err := u.SetUsername(" alice "); err != nil {
		t.Fatalf("SetUsername: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("username=%q, want alice", u.Username)
	}
	if err := u.SetUsername(""); err != ErrUsernameEmpty {
		t.Fatalf("empty: err=%v", err)
	}
	if err := u.SetUsername(strings.Repeat("a", MaxUsernameLen+1)); err != ErrUsernameTooLong {
		t.Fatalf("long: err=%v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("rejected rename mutated username to %q", u.Username)
	}
}
