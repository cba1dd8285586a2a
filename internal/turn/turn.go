// Package turn issues relay (TURN) credentials.
//
// Ephemeral credentials follow the TURN REST scheme understood by coturn and
// other off-the-shelf relays:
//
//	username   = <unix_expiry_timestamp>:<random_token>
//	credential = base64(hmac_sha1(shared_secret, username))
//
// A relay holding the same secret validates them without any shared state.
package turn

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotConfigured     = errors.New("TURN not configured on server. Set TURN_USERNAME/TURN_PASSWORD or TURN_USE_LT_CRED + TURN_SHARED_SECRET")
	ErrMalformedUsername = errors.New("malformed username")
	ErrExpired           = errors.New("credential expired")
	ErrBadCredential     = errors.New("credential mismatch")
)

// Credential is what browsers put into an RTCIceServer entry.
type Credential struct {
	URLs       []string `json:"urls"`
	Username   string   `json:"username,omitempty"`
	Credential string   `json:"credential,omitempty"`
	TTL        int64    `json:"ttl,omitempty"`
}

// Username builds "<expiry>:<token>".
func Username(expiry time.Time, token string) string {
	return fmt.Sprintf("%d:%s", expiry.Unix(), token)
}

// Sign computes the credential for username.
func Sign(sharedSecret []byte, username string) string {
	mac := hmac.New(sha1.New, sharedSecret)
	_, _ = mac.Write([]byte(username))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Expiry parses the timestamp embedded at the front of an ephemeral username.
func Expiry(username string) (time.Time, error) {
	ts, _, _ := strings.Cut(username, ":")
	secs, err := strconv.ParseInt(ts, 10, 64)
	if err != nil || secs <= 0 {
		return time.Time{}, ErrMalformedUsername
	}
	return time.Unix(secs, 0), nil
}

// Verify performs the check a relay server does on an ephemeral credential.
func Verify(sharedSecret []byte, username, credential string, now time.Time) error {
	expiry, err := Expiry(username)
	if err != nil {
		return err
	}
	want := Sign(sharedSecret, username)
	if !hmac.Equal([]byte(want), []byte(credential)) {
		return ErrBadCredential
	}
	if !now.Before(expiry) {
		return ErrExpired
	}
	return nil
}

func randomToken() (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
