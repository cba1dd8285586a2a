package turn

import (
	"fmt"
	"time"

	"github.com/dkeye/pairline/internal/config"
	"github.com/pion/stun/v3"
	"github.com/pion/webrtc/v4"
)

const (
	DefaultTTL       = int64(3600)
	DefaultStaticTTL = int64(86400)
)

type Mode int

const (
	ModeNone Mode = iota
	ModeStatic
	ModeEphemeral
)

func (m Mode) String() string {
	switch m {
	case ModeStatic:
		return "static"
	case ModeEphemeral:
		return "ephemeral"
	default:
		return "stun-only"
	}
}

type Options struct {
	URLs []string

	StaticUsername string
	StaticPassword string
	StaticTTL      int64

	Ephemeral    bool
	SharedSecret string
	TTL          int64

	Now         func() time.Time
	TokenSource func() (string, error)
}

// Issuer hands out relay credentials. It keeps no state between calls.
type Issuer struct {
	opts Options
}

func NewIssuer(opts Options) *Issuer {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.StaticTTL <= 0 {
		opts.StaticTTL = DefaultStaticTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TokenSource == nil {
		opts.TokenSource = randomToken
	}
	urls := make([]string, len(opts.URLs))
	copy(urls, opts.URLs)
	opts.URLs = urls
	return &Issuer{opts: opts}
}

func (i *Issuer) Mode() Mode {
	switch {
	case i.opts.StaticUsername != "" && i.opts.StaticPassword != "":
		return ModeStatic
	case i.opts.Ephemeral && i.opts.SharedSecret != "":
		return ModeEphemeral
	default:
		return ModeNone
	}
}

func (i *Issuer) URLs() []string {
	out := make([]string, len(i.opts.URLs))
	copy(out, i.opts.URLs)
	return out
}

// Issue returns static credentials if configured, otherwise mints an
// ephemeral pair. Without either it returns the bare URL list and
// ErrNotConfigured.
func (i *Issuer) Issue() (Credential, error) {
	cred := Credential{URLs: i.URLs()}
	switch i.Mode() {
	case ModeStatic:
		cred.Username = i.opts.StaticUsername
		cred.Credential = i.opts.StaticPassword
		cred.TTL = i.opts.StaticTTL
		return cred, nil
	case ModeEphemeral:
		token, err := i.opts.TokenSource()
		if err != nil {
			return Credential{URLs: cred.URLs}, fmt.Errorf("turn token: %w", err)
		}
		expiry := i.opts.Now().Add(time.Duration(i.opts.TTL) * time.Second)
		cred.Username = Username(expiry, token)
		cred.Credential = Sign([]byte(i.opts.SharedSecret), cred.Username)
		cred.TTL = i.opts.TTL
		return cred, nil
	default:
		return cred, ErrNotConfigured
	}
}

// ICEServers renders the configuration the way a browser wants it: one entry
// per URL, with credentials attached only to turn: and turns: URLs.
func (i *Issuer) ICEServers() ([]webrtc.ICEServer, error) {
	cred, err := i.Issue()
	withCreds := err == nil
	if err != nil && err != ErrNotConfigured {
		return nil, err
	}

	out := make([]webrtc.ICEServer, 0, len(cred.URLs))
	for _, raw := range cred.URLs {
		server := webrtc.ICEServer{URLs: []string{raw}}
		if withCreds && isRelayURL(raw) {
			server.Username = cred.Username
			server.Credential = cred.Credential
		}
		out = append(out, server)
	}
	return out, nil
}

func isRelayURL(raw string) bool {
	u, err := stun.ParseURI(raw)
	if err != nil {
		return false
	}
	return u.Scheme == stun.SchemeTypeTURN || u.Scheme == stun.SchemeTypeTURNS
}

func OptionsFromConfig(c config.TURNConfig) Options {
	return Options{
		URLs:           c.URLs,
		StaticUsername: c.Username,
		StaticPassword: c.Password,
		StaticTTL:      c.StaticTTL,
		Ephemeral:      c.UseLTCred,
		SharedSecret:   c.SharedSecret,
		TTL:            c.CredentialTTL,
	}
}
