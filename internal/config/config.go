package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pion/stun/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type TURNConfig struct {
	URLs          []string `mapstructure:"urls"`
	UseLTCred     bool     `mapstructure:"use_lt_cred"`
	SharedSecret  string   `mapstructure:"shared_secret"`
	CredentialTTL int64    `mapstructure:"credential_ttl"`
	Username      string   `mapstructure:"username"`
	Password      string   `mapstructure:"password"`
	StaticTTL     int64    `mapstructure:"static_ttl"`
}

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	Secret     string        `mapstructure:"secret"`
	LogLevel   string        `mapstructure:"log_level"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	PongWait   time.Duration `mapstructure:"pong_wait"`
	WriteWait  time.Duration `mapstructure:"write_wait"`
	SendBuffer int           `mapstructure:"send_buffer"`

	JoinRateLimit      int           `mapstructure:"join_rate_limit"`
	JoinRateInterval   time.Duration `mapstructure:"join_rate_interval"`
	StrictBackpressure bool          `mapstructure:"strict_backpressure"`

	TURN TURNConfig `mapstructure:"turn"`
}

// Environment variables understood on top of the config file.
var envBindings = map[string]string{
	"port":                "PORT",
	"mode":                "MODE",
	"secret":              "SESSION_SECRET",
	"log_level":           "LOG_LEVEL",
	"turn.urls":           "TURN_URLS",
	"turn.use_lt_cred":    "TURN_USE_LT_CRED",
	"turn.shared_secret":  "TURN_SHARED_SECRET",
	"turn.credential_ttl": "TURN_CREDENTIAL_TTL",
	"turn.username":       "TURN_USERNAME",
	"turn.password":       "TURN_PASSWORD",
	"turn.static_ttl":     "TURN_STATIC_TTL",
}

// Load reads config/config.<CONFIG_ENV>.yaml (dev by default).
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("secret", "change-me")
	v.SetDefault("log_level", "info")
	v.SetDefault("read_limit", 65536)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("write_wait", "10s")
	v.SetDefault("send_buffer", 32)
	v.SetDefault("join_rate_limit", 10)
	v.SetDefault("join_rate_interval", "10s")
	v.SetDefault("strict_backpressure", false)
	v.SetDefault("turn.urls", []string{"stun:stun.l.google.com:19302"})
	v.SetDefault("turn.use_lt_cred", false)
	v.SetDefault("turn.shared_secret", "")
	v.SetDefault("turn.credential_ttl", 3600)
	v.SetDefault("turn.username", "")
	v.SetDefault("turn.password", "")
	v.SetDefault("turn.static_ttl", 86400)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Strs("turn_urls", cfg.TURN.URLs).
		Msg("config ready")
	return &cfg, nil
}

func (c *Config) normalize() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.PingPeriod >= c.PongWait {
		return fmt.Errorf("ping_period (%s) must be less than pong_wait (%s)", c.PingPeriod, c.PongWait)
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = 32
	}
	if c.TURN.CredentialTTL <= 0 {
		return fmt.Errorf("turn.credential_ttl must be > 0")
	}
	c.TURN.URLs = RelayURLs(c.TURN.URLs)
	c.TURN.SharedSecret = strings.TrimSpace(c.TURN.SharedSecret)
	c.TURN.Username = strings.TrimSpace(c.TURN.Username)
	return nil
}

// RelayURLs trims the list and drops entries that are not stun/turn URIs.
func RelayURLs(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		// A single env value may still carry several comma separated URLs.
		for _, u := range strings.Split(entry, ",") {
			u = strings.TrimSpace(u)
			if u == "" {
				continue
			}
			if _, err := stun.ParseURI(u); err != nil {
				log.Warn().Err(err).Str("module", "config").Str("url", u).Msg("ignoring invalid relay url")
				continue
			}
			out = append(out, u)
		}
	}
	return out
}
