// Package config handles configuration for the quickstart program: defaults,
// an optional JSON overlay and command-line flags, applied in that order.
package config

import (
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

const (
	FlagUsername         = "username"
	FlagPassword         = "password"
	FlagRememberMe       = "remember-me"
	FlagLogLevel         = "log-level"
	FlagSessionTimeout   = "session-timeout"
	FlagRememberMeSecret = "remember-me-secret"
	FlagRememberMeTTL    = "remember-me-ttl"
	FlagGrantCacheSize   = "grant-cache-size"
)

// Config holds runtime settings for the quickstart program.
//
// Fields:
//   - Username / Password / RememberMe: the credentials submitted at login.
//   - LogLevel: one of debug, info, warn, error.
//   - SessionTimeout: idle session timeout, 0 disables expiry.
//   - RememberMeSecret / RememberMeTTL: HMAC key and lifetime of remember-me tokens.
//   - GrantCacheSize: number of principals whose grants are cached.
//   - BcryptCost: cost used when seeding the demo realm.
type Config struct {
	Username         string
	Password         string
	RememberMe       bool
	LogLevel         string
	SessionTimeout   time.Duration
	RememberMeSecret string
	RememberMeTTL    time.Duration
	GrantCacheSize   int
	BcryptCost       int
}

// LoadDefaults populates Config with development defaults.
// NOTE: the remember-me secret must be overridden outside of demos.
func (c *Config) LoadDefaults() {
	c.Username = "lonestarr"
	c.Password = ""
	c.RememberMe = true
	c.LogLevel = "info"
	c.SessionTimeout = 30 * time.Minute
	c.RememberMeSecret = "change-me"
	c.RememberMeTTL = 14 * 24 * time.Hour
	c.GrantCacheSize = 128
	c.BcryptCost = bcrypt.DefaultCost
}

// Load applies defaults and then the JSON file at path, if path is not empty.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if path == "" {
		return cfg, nil
	}
	if err := cfg.LoadJSON(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RegisterFlags binds flags on fs to the fields of c, using the current
// values as defaults.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Username, FlagUsername, c.Username, "account to log in as")
	fs.StringVar(&c.Password, FlagPassword, c.Password, "password, prompted for when empty")
	fs.BoolVar(&c.RememberMe, FlagRememberMe, c.RememberMe, "ask to be remembered")
	fs.StringVar(&c.LogLevel, FlagLogLevel, c.LogLevel, "log level (debug, info, warn, error)")
	fs.DurationVar(&c.SessionTimeout, FlagSessionTimeout, c.SessionTimeout, "idle session timeout")
	fs.StringVar(&c.RememberMeSecret, FlagRememberMeSecret, c.RememberMeSecret, "remember-me signing secret")
	fs.DurationVar(&c.RememberMeTTL, FlagRememberMeTTL, c.RememberMeTTL, "remember-me token lifetime")
	fs.IntVar(&c.GrantCacheSize, FlagGrantCacheSize, c.GrantCacheSize, "grant cache size, 0 disables it")
}

// ApplyFlags copies into c the fields of from whose flag was set on fs.
func (c *Config) ApplyFlags(from *Config, fs *pflag.FlagSet) {
	if fs.Changed(FlagUsername) {
		c.Username = from.Username
	}
	if fs.Changed(FlagPassword) {
		c.Password = from.Password
	}
	if fs.Changed(FlagRememberMe) {
		c.RememberMe = from.RememberMe
	}
	if fs.Changed(FlagLogLevel) {
		c.LogLevel = from.LogLevel
	}
	if fs.Changed(FlagSessionTimeout) {
		c.SessionTimeout = from.SessionTimeout
	}
	if fs.Changed(FlagRememberMeSecret) {
		c.RememberMeSecret = from.RememberMeSecret
	}
	if fs.Changed(FlagRememberMeTTL) {
		c.RememberMeTTL = from.RememberMeTTL
	}
	if fs.Changed(FlagGrantCacheSize) {
		c.GrantCacheSize = from.GrantCacheSize
	}
}
