package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JsonConfig is the on-disk form of Config. Durations are strings accepted
// by time.ParseDuration ("30m", "336h"). Absent fields keep their current value.
type JsonConfig struct {
	Username         *string `json:"username"`
	Password         *string `json:"password"`
	RememberMe       *bool   `json:"remember_me"`
	LogLevel         *string `json:"log_level"`
	SessionTimeout   *string `json:"session_timeout"`
	RememberMeSecret *string `json:"remember_me_secret"`
	RememberMeTTL    *string `json:"remember_me_ttl"`
	GrantCacheSize   *int    `json:"grant_cache_size"`
	BcryptCost       *int    `json:"bcrypt_cost"`
}

// LoadJSON overlays the values found in the JSON file at path.
func (c *Config) LoadJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config %s: %w", path, err)
	}
	jc := &JsonConfig{}
	if err := json.Unmarshal(data, jc); err != nil {
		return fmt.Errorf("could not parse config %s: %w", path, err)
	}

	setString(&c.Username, jc.Username)
	setString(&c.Password, jc.Password)
	if jc.RememberMe != nil {
		c.RememberMe = *jc.RememberMe
	}
	setString(&c.LogLevel, jc.LogLevel)
	setString(&c.RememberMeSecret, jc.RememberMeSecret)
	if err := setDuration(&c.SessionTimeout, jc.SessionTimeout); err != nil {
		return fmt.Errorf("session_timeout: %w", err)
	}
	if err := setDuration(&c.RememberMeTTL, jc.RememberMeTTL); err != nil {
		return fmt.Errorf("remember_me_ttl: %w", err)
	}
	if jc.GrantCacheSize != nil {
		c.GrantCacheSize = *jc.GrantCacheSize
	}
	if jc.BcryptCost != nil {
		c.BcryptCost = *jc.BcryptCost
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
