package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds watcher configuration. Mail credentials come from the
// environment; everything else has a default and a flag override.
type Config struct {
	ListingURL string
	SiteOrigin string

	Interval time.Duration
	Timeout  time.Duration

	UserAgent string

	SMTPHost       string
	SMTPPort       int
	SenderMailID   string
	SenderAppCode  string
	ReceiverMailID string

	ArchiveDir  string
	MetricsAddr string
	Verbose     bool
}

// DefaultConfig returns defaults for the watched listing.
func DefaultConfig() *Config {
	return &Config{
		ListingURL: "https://www.myntra.com/gold-coin?f=Brand%3AKalyan%20Jewellers",
		SiteOrigin: "https://www.myntra.com/",
		Interval:   5 * time.Minute,
		Timeout:    30 * time.Second,
		UserAgent:  "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		SMTPHost:   "smtp.gmail.com",
		SMTPPort:   587,
	}
}

// LoadEnv overlays mail settings from the environment.
func (c *Config) LoadEnv() {
	if v, ok := EnvString("SENDER_MAIL_ID"); ok {
		c.SenderMailID = v
	}
	if v, ok := EnvString("SENDER_APP_CODE"); ok {
		c.SenderAppCode = v
	}
	if v, ok := EnvString("RECEIVER_MAIL_ID"); ok {
		c.ReceiverMailID = v
	}
}

// Validate ensures all configuration values are coherent. Missing mail
// settings fail here so the process never runs with undeliverable alerts.
func (c *Config) Validate() error {
	if c.ListingURL == "" {
		return fmt.Errorf("listing URL cannot be empty")
	}
	parsed, err := url.Parse(c.ListingURL)
	if err != nil {
		return fmt.Errorf("invalid listing URL: %w", err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("listing URL must include a host")
	}

	if c.SiteOrigin == "" {
		return fmt.Errorf("site origin cannot be empty")
	}
	origin, err := url.Parse(c.SiteOrigin)
	if err != nil {
		return fmt.Errorf("invalid site origin: %w", err)
	}
	if origin.Host == "" {
		return fmt.Errorf("site origin must include a host")
	}

	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}

	if c.SMTPHost == "" {
		return fmt.Errorf("smtp host cannot be empty")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("smtp port must be in 1-65535, got %d", c.SMTPPort)
	}
	if c.SenderMailID == "" {
		return fmt.Errorf("sender mail id is required (set SENDER_MAIL_ID)")
	}
	if c.SenderAppCode == "" {
		return fmt.Errorf("sender app code is required (set SENDER_APP_CODE)")
	}
	if c.ReceiverMailID == "" {
		return fmt.Errorf("receiver mail id is required (set RECEIVER_MAIL_ID)")
	}

	return nil
}

// EnvString reads a non-empty environment variable.
func EnvString(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", false
	}
	return value, true
}
