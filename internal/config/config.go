package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIVersion is the Graph API version requests are issued against
	DefaultAPIVersion = "v24.0"
	// DefaultTimeout bounds a single outbound Graph API call
	DefaultTimeout = 30 * time.Second

	graphHost = "https://graph.facebook.com"
)

// Config holds the immutable process-wide configuration. It is built once at
// startup and passed into the Graph client and the tool handlers; handler
// logic never reads the environment directly.
type Config struct {
	AccessToken   string
	WABAID        string
	PhoneNumberID string
	APIVersion    string
	GraphHost     string // override for proxies and tests; empty means the real API
	Timeout       time.Duration
}

// fileConfig is the optional config.yaml shape for non-secret overrides
type fileConfig struct {
	WhatsApp struct {
		APIVersion string `yaml:"api_version"`
		Timeout    string `yaml:"timeout"`
	} `yaml:"whatsapp"`
}

// Load builds the Config from the environment plus an optional config.yaml.
// The access token and business account ID are required; their absence is a
// startup-fatal condition for callers.
func Load() (Config, error) {
	cfg := Config{
		AccessToken:   os.Getenv("META_ACCESS_TOKEN"),
		WABAID:        os.Getenv("META_WABA_ID"),
		PhoneNumberID: os.Getenv("META_PHONE_NUMBER_ID"),
		GraphHost:     os.Getenv("META_GRAPH_HOST"),
		APIVersion:    DefaultAPIVersion,
		Timeout:       DefaultTimeout,
	}

	if cfg.AccessToken == "" {
		return Config{}, fmt.Errorf("META_ACCESS_TOKEN environment variable not set")
	}
	if cfg.WABAID == "" {
		return Config{}, fmt.Errorf("META_WABA_ID environment variable not set")
	}

	applyFileOverrides(&cfg)

	return cfg, nil
}

func applyFileOverrides(cfg *Config) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return
	}

	if fc.WhatsApp.APIVersion != "" {
		cfg.APIVersion = fc.WhatsApp.APIVersion
	}
	if fc.WhatsApp.Timeout != "" {
		if d, err := time.ParseDuration(fc.WhatsApp.Timeout); err == nil {
			cfg.Timeout = d
		}
	}
}

// BaseURL returns the versioned Graph API endpoint
func (c Config) BaseURL() string {
	host := c.GraphHost
	if host == "" {
		host = graphHost
	}
	return fmt.Sprintf("%s/%s", host, c.APIVersion)
}
