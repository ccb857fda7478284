package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Stash:  StashConfig{URL: "http://localhost:9999"},
		Scrape: ScrapeConfig{Environment: "unrestricted"},
		Log:    LogConfig{Level: "info"},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.Empty(t, validConfig().Validate())
}

func TestValidate_MissingStashURL(t *testing.T) {
	cfg := validConfig()
	cfg.Stash.URL = ""

	errs := cfg.Validate()
	assert.Contains(t, errs, "stash.url: required")
}

func TestValidate_BadStashURL(t *testing.T) {
	cfg := validConfig()
	cfg.Stash.URL = "not a url"

	assert.NotEmpty(t, cfg.Validate())
}

func TestValidate_BadEnvironment(t *testing.T) {
	cfg := validConfig()
	cfg.Scrape.Environment = "container"

	assert.NotEmpty(t, cfg.Validate())
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "verbose"

	assert.NotEmpty(t, cfg.Validate())
}

func TestValidate_NegativeRetries(t *testing.T) {
	cfg := validConfig()
	cfg.Import.LocateRetries = -1

	assert.NotEmpty(t, cfg.Validate())
}
