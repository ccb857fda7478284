package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validEnvironments = map[string]bool{
	"unrestricted": true, "sandboxed": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Stash.URL == "" {
		errs = append(errs, "stash.url: required")
	} else if u, err := url.Parse(c.Stash.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("stash.url: not a valid URL: %q", c.Stash.URL))
	}

	if !validEnvironments[c.Scrape.Environment] {
		errs = append(errs, fmt.Sprintf("scrape.environment: must be unrestricted or sandboxed; got %q", c.Scrape.Environment))
	}
	if c.Scrape.Timeout < 0 {
		errs = append(errs, "scrape.timeout: must not be negative")
	}

	if c.Import.LocateRetries < 0 {
		errs = append(errs, "import.locate_retries: must not be negative")
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}
