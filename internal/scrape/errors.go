package scrape

import "errors"

var (
	// ErrNoSignal indicates a strategy found nothing usable at the URL.
	ErrNoSignal = errors.New("no usable metadata found")

	// ErrInvalidURL indicates the URL could not be parsed at all.
	ErrInvalidURL = errors.New("invalid url")

	// ErrUnknownScraper indicates a forced-scraper request named a
	// strategy that is not registered.
	ErrUnknownScraper = errors.New("unknown scraper")

	// ErrDeadline indicates the registry's overall deadline elapsed
	// before any strategy produced a result.
	ErrDeadline = errors.New("scrape deadline exceeded")
)
