package scraper

import (
	"context"
	"io"
)

// defaultScraper sends DefaultUserAgent with a 30s timeout.
var defaultScraper Scraper = NewHTTPScraper(nil)

// SetDefault replaces the scraper used by the package level helpers and by
// search clients created without an explicit scraper, and returns the one it
// replaced. A nil scraper restores a fresh HTTPScraper.
func SetDefault(scraper Scraper) Scraper {
	if scraper == nil {
		scraper = NewHTTPScraper(nil)
	}

	previous := defaultScraper
	defaultScraper = scraper

	return previous
}

func DefaultScraper() Scraper {
	return defaultScraper
}

func Check(ctx context.Context, url string) (bool, error) {
	return defaultScraper.Check(ctx, url)
}

func Get(ctx context.Context, url string) (io.ReadCloser, error) {
	return defaultScraper.Get(ctx, url)
}
