package scraper

import (
	"context"
	"fmt"
	"time"

	"apartment-prices/models"
	"apartment-prices/utils"
)

// Scraper fetches and extracts one property page at a time, pausing after
// every fetch.
type Scraper struct {
	fetcher   Fetcher
	extractor *Extractor
	throttle  *utils.Throttle
	retry     *utils.RetryConfig
	logger    *utils.Logger
}

// New creates a Scraper. A nil throttle disables the pause between pages.
func New(fetcher Fetcher, extractor *Extractor, throttle *utils.Throttle, maxRetries int, logger *utils.Logger) *Scraper {
	return &Scraper{
		fetcher:   fetcher,
		extractor: extractor,
		throttle:  throttle,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		logger: logger,
	}
}

// Scrape loads url and returns its name and availability rows.
func (s *Scraper) Scrape(ctx context.Context, url string) (*models.Page, error) {
	var html []byte
	err := s.retry.Do(ctx, "fetch "+url, func() error {
		var err error
		html, err = s.fetcher.Fetch(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("[scraper] Fetched %s (%d bytes)", url, len(html))

	page, err := s.extractor.Extract(url, html)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("[scraper] %s: %d availability rows", page.Name, len(page.Rows))

	if s.throttle != nil {
		d, err := s.throttle.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("scraper: throttle: %w", err)
		}
		s.logger.Debug("[scraper] Waited %v before next property", d)
	}

	return page, nil
}
