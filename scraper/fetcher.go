package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher returns the raw HTML of a property page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher issues a plain GET per page.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates an HTTPFetcher. An empty userAgent keeps the
// client's default header.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	client := resty.New().SetTimeout(timeout)
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, res.Status())
	}
	return res.Body(), nil
}
