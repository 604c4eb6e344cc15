package scraper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"apartment-prices/utils"
)

// BrowserFetcher loads pages in headless Chrome and returns the rendered
// document. apartments.com answers plain HTTP clients with a bot wall, so
// this is the mode that works against the live site.
type BrowserFetcher struct {
	logger     *utils.Logger
	settle     time.Duration
	timeout    time.Duration
	browserCtx context.Context
	cancelers  []context.CancelFunc
}

// NewBrowserFetcher launches headless Chrome. Close must be called to shut it down.
func NewBrowserFetcher(chromeBin, userAgent string, timeout time.Duration, logger *utils.Logger) (*BrowserFetcher, error) {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Debug("[browser] Using browser binary: %q", chromeBin)

	if userAgent == "" {
		userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// One browser for the whole run; each Fetch opens a tab in it.
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("browser: start chrome: %w", err)
	}

	return &BrowserFetcher{
		logger:     logger,
		settle:     3 * time.Second,
		timeout:    timeout,
		browserCtx: browserCtx,
		cancelers:  []context.CancelFunc{cancelBrowser, cancelAlloc},
	}, nil
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, f.timeout)
	defer cancelTimeout()

	// Stop the tab if the caller gives up.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(f.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: chromedp: %w", url, err)
	}

	f.logger.Debug("[browser] %s rendered %d bytes", url, len(html))
	return []byte(html), nil
}

// Close shuts the browser down.
func (f *BrowserFetcher) Close() error {
	for _, cancel := range f.cancelers {
		cancel()
	}
	return nil
}

// findChromeBinary locates a Chrome/Chromium binary. An empty result lets
// chromedp use its own search.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium-browser",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
