package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"apartment-prices/utils"
)

// mockServer serves body with the given status code.
func mockServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

func TestHTTPFetcher(t *testing.T) {
	server := mockServer(http.StatusOK, "<html>hi</html>")
	defer server.Close()

	f := NewHTTPFetcher(5*time.Second, "test-agent")
	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != "<html>hi</html>" {
		t.Errorf("body: got %q", body)
	}
}

func TestHTTPFetcherSendsUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.UserAgent()
	}))
	defer server.Close()

	if _, err := NewHTTPFetcher(5*time.Second, "price-check/1.0").Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != "price-check/1.0" {
		t.Errorf("User-Agent: got %q", got)
	}
}

func TestHTTPFetcherStatusError(t *testing.T) {
	server := mockServer(http.StatusForbidden, "blocked")
	defer server.Close()

	_, err := NewHTTPFetcher(5*time.Second, "").Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestScrapeEndToEnd(t *testing.T) {
	html := pageHTML("Broadstone Roosevelt Row",
		rowHTML(sampleFields("Studio", "1 Bath", "$1,050", "550 sq ft", "S1"), "  "),
	)
	server := mockServer(http.StatusOK, html)
	defer server.Close()

	th := utils.NewThrottle(1, 1, time.Millisecond)
	s := New(NewHTTPFetcher(5*time.Second, ""), NewExtractor(ApartmentsCom()), th, 1, utils.Discard())

	page, err := s.Scrape(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if page.URL != server.URL || page.Name != "Broadstone Roosevelt Row" {
		t.Errorf("page: %+v", page)
	}
	if len(page.Rows) != 1 || page.Rows[0].Floorplan != "S1" {
		t.Errorf("rows: %+v", page.Rows)
	}
}

type flakyFetcher struct {
	fails int
	calls int
	body  []byte
}

func (f *flakyFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	if f.calls <= f.fails {
		return nil, fmt.Errorf("attempt %d failed", f.calls)
	}
	return f.body, nil
}

func TestScrapeNoRetryByDefault(t *testing.T) {
	f := &flakyFetcher{fails: 1, body: []byte(pageHTML("P"))}
	s := New(f, NewExtractor(ApartmentsCom()), nil, 1, utils.Discard())

	if _, err := s.Scrape(context.Background(), "u"); err == nil {
		t.Fatal("expected the first failure to abort")
	}
	if f.calls != 1 {
		t.Errorf("calls: got %d, want 1", f.calls)
	}
}
