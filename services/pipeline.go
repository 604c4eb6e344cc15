package services

import (
	"context"
	"time"

	"apartment-prices/models"
	"apartment-prices/utils"
)

// DateLayout is the history file's date format (MM/DD/YY).
const DateLayout = "01/02/06"

// PageScraper fetches and extracts one property page.
type PageScraper interface {
	Scrape(ctx context.Context, url string) (*models.Page, error)
}

// Pipeline runs one pass over the configured properties: scrape each page in
// turn, fold its rows, then print the summary and record it.
type Pipeline struct {
	scraper    PageScraper
	normalizer *Normalizer
	reporter   *Reporter
	recorder   *Recorder
	logger     *utils.Logger

	Now func() time.Time
}

// NewPipeline wires the run's components together.
func NewPipeline(scraper PageScraper, normalizer *Normalizer, reporter *Reporter, recorder *Recorder, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		scraper:    scraper,
		normalizer: normalizer,
		reporter:   reporter,
		recorder:   recorder,
		logger:     logger,
		Now:        time.Now,
	}
}

// Run scrapes urls in order and returns the collected snapshot. Any error
// aborts the run before anything is printed or recorded.
func (p *Pipeline) Run(ctx context.Context, urls []string) (*models.Snapshot, error) {
	snap := models.NewSnapshot(p.Now().Format(DateLayout))
	p.reporter.Begin()

	for _, url := range urls {
		p.logger.Debug("[pipeline] Scraping %s", url)
		page, err := p.scraper.Scrape(ctx, url)
		if err != nil {
			return nil, err
		}
		p.reporter.Obtaining(page.Name)

		prop, err := p.normalizer.Fold(page)
		if err != nil {
			return nil, err
		}
		snap.Add(prop)
	}

	p.reporter.Summary(snap)

	p.reporter.RecordingStart()
	res, err := p.recorder.Record(ctx, snap)
	if err != nil {
		return nil, err
	}
	if res.Skipped {
		p.reporter.AlreadyRecorded()
	}
	p.reporter.RecordingDone()

	return snap, nil
}
