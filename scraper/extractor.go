package scraper

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"apartment-prices/models"
)

// Extractor turns a property page into its name and raw availability rows.
type Extractor struct {
	schema *Schema
}

// NewExtractor creates an Extractor for the given vendor schema.
func NewExtractor(schema *Schema) *Extractor {
	return &Extractor{schema: schema}
}

// Extract parses page HTML. A page without the property name heading is an
// error; a page without availability rows is not.
func (e *Extractor) Extract(url string, html []byte) (*models.Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("extract %s: parse html: %w", url, err)
	}

	heading := doc.Find(e.schema.NameSelector).First()
	if heading.Length() == 0 {
		return nil, fmt.Errorf("extract %s: no %q element on page", url, e.schema.NameSelector)
	}

	page := &models.Page{
		URL:  url,
		Name: strings.TrimSpace(heading.Text()),
	}

	var rowErr error
	doc.Find(e.schema.RowSelector).EachWithBreak(func(i int, row *goquery.Selection) bool {
		fields := e.schema.Split(strings.TrimSpace(row.Text()))
		raw, err := e.schema.Pick(fields)
		if err != nil {
			rowErr = fmt.Errorf("extract %s: row %d: %w", url, i, err)
			return false
		}
		page.Rows = append(page.Rows, raw)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return page, nil
}
