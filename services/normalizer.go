package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"apartment-prices/models"
	"apartment-prices/utils"
)

// Normalizer turns raw availability rows into listings and folds them into
// one entry per floorplan.
type Normalizer struct {
	callForRent string
	logger      *utils.Logger
}

// NewNormalizer creates a Normalizer. Rows whose rent equals callForRent
// carry no price and are skipped.
func NewNormalizer(callForRent string, logger *utils.Logger) *Normalizer {
	return &Normalizer{callForRent: callForRent, logger: logger}
}

// Fold normalizes every row on page and keeps the lowest rent per floorplan.
func (n *Normalizer) Fold(page *models.Page) (*models.Property, error) {
	prop := models.NewProperty(page.URL, page.Name)
	for i, raw := range page.Rows {
		key, listing, err := n.Normalize(page.Name, raw)
		if err != nil {
			return nil, fmt.Errorf("normalize %s row %d: %w", page.Name, i, err)
		}
		if listing == nil {
			n.logger.Debug("[normalizer] %s: skipping %q (%s)", page.Name, raw.Floorplan, raw.Rent)
			continue
		}
		Merge(prop, key, listing)
	}
	return prop, nil
}

// Normalize formats one row. It returns a nil listing for call-for-rent rows.
// The key is "<property name> <floorplan label>".
func (n *Normalizer) Normalize(propertyName string, raw models.RawRow) (string, *models.Listing, error) {
	if raw.Rent == n.callForRent {
		return "", nil, nil
	}

	rent, err := formatRent(raw.Rent)
	if err != nil {
		return "", nil, err
	}
	beds, err := firstToken("beds", raw.Beds)
	if err != nil {
		return "", nil, err
	}
	baths, err := firstToken("baths", raw.Baths)
	if err != nil {
		return "", nil, err
	}
	sqft, err := firstToken("sqft", raw.SqFt)
	if err != nil {
		return "", nil, err
	}

	listing := &models.Listing{
		Floorplan: strings.ReplaceAll(raw.Floorplan, ",", ""),
		Rent:      rent,
		BedBath:   beds + " BR / " + baths + " BA",
		SqFt:      strings.ReplaceAll(sqft, ",", "") + " SqFt",
	}
	return propertyName + " " + raw.Floorplan, listing, nil
}

// Merge stores l under key unless the existing listing's rent is lower.
// Rents are compared as formatted strings, so "$1500" beats "$999".
func Merge(p *models.Property, key string, l *models.Listing) {
	if cur, ok := p.Listings[key]; ok && !(l.Rent < cur.Rent) {
		return
	}
	p.Put(key, l)
}

// formatRent drops the currency symbol and thousands separators from the
// first token: "$1,234 /mo" becomes "$1234".
func formatRent(raw string) (string, error) {
	tok, err := firstToken("rent", raw)
	if err != nil {
		return "", err
	}
	_, size := utf8.DecodeRuneInString(tok)
	return "$" + strings.ReplaceAll(tok[size:], ",", ""), nil
}

func firstToken(field, raw string) (string, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", fmt.Errorf("%s field is empty", field)
	}
	return fields[0], nil
}
