package services

import (
	"testing"

	"apartment-prices/models"
	"apartment-prices/utils"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer("Call for Rent", utils.Discard())
}

func TestNormalizeFormatting(t *testing.T) {
	n := newTestNormalizer()
	key, l, err := n.Normalize("Cityscape", models.RawRow{
		Beds: "2 Bed", Baths: "2 Bath", Rent: "$1,234 /mo", SqFt: "1,050 sq ft", Floorplan: "B2",
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if key != "Cityscape B2" {
		t.Errorf("key: got %q, want %q", key, "Cityscape B2")
	}
	if l.Rent != "$1234" {
		t.Errorf("Rent: got %q, want %q", l.Rent, "$1234")
	}
	if l.SqFt != "1050 SqFt" {
		t.Errorf("SqFt: got %q, want %q", l.SqFt, "1050 SqFt")
	}
	if l.BedBath != "2 BR / 2 BA" {
		t.Errorf("BedBath: got %q, want %q", l.BedBath, "2 BR / 2 BA")
	}
}

func TestNormalizeFloorplanCommas(t *testing.T) {
	n := newTestNormalizer()
	key, l, err := n.Normalize("P", models.RawRow{
		Beds: "1", Baths: "1", Rent: "$900", SqFt: "600", Floorplan: "Loft, Corner",
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if key != "P Loft, Corner" {
		t.Errorf("key keeps the raw label: got %q", key)
	}
	if l.Floorplan != "Loft Corner" {
		t.Errorf("Floorplan: got %q, want %q", l.Floorplan, "Loft Corner")
	}
}

func TestFormatRent(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"$1,234 /mo", "$1234"},
		{"$999", "$999"},
		{"€2,000", "$2000"},
		{"$1,050 - $1,300", "$1050"},
	}
	for _, tt := range tests {
		got, err := formatRent(tt.raw)
		if err != nil {
			t.Errorf("formatRent(%q) error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("formatRent(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeCallForRent(t *testing.T) {
	n := newTestNormalizer()
	_, l, err := n.Normalize("P", models.RawRow{
		Beds: "1 Bed", Baths: "1 Bath", Rent: "Call for Rent", SqFt: "700 sq ft", Floorplan: "A1",
	})
	if err != nil || l != nil {
		t.Errorf("Normalize(call for rent) = %+v, %v; want nil, nil", l, err)
	}
}

func TestNormalizeEmptyField(t *testing.T) {
	n := newTestNormalizer()
	_, _, err := n.Normalize("P", models.RawRow{Beds: " ", Baths: "1", Rent: "$1", SqFt: "1", Floorplan: "A"})
	if err == nil {
		t.Error("expected error for empty beds field")
	}
}

func TestMergeComparesRentStrings(t *testing.T) {
	p := models.NewProperty("u", "P")
	Merge(p, "P A1", &models.Listing{Floorplan: "A1", Rent: "$1500"})
	Merge(p, "P A1", &models.Listing{Floorplan: "A1", Rent: "$999"})

	if got := p.Listings["P A1"].Rent; got != "$1500" {
		t.Errorf("after merging $999 into $1500: got %q, want %q", got, "$1500")
	}

	Merge(p, "P A1", &models.Listing{Floorplan: "A1", Rent: "$1400"})
	if got := p.Listings["P A1"].Rent; got != "$1400" {
		t.Errorf("after merging $1400: got %q, want %q", got, "$1400")
	}
	if len(p.Keys) != 1 {
		t.Errorf("Keys: got %v, want a single key", p.Keys)
	}
}

func TestFoldKeepsFirstSeenOrder(t *testing.T) {
	n := newTestNormalizer()
	page := &models.Page{URL: "u", Name: "P", Rows: []models.RawRow{
		{Beds: "2", Baths: "2", Rent: "$2,000", SqFt: "1,000", Floorplan: "B"},
		{Beds: "1", Baths: "1", Rent: "$1,200", SqFt: "700", Floorplan: "A"},
		{Beds: "2", Baths: "2", Rent: "$1,900", SqFt: "1,000", Floorplan: "B"},
		{Beds: "3", Baths: "2", Rent: "Call for Rent", SqFt: "1,400", Floorplan: "C"},
	}}

	prop, err := n.Fold(page)
	if err != nil {
		t.Fatalf("Fold: %v", err)
	}
	got := prop.Ordered()
	if len(got) != 2 {
		t.Fatalf("Ordered: got %d listings, want 2", len(got))
	}
	if got[0].Floorplan != "B" || got[0].Rent != "$1900" {
		t.Errorf("first: %+v", got[0])
	}
	if got[1].Floorplan != "A" {
		t.Errorf("second: %+v", got[1])
	}
}

func TestFoldAllCallForRent(t *testing.T) {
	n := newTestNormalizer()
	page := &models.Page{Name: "P", Rows: []models.RawRow{
		{Beds: "1", Baths: "1", Rent: "Call for Rent", SqFt: "700", Floorplan: "A"},
	}}
	prop, err := n.Fold(page)
	if err != nil {
		t.Fatalf("Fold: %v", err)
	}
	if !prop.Empty() {
		t.Errorf("expected no listings, got %v", prop.Listings)
	}
}
