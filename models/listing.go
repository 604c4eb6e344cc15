package models

// Page holds what the extractor pulled out of one property page before any
// normalization: the scraped display name and one RawRow per availability row.
type Page struct {
	URL  string
	Name string
	Rows []RawRow
}

// RawRow is an availability row with its fields picked out of the split row
// text but otherwise untouched, e.g. Rent "$1,234 /mo".
type RawRow struct {
	Beds      string
	Baths     string
	Rent      string
	SqFt      string
	Floorplan string
}

// Listing is the normalized best-known price for one floorplan.
type Listing struct {
	Floorplan string
	Rent      string
	BedBath   string
	SqFt      string
}

// Fields returns the listing in report/history column order.
func (l *Listing) Fields() []string {
	return []string{l.Floorplan, l.Rent, l.BedBath, l.SqFt}
}

// Property is one scraped property and its floorplans, keyed by
// "<property name> <floorplan label>". Keys keeps insertion order.
type Property struct {
	URL      string
	Name     string
	Listings map[string]*Listing
	Keys     []string
}

// NewProperty creates an empty Property.
func NewProperty(url, name string) *Property {
	return &Property{
		URL:      url,
		Name:     name,
		Listings: make(map[string]*Listing),
	}
}

// Put stores l under key, keeping the original position if the key exists.
func (p *Property) Put(key string, l *Listing) {
	if _, ok := p.Listings[key]; !ok {
		p.Keys = append(p.Keys, key)
	}
	p.Listings[key] = l
}

// Ordered returns the listings in the order their floorplans were first seen.
func (p *Property) Ordered() []*Listing {
	out := make([]*Listing, 0, len(p.Keys))
	for _, k := range p.Keys {
		out = append(out, p.Listings[k])
	}
	return out
}

// Empty reports whether no priced floorplan was retained.
func (p *Property) Empty() bool {
	return len(p.Listings) == 0
}
