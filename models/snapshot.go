package models

// Snapshot is everything collected in one run, stamped with the run's
// calendar date (MM/DD/YY).
type Snapshot struct {
	Date       string
	Properties []*Property
}

// NewSnapshot creates an empty snapshot for date.
func NewSnapshot(date string) *Snapshot {
	return &Snapshot{Date: date}
}

// Add stores p. A property whose name was already collected is replaced in
// place, so two URLs for the same building yield a single entry.
func (s *Snapshot) Add(p *Property) {
	for i, existing := range s.Properties {
		if existing.Name == p.Name {
			s.Properties[i] = p
			return
		}
	}
	s.Properties = append(s.Properties, p)
}

// HistoryRows flattens the snapshot into history rows, skipping properties
// with no priced floorplans.
func (s *Snapshot) HistoryRows() []HistoryRow {
	var rows []HistoryRow
	for _, p := range s.Properties {
		if p.Empty() {
			continue
		}
		for _, l := range p.Ordered() {
			rows = append(rows, HistoryRow{
				Date:      s.Date,
				Property:  p.Name,
				Floorplan: l.Floorplan,
				Rent:      l.Rent,
				BedBath:   l.BedBath,
				SqFt:      l.SqFt,
			})
		}
	}
	return rows
}

// HistoryRow is one line of the append-only price history.
type HistoryRow struct {
	Date      string
	Property  string
	Floorplan string
	Rent      string
	BedBath   string
	SqFt      string
}

// Record returns the row as CSV fields.
func (r HistoryRow) Record() []string {
	return []string{r.Date, r.Property, r.Floorplan, r.Rent, r.BedBath, r.SqFt}
}

// HistoryRowFromRecord builds a row from CSV fields. Missing trailing
// fields are left empty.
func HistoryRowFromRecord(rec []string) HistoryRow {
	get := func(i int) string {
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}
	return HistoryRow{
		Date:      get(0),
		Property:  get(1),
		Floorplan: get(2),
		Rent:      get(3),
		BedBath:   get(4),
		SqFt:      get(5),
	}
}
