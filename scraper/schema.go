package scraper

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"apartment-prices/models"
)

// Schema describes where a listing vendor puts things on a property page:
// which elements hold the name and the availability rows, how a row's text
// splits into fields, and which split position each field lands in.
type Schema struct {
	Vendor       string   `yaml:"vendor"`
	NameSelector string   `yaml:"name_selector"`
	RowSelector  string   `yaml:"row_selector"`
	SplitPattern string   `yaml:"split_pattern"`
	CallForRent  string   `yaml:"call_for_rent"`
	MinFields    int      `yaml:"min_fields"`
	Fields       FieldMap `yaml:"fields"`

	splitter *regexp.Regexp
}

// FieldMap is the position of each field in a split row.
type FieldMap struct {
	Beds      int `yaml:"beds"`
	Baths     int `yaml:"baths"`
	Rent      int `yaml:"rent"`
	SqFt      int `yaml:"sqft"`
	Floorplan int `yaml:"floorplan"`
}

func (f FieldMap) max() int {
	m := f.Beds
	for _, v := range []int{f.Baths, f.Rent, f.SqFt, f.Floorplan} {
		if v > m {
			m = v
		}
	}
	return m
}

// ApartmentsCom is the layout of apartments.com property pages. After
// splitting, positions 0, 1, 3, 4, 7, 10 and 11 hold duplicated or unused
// vendor text, so a well-formed row has at least 12 fields. Field
// separators may be &nbsp; runs, hence \p{Z} and NEL next to \s.
func ApartmentsCom() *Schema {
	s := &Schema{
		Vendor:       "apartments.com",
		NameSelector: "h1.propertyName",
		RowSelector:  ".rentalGridRow",
		SplitPattern: `\n[0-9]*\n|[\s\p{Z}\x{0085}]{2,}`,
		CallForRent:  "Call for Rent",
		MinFields:    12,
		Fields: FieldMap{
			Beds:      2,
			Baths:     5,
			Rent:      6,
			SqFt:      8,
			Floorplan: 9,
		},
	}
	if err := s.compile(); err != nil {
		panic(err)
	}
	return s
}

// LoadSchema reads a YAML schema file. Keys left out of the file keep the
// apartments.com value.
func LoadSchema(path string) (*Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %q: %w", path, err)
	}
	return ParseSchema(b)
}

// ParseSchema decodes a YAML schema on top of the apartments.com defaults.
func ParseSchema(b []byte) (*Schema, error) {
	s := ApartmentsCom()
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) compile() error {
	if s.NameSelector == "" {
		return fmt.Errorf("schema %s: name_selector is required", s.Vendor)
	}
	if s.RowSelector == "" {
		return fmt.Errorf("schema %s: row_selector is required", s.Vendor)
	}
	if s.MinFields < 0 {
		return fmt.Errorf("schema %s: min_fields must not be negative", s.Vendor)
	}
	f := s.Fields
	for name, pos := range map[string]int{
		"beds": f.Beds, "baths": f.Baths, "rent": f.Rent, "sqft": f.SqFt, "floorplan": f.Floorplan,
	} {
		if pos < 0 {
			return fmt.Errorf("schema %s: field %s has negative position %d", s.Vendor, name, pos)
		}
	}
	re, err := regexp.Compile(s.SplitPattern)
	if err != nil {
		return fmt.Errorf("schema %s: split_pattern: %w", s.Vendor, err)
	}
	s.splitter = re
	return nil
}

// Split breaks a row's visible text into fields.
func (s *Schema) Split(text string) []string {
	return s.splitter.Split(text, -1)
}

// Pick maps split fields onto a RawRow. Rows shorter than MinFields, or too
// short to hold every mapped position, are rejected.
func (s *Schema) Pick(fields []string) (models.RawRow, error) {
	need := s.Fields.max() + 1
	if s.MinFields > need {
		need = s.MinFields
	}
	if len(fields) < need {
		return models.RawRow{}, fmt.Errorf("schema %s: row has %d fields, need %d: %q",
			s.Vendor, len(fields), need, fields)
	}
	return models.RawRow{
		Beds:      fields[s.Fields.Beds],
		Baths:     fields[s.Fields.Baths],
		Rent:      fields[s.Fields.Rent],
		SqFt:      fields[s.Fields.SqFt],
		Floorplan: fields[s.Fields.Floorplan],
	}, nil
}
