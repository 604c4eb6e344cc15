package services

import (
	"fmt"
	"io"
	"strings"

	"apartment-prices/models"
)

// Separator divides the scrape summary from the data file section.
var Separator = strings.Repeat("-", 60)

// Reporter prints run progress and the per-property price summary.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

func (r *Reporter) Begin() {
	fmt.Fprint(r.out, "Beginning apartment price search...\n\n")
}

func (r *Reporter) Obtaining(name string) {
	fmt.Fprintf(r.out, "Obtaining prices for: %s\n", name)
}

// Summary prints each property followed by one line per retained floorplan:
// "date, floorplan, rent, bed/bath, sqft".
func (r *Reporter) Summary(s *models.Snapshot) {
	fmt.Fprintln(r.out)
	for _, p := range s.Properties {
		if p.Empty() {
			fmt.Fprintf(r.out, "No pricing available at %s\n", p.Name)
		} else {
			fmt.Fprintln(r.out, p.Name)
		}
		for _, l := range p.Ordered() {
			fmt.Fprintf(r.out, "%s, %s\n", s.Date, strings.Join(l.Fields(), ", "))
		}
		fmt.Fprintln(r.out)
	}
	r.separator()
}

func (r *Reporter) RecordingStart() {
	fmt.Fprint(r.out, "Preparing to update data file with today's pricing\n\n")
}

func (r *Reporter) AlreadyRecorded() {
	fmt.Fprintln(r.out, "Data already entered for today, skipping update of data file")
}

func (r *Reporter) RecordingDone() {
	fmt.Fprintln(r.out)
	r.separator()
}

func (r *Reporter) separator() {
	fmt.Fprintf(r.out, "%s\n\n", Separator)
}
