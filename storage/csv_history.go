package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"apartment-prices/models"
)

// CSVHistory is the append-only history file: no header, one row per
// floorplan per day, "date,property,floorplan,rent,bed/bath,sqft".
type CSVHistory struct {
	path string
	lock *flock.Flock
}

// NewCSVHistory creates a CSVHistory for path. The file itself is created on
// first append. Intermediate directories are created automatically.
func NewCSVHistory(path string) (*CSVHistory, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("csv: create history dir: %w", err)
		}
	}
	return &CSVHistory{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

// Path returns the history file location.
func (c *CSVHistory) Path() string {
	return c.path
}

// Lock takes an exclusive advisory lock on the history file's lock file.
func (c *CSVHistory) Lock(ctx context.Context) (func(), error) {
	ok, err := c.lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("csv: lock %q: %w", c.path, err)
	}
	if !ok {
		return nil, fmt.Errorf("csv: lock %q: not acquired", c.path)
	}
	return func() { _ = c.lock.Unlock() }, nil
}

// LastDate reads the first field of the last row. A missing, empty or
// unparseable file counts as no prior data.
func (c *CSVHistory) LastDate(ctx context.Context) (string, bool, error) {
	f, err := os.Open(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("csv: open %q: %w", c.path, err)
	}
	defer f.Close()

	r := newReader(f)
	var last []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", false, nil
		}
		last = rec
	}
	if len(last) == 0 {
		return "", false, nil
	}
	return last[0], true, nil
}

// Append writes rows to the end of the file, creating it if needed.
func (c *CSVHistory) Append(ctx context.Context, rows []models.HistoryRow) error {
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("csv: open %q for append: %w", c.path, err)
	}

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write(row.Record()); err != nil {
			_ = f.Close()
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return f.Close()
}

// Rows replays the whole file in order.
func (c *CSVHistory) Rows(ctx context.Context) ([]models.HistoryRow, error) {
	f, err := os.Open(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", c.path, err)
	}
	defer f.Close()

	recs, err := newReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", c.path, err)
	}
	rows := make([]models.HistoryRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, models.HistoryRowFromRecord(rec))
	}
	return rows, nil
}

// Close releases the lock file handle.
func (c *CSVHistory) Close() error {
	return c.lock.Close()
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr
}
