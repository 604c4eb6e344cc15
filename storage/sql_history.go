package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"apartment-prices/models"
)

// Supported HISTORY_DB_DRIVER values.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var schemas = map[string]string{
	DriverPostgres: `
		CREATE TABLE IF NOT EXISTS apartment_prices (
			id          BIGSERIAL PRIMARY KEY,
			recorded_on TEXT        NOT NULL,
			property    TEXT        NOT NULL,
			floorplan   TEXT        NOT NULL,
			rent        TEXT        NOT NULL,
			bed_bath    TEXT        NOT NULL,
			sqft        TEXT        NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_apartment_prices_property ON apartment_prices(property);
	`,
	DriverSQLite: `
		CREATE TABLE IF NOT EXISTS apartment_prices (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			recorded_on TEXT NOT NULL,
			property    TEXT NOT NULL,
			floorplan   TEXT NOT NULL,
			rent        TEXT NOT NULL,
			bed_bath    TEXT NOT NULL,
			sqft        TEXT NOT NULL,
			created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_apartment_prices_property ON apartment_prices(property);
	`,
}

var insertValues = map[string]string{
	DriverPostgres: "($1, $2, $3, $4, $5, $6)",
	DriverSQLite:   "(?, ?, ?, ?, ?, ?)",
}

// SQLHistory mirrors the price history into a database table. Row order is
// insertion order (the id column).
type SQLHistory struct {
	db     *sql.DB
	driver string
}

// NewSQLHistory opens the database, waits for it to answer and creates the
// table if needed.
func NewSQLHistory(ctx context.Context, driver, dsn string) (*SQLHistory, error) {
	ddl, ok := schemas[driver]
	if !ok {
		return nil, fmt.Errorf("sql history: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	for i := 0; i < 5; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: ping failed after retries: %w", driver, err)
	}

	h := &SQLHistory{db: db, driver: driver}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: migrate: %w", driver, err)
	}
	return h, nil
}

func (h *SQLHistory) LastDate(ctx context.Context) (string, bool, error) {
	var date string
	err := h.db.QueryRowContext(ctx,
		`SELECT recorded_on FROM apartment_prices ORDER BY id DESC LIMIT 1`).Scan(&date)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: last date: %w", h.driver, err)
	}
	return date, true, nil
}

// Append inserts rows in one transaction.
func (h *SQLHistory) Append(ctx context.Context, rows []models.HistoryRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", h.driver, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO apartment_prices (recorded_on, property, floorplan, rent, bed_bath, sqft) VALUES "+
			insertValues[h.driver])
	if err != nil {
		return fmt.Errorf("%s: prepare insert: %w", h.driver, err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Date, r.Property, r.Floorplan, r.Rent, r.BedBath, r.SqFt); err != nil {
			return fmt.Errorf("%s: insert row: %w", h.driver, err)
		}
	}
	return tx.Commit()
}

func (h *SQLHistory) Rows(ctx context.Context) ([]models.HistoryRow, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT recorded_on, property, floorplan, rent, bed_bath, sqft
		FROM apartment_prices
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch all: %w", h.driver, err)
	}
	defer rows.Close()

	var out []models.HistoryRow
	for rows.Next() {
		var r models.HistoryRow
		if err := rows.Scan(&r.Date, &r.Property, &r.Floorplan, &r.Rent, &r.BedBath, &r.SqFt); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", h.driver, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (h *SQLHistory) Close() error {
	return h.db.Close()
}
