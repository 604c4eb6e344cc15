package storage

import (
	"context"

	"apartment-prices/models"
)

// HistoryStore is the interface any price history backend must satisfy.
// Rows are only ever appended and read back in order.
type HistoryStore interface {
	// LastDate returns the date of the most recently appended row. ok is
	// false when the store holds no usable rows.
	LastDate(ctx context.Context) (date string, ok bool, err error)
	Append(ctx context.Context, rows []models.HistoryRow) error
	Rows(ctx context.Context) ([]models.HistoryRow, error)
	Close() error
}

// Locker is implemented by stores that can hold an exclusive lock across a
// LastDate/Append pair.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}
