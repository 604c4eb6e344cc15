package services

import (
	"context"
	"fmt"

	"apartment-prices/models"
	"apartment-prices/storage"
	"apartment-prices/utils"
)

// RecordResult says what the recorder did with a snapshot.
type RecordResult struct {
	Appended int
	Skipped  bool
}

// Recorder appends a snapshot to the price history at most once per
// calendar day. The primary store decides whether today is already
// recorded; mirrors are gated on their own last date.
type Recorder struct {
	primary storage.HistoryStore
	mirrors []storage.HistoryStore
	logger  *utils.Logger
}

// NewRecorder creates a Recorder for primary and any mirror stores.
func NewRecorder(logger *utils.Logger, primary storage.HistoryStore, mirrors ...storage.HistoryStore) *Recorder {
	return &Recorder{primary: primary, mirrors: mirrors, logger: logger}
}

// Record appends the snapshot's rows unless the primary store's last row
// is already dated today.
func (r *Recorder) Record(ctx context.Context, snap *models.Snapshot) (RecordResult, error) {
	res, err := appendOnce(ctx, r.primary, snap)
	if err != nil {
		return res, err
	}
	if res.Skipped {
		r.logger.Debug("[recorder] %s already recorded in primary history", snap.Date)
	} else {
		r.logger.Info("[recorder] Appended %d rows for %s", res.Appended, snap.Date)
	}

	for _, m := range r.mirrors {
		mres, err := appendOnce(ctx, m, snap)
		if err != nil {
			return res, fmt.Errorf("recorder: mirror: %w", err)
		}
		r.logger.Debug("[recorder] mirror: appended %d rows (skipped=%v)", mres.Appended, mres.Skipped)
	}
	return res, nil
}

func appendOnce(ctx context.Context, store storage.HistoryStore, snap *models.Snapshot) (RecordResult, error) {
	if l, ok := store.(storage.Locker); ok {
		unlock, err := l.Lock(ctx)
		if err != nil {
			return RecordResult{}, err
		}
		defer unlock()
	}

	last, ok, err := store.LastDate(ctx)
	if err != nil {
		return RecordResult{}, err
	}
	if ok && last == snap.Date {
		return RecordResult{Skipped: true}, nil
	}

	rows := snap.HistoryRows()
	if err := store.Append(ctx, rows); err != nil {
		return RecordResult{}, err
	}
	return RecordResult{Appended: len(rows)}, nil
}
