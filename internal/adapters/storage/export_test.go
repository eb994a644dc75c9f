package storage

import (
	"context"
	"time"
)

// SetClock fija el reloj del journal en los tests.
func (j *SQLiteJournal) SetClock(now func() time.Time) { j.now = now }

// Prune expone pruneOld a los tests.
func (j *SQLiteJournal) Prune(ctx context.Context, retention time.Duration) {
	j.pruneOld(ctx, retention)
}
