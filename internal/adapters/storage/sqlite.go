package storage

// sqlite.go: journal local de estimaciones.
//
// Cada estimación calculada desde la CLI se guarda como una fila en `estimations`,
// con sus inputs y outputs ya resueltos. No se recalcula nada al leer.
// created_at se guarda como unix millis: ordena y filtra por rango sin depender
// del formato de fecha del driver.
// Prune automático al abrir según la retención configurada.

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gtfunds/calculos/internal/domain"
	"github.com/gtfunds/calculos/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS estimations (
    id                  TEXT    PRIMARY KEY,
    created_at          INTEGER NOT NULL,
    account_count       INTEGER NOT NULL,
    cost_per_account    REAL    NOT NULL DEFAULT 0,
    conversion_rate_pct REAL    NOT NULL DEFAULT 0,
    profit_target       REAL    NOT NULL DEFAULT 0,
    total_cost          REAL    NOT NULL DEFAULT 0,
    converted_accounts  REAL    NOT NULL DEFAULT 0,
    projected_profit    REAL    NOT NULL DEFAULT 0,
    net_profit          REAL    NOT NULL DEFAULT 0,
    roi_pct             REAL    NOT NULL DEFAULT 0,
    roi_defined         INTEGER NOT NULL DEFAULT 0,
    used_historical     INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_estimations_at ON estimations(created_at DESC);
`

const defaultRetention = 90 * 24 * time.Hour

// SQLiteJournal implementa ports.Journal usando SQLite (pure Go, sin CGo).
type SQLiteJournal struct {
	db  *sql.DB
	now func() time.Time
}

var _ ports.Journal = (*SQLiteJournal)(nil)

// NewSQLiteJournal abre (o crea) la base de datos en la ruta dada, aplica el schema
// y borra las estimaciones más viejas que retention. retention <= 0 usa 90 días.
func NewSQLiteJournal(path string, retention time.Duration) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteJournal: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteJournal: apply schema: %w", err)
	}

	j := &SQLiteJournal{db: db, now: time.Now}
	if retention <= 0 {
		retention = defaultRetention
	}
	j.pruneOld(context.Background(), retention)
	return j, nil
}

// SaveEstimation guarda la estimación y devuelve el UUID asignado.
func (j *SQLiteJournal) SaveEstimation(ctx context.Context, r domain.EstimationResult, usedHistorical bool) (string, error) {
	id := uuid.NewString()
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO estimations
			(id, created_at, account_count, cost_per_account, conversion_rate_pct,
			 profit_target, total_cost, converted_accounts, projected_profit,
			 net_profit, roi_pct, roi_defined, used_historical)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		j.now().UTC().UnixMilli(),
		r.Input.AccountCount,
		r.Input.CostPerAccount,
		r.Input.ConversionRatePct,
		r.Input.ProfitTargetPerAccount,
		r.TotalCost,
		r.ConvertedAccounts,
		r.ProjectedProfit,
		r.NetProfit,
		r.ROIPct,
		boolToInt(r.ROIDefined),
		boolToInt(usedHistorical),
	)
	if err != nil {
		return "", fmt.Errorf("storage.SaveEstimation: insert: %w", err)
	}
	return id, nil
}

// GetHistory devuelve las estimaciones cuyo created_at está en [from, to],
// las más recientes primero.
func (j *SQLiteJournal) GetHistory(ctx context.Context, from, to time.Time) ([]ports.EstimationRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, created_at, account_count, cost_per_account, conversion_rate_pct,
		       profit_target, total_cost, converted_accounts, projected_profit,
		       net_profit, roi_pct, roi_defined, used_historical
		FROM estimations
		WHERE created_at BETWEEN ? AND ?
		ORDER BY created_at DESC, rowid DESC
	`, from.UTC().UnixMilli(), to.UTC().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("storage.GetHistory: query: %w", err)
	}
	defer rows.Close()

	var records []ports.EstimationRecord
	for rows.Next() {
		var (
			rec                    ports.EstimationRecord
			createdAt              int64
			roiDefined, historical int
		)
		r := &rec.Result
		if err := rows.Scan(
			&rec.ID,
			&createdAt,
			&r.Input.AccountCount,
			&r.Input.CostPerAccount,
			&r.Input.ConversionRatePct,
			&r.Input.ProfitTargetPerAccount,
			&r.TotalCost,
			&r.ConvertedAccounts,
			&r.ProjectedProfit,
			&r.NetProfit,
			&r.ROIPct,
			&roiDefined,
			&historical,
		); err != nil {
			return nil, fmt.Errorf("storage.GetHistory: scan row: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(createdAt).UTC()
		r.ROIDefined = roiDefined == 1
		rec.UsedHistorical = historical == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// --- helpers internos ---

// pruneOld elimina estimaciones fuera de la retención para mantener la DB ligera.
func (j *SQLiteJournal) pruneOld(ctx context.Context, retention time.Duration) {
	cutoff := j.now().UTC().Add(-retention).UnixMilli()
	res, err := j.db.ExecContext(ctx, `DELETE FROM estimations WHERE created_at < ?`, cutoff)
	if err != nil {
		slog.Warn("journal prune failed", "err", err)
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.Debug("journal pruned", "rows", n)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
