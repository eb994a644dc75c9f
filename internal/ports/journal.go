package ports

import (
	"context"
	"time"

	"github.com/gtfunds/calculos/internal/domain"
)

// EstimationRecord es una estimación guardada en el journal local.
type EstimationRecord struct {
	ID             string
	CreatedAt      time.Time
	UsedHistorical bool
	Result         domain.EstimationResult
}

// Journal persiste las estimaciones calculadas.
type Journal interface {
	// SaveEstimation guarda una estimación y devuelve su ID.
	SaveEstimation(ctx context.Context, result domain.EstimationResult, usedHistorical bool) (string, error)

	// GetHistory devuelve las estimaciones en el rango dado, las más recientes primero.
	GetHistory(ctx context.Context, from, to time.Time) ([]EstimationRecord, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
