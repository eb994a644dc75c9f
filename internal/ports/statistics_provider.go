package ports

import (
	"context"

	"github.com/gtfunds/calculos/internal/domain"
)

// StatisticsProvider obtiene los promedios históricos precalculados por la API.
type StatisticsProvider interface {
	FetchHistoricalStatistics(ctx context.Context) (domain.HistoricalAverages, error)
}
