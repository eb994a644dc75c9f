package ports

import "github.com/gtfunds/calculos/internal/domain"

// Presenter muestra los resultados al usuario.
type Presenter interface {
	// ShowEstimate muestra una estimación; historical es nil si no hay datos históricos.
	ShowEstimate(result domain.EstimationResult, historical *domain.HistoricalAverages)
	ShowCycleAnalysis(analysis domain.CycleAnalysis)
	ShowHistorical(historical domain.HistoricalAverages)
	ShowHistory(records []EstimationRecord)
	ShowOverview(overview domain.Overview)
}
