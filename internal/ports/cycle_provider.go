package ports

import (
	"context"

	"github.com/gtfunds/calculos/internal/domain"
)

// CycleProvider obtiene los ciclos y sus dashboards desde la API del back-office.
type CycleProvider interface {
	// ListCycles devuelve todos los ciclos, en cualquier estado.
	ListCycles(ctx context.Context) ([]domain.Cycle, error)

	// FetchDashboard devuelve la vista completa de un ciclo: resumen precalculado,
	// cuentas y tiros.
	FetchDashboard(ctx context.Context, cycleID string) (domain.CycleDashboard, error)
}
