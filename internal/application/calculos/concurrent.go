package calculos

// concurrent.go: carga paralela de dashboards para el cálculo local de históricos.

import (
	"context"
	"log/slog"

	"github.com/gtfunds/calculos/internal/domain"
	"github.com/gtfunds/calculos/internal/ports"
	"golang.org/x/sync/errgroup"
)

// fetchCompletedDashboards descarga en paralelo los dashboards de los ciclos
// completados, con como mucho workers requests en vuelo.
// Un dashboard que falla se loguea y se omite; el resto sigue.
// El orden del resultado respeta el orden de cycles.
func fetchCompletedDashboards(
	ctx context.Context,
	provider ports.CycleProvider,
	cycles []domain.Cycle,
	workers int,
) []domain.CycleDashboard {
	var completed []domain.Cycle
	for _, c := range cycles {
		if c.IsCompleted() {
			completed = append(completed, c)
		}
	}
	if len(completed) == 0 {
		return nil
	}

	results := make([]*domain.CycleDashboard, len(completed))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, c := range completed {
		g.Go(func() error {
			d, err := provider.FetchDashboard(ctx, c.ID)
			if err != nil {
				slog.Warn("dashboard skipped", "cycle_id", c.ID, "err", err)
				return nil
			}
			// Si el dashboard no trae estado se usa el de la lista.
			if d.Cycle.Status == "" {
				d.Cycle.Status = c.Status
			}
			results[i] = &d
			return nil
		})
	}
	g.Wait()

	dashboards := make([]domain.CycleDashboard, 0, len(completed))
	for _, d := range results {
		if d != nil {
			dashboards = append(dashboards, *d)
		}
	}
	slog.Debug("dashboards fetched", "completed", len(completed), "ok", len(dashboards))
	return dashboards
}
