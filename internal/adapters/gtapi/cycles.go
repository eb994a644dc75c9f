package gtapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/gtfunds/calculos/internal/domain"
)

const (
	cyclesPath     = "/cycles/"
	dashboardPath  = "/cycles/%s/dashboard"
	statisticsPath = "/cycles/statistics/historical"
)

// ListCycles devuelve todos los ciclos.
func (c *Client) ListCycles(ctx context.Context) ([]domain.Cycle, error) {
	var raw []cycleDTO
	if err := c.get(ctx, c.url(cyclesPath), &raw); err != nil {
		return nil, fmt.Errorf("gtapi.ListCycles: %w", err)
	}
	cycles := mapCycles(raw)
	slog.Debug("cycles fetched", "total", len(cycles))
	return cycles, nil
}

// FetchDashboard devuelve el dashboard de un ciclo. Un ciclo inexistente devuelve
// un error que cumple errors.Is(err, ErrNotFound).
func (c *Client) FetchDashboard(ctx context.Context, cycleID string) (domain.CycleDashboard, error) {
	var raw dashboardResponse
	if err := c.get(ctx, c.url(dashboardPath, url.PathEscape(cycleID)), &raw); err != nil {
		return domain.CycleDashboard{}, fmt.Errorf("gtapi.FetchDashboard %s: %w", cycleID, err)
	}
	d := mapDashboard(raw)
	if d.Cycle.ID == "" {
		d.Cycle.ID = cycleID
	}
	return d, nil
}

// FetchHistoricalStatistics devuelve los promedios precalculados por la API.
func (c *Client) FetchHistoricalStatistics(ctx context.Context) (domain.HistoricalAverages, error) {
	var raw statisticsResponse
	if err := c.get(ctx, c.url(statisticsPath), &raw); err != nil {
		return domain.HistoricalAverages{}, fmt.Errorf("gtapi.FetchHistoricalStatistics: %w", err)
	}
	return mapStatistics(raw), nil
}
