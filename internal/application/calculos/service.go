package calculos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gtfunds/calculos/internal/application/state"
	"github.com/gtfunds/calculos/internal/domain"
	"github.com/gtfunds/calculos/internal/ports"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrStaleResponse indica que llegó una carga de históricos más nueva mientras
	// esta estaba en vuelo; el resultado se descartó.
	ErrStaleResponse = errors.New("stale historical response discarded")

	// ErrNoJournal se devuelve al pedir el historial sin journal configurado.
	ErrNoJournal = errors.New("estimation journal not configured")
)

// Config contiene la configuración del servicio.
type Config struct {
	ProfitTarget   float64 // profit asumido por cuenta en real
	HistoryWorkers int     // dashboards en paralelo en el cálculo local (0 = 4)
}

// Service orquesta calculadora, históricos, análisis de ciclo y resumen general.
type Service struct {
	cfg        Config
	cycles     ports.CycleProvider
	stats      ports.StatisticsProvider
	backOffice ports.BackOfficeProvider
	journal    ports.Journal
	store      *state.Store
}

// New crea un Service con todas las dependencias inyectadas.
// stats, backOffice y journal pueden ser nil.
func New(
	cfg Config,
	cycles ports.CycleProvider,
	stats ports.StatisticsProvider,
	backOffice ports.BackOfficeProvider,
	journal ports.Journal,
	store *state.Store,
) *Service {
	if cfg.HistoryWorkers <= 0 {
		cfg.HistoryWorkers = 4
	}
	if store == nil {
		store = state.New()
	}
	return &Service{
		cfg:        cfg,
		cycles:     cycles,
		stats:      stats,
		backOffice: backOffice,
		journal:    journal,
		store:      store,
	}
}

// Store devuelve el estado compartido del servicio.
func (s *Service) Store() *state.Store {
	return s.store
}

// RefreshHistorical recarga los promedios históricos y los guarda en el Store.
// Usa el endpoint de estadísticas si devuelve ciclos completados; si no, los
// calcula a partir de los dashboards de los ciclos completados.
// Devuelve nil sin error si no hay ningún ciclo completado con cuentas.
func (s *Service) RefreshHistorical(ctx context.Context) (*domain.HistoricalAverages, error) {
	seq := s.store.NextSequence()

	h, ok, err := s.loadHistorical(ctx)
	if err != nil {
		s.store.SetErrorIfCurrent(seq, err)
		return nil, fmt.Errorf("calculos.RefreshHistorical: %w", err)
	}

	if !ok {
		if !s.store.ClearHistorical(seq) {
			return nil, ErrStaleResponse
		}
		slog.Info("no completed cycles, using defaults")
		return nil, nil
	}

	if !s.store.SetHistorical(seq, h) {
		slog.Debug("historical response discarded", "seq", seq)
		return nil, ErrStaleResponse
	}
	slog.Info("historical averages loaded",
		"cycles", h.CompletedCycles,
		"accounts", h.AccountsAnalyzed,
		"conversion", fmt.Sprintf("%.2f%%", h.AvgConversionRate),
		"cost", fmt.Sprintf("$%.2f", h.AvgCostPerAccount),
	)
	return &h, nil
}

// loadHistorical prefiere las estadísticas precalculadas y cae al cálculo local.
func (s *Service) loadHistorical(ctx context.Context) (domain.HistoricalAverages, bool, error) {
	if s.stats != nil {
		h, err := s.stats.FetchHistoricalStatistics(ctx)
		switch {
		case err != nil:
			slog.Warn("statistics endpoint failed, computing locally", "err", err)
		case h.CompletedCycles > 0:
			// La API devuelve un profit fijo; manda el configurado.
			h.AvgProfitPerAccount = s.cfg.ProfitTarget
			return h, true, nil
		default:
			slog.Debug("statistics endpoint has no completed cycles, computing locally")
		}
	}

	cycles, err := s.cycles.ListCycles(ctx)
	if err != nil {
		return domain.HistoricalAverages{}, false, err
	}
	s.store.SetCycles(cycles)

	dashboards := fetchCompletedDashboards(ctx, s.cycles, cycles, s.cfg.HistoryWorkers)
	h, ok := domain.AggregateHistory(dashboards, s.cfg.ProfitTarget)
	return h, ok, nil
}

// Historical devuelve los últimos promedios cargados, o nil.
func (s *Service) Historical() *domain.HistoricalAverages {
	return s.store.Historical()
}

// Estimate calcula la proyección de un ciclo. Si useHistorical es true y hay
// promedios disponibles (cargándolos si hace falta), reemplazan coste, conversión
// y profit del input. La estimación se guarda en el journal si hay uno; un fallo
// del journal no falla la estimación.
func (s *Service) Estimate(ctx context.Context, in domain.EstimationInput, useHistorical bool) (domain.EstimationResult, error) {
	usedHistorical := false
	if useHistorical {
		h := s.store.Historical()
		if h == nil {
			var err error
			if h, err = s.RefreshHistorical(ctx); err != nil {
				slog.Warn("historical averages unavailable, using input values", "err", err)
			}
		}
		if h != nil {
			in = in.WithHistorical(*h)
			usedHistorical = true
		}
	}

	if err := in.Validate(); err != nil {
		return domain.EstimationResult{}, err
	}

	r := domain.Estimate(in)
	s.store.SetLastEstimate(r)

	if s.journal != nil {
		id, err := s.journal.SaveEstimation(ctx, r, usedHistorical)
		if err != nil {
			slog.Warn("estimation not saved", "err", err)
		} else {
			slog.Debug("estimation saved", "id", id)
		}
	}
	return r, nil
}

// AnalyzeCycle carga el dashboard de un ciclo y calcula su rendimiento.
func (s *Service) AnalyzeCycle(ctx context.Context, cycleID string) (domain.CycleAnalysis, error) {
	if cycleID == "" {
		return domain.CycleAnalysis{}, fmt.Errorf("%w: empty cycle id", domain.ErrInvalidInput)
	}

	d, err := s.cycles.FetchDashboard(ctx, cycleID)
	if err != nil {
		s.store.SetError(err)
		return domain.CycleAnalysis{}, fmt.Errorf("calculos.AnalyzeCycle: %w", err)
	}

	a := domain.AnalyzeCycle(d, s.cfg.ProfitTarget)
	s.store.SetLastAnalysis(a)
	return a, nil
}

// Overview carga KYCs, ciclos e inversores en paralelo y calcula las cifras globales.
func (s *Service) Overview(ctx context.Context) (domain.Overview, error) {
	if s.backOffice == nil {
		return domain.Overview{}, errors.New("calculos.Overview: back-office provider not configured")
	}

	var (
		kycs      []domain.KYC
		cycles    []domain.Cycle
		investors []domain.Investor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		kycs, err = s.backOffice.ListKYCs(gctx)
		return err
	})
	g.Go(func() (err error) {
		cycles, err = s.cycles.ListCycles(gctx)
		return err
	})
	g.Go(func() (err error) {
		investors, err = s.backOffice.ListInvestors(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.store.SetError(err)
		return domain.Overview{}, fmt.Errorf("calculos.Overview: %w", err)
	}

	s.store.SetKYCs(kycs)
	s.store.SetCycles(cycles)
	s.store.SetInvestors(investors)

	o := domain.BuildOverview(kycs, cycles, investors)
	s.store.SetOverview(o)
	return o, nil
}

// History devuelve las estimaciones guardadas en el rango dado.
func (s *Service) History(ctx context.Context, from, to time.Time) ([]ports.EstimationRecord, error) {
	if s.journal == nil {
		return nil, ErrNoJournal
	}
	records, err := s.journal.GetHistory(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("calculos.History: %w", err)
	}
	return records, nil
}
