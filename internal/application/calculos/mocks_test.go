package calculos_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gtfunds/calculos/internal/domain"
	"github.com/gtfunds/calculos/internal/ports"
)

var errAPI = errors.New("api down")

type mockCycleProvider struct {
	cycles     []domain.Cycle
	listErr    error
	dashboards map[string]domain.CycleDashboard
	failing    map[string]bool
	inFlight   atomic.Int32
	maxFlight  atomic.Int32
	fetches    atomic.Int32
}

func (f *mockCycleProvider) ListCycles(context.Context) ([]domain.Cycle, error) {
	return f.cycles, f.listErr
}

func (f *mockCycleProvider) FetchDashboard(_ context.Context, id string) (domain.CycleDashboard, error) {
	f.fetches.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxFlight.Load()
		if n <= cur || f.maxFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if f.failing[id] {
		return domain.CycleDashboard{}, errAPI
	}
	d, ok := f.dashboards[id]
	if !ok {
		return domain.CycleDashboard{}, errors.New("not found")
	}
	return d, nil
}

type mockStatisticsProvider struct {
	fn    func(ctx context.Context) (domain.HistoricalAverages, error)
	calls atomic.Int32
}

func (f *mockStatisticsProvider) FetchHistoricalStatistics(ctx context.Context) (domain.HistoricalAverages, error) {
	f.calls.Add(1)
	return f.fn(ctx)
}

type mockBackOffice struct {
	kycs      []domain.KYC
	investors []domain.Investor
	err       error
}

func (f *mockBackOffice) ListKYCs(context.Context) ([]domain.KYC, error) {
	return f.kycs, f.err
}

func (f *mockBackOffice) ListInvestors(context.Context) ([]domain.Investor, error) {
	return f.investors, nil
}

type savedEstimate struct {
	result         domain.EstimationResult
	usedHistorical bool
}

type mockJournal struct {
	mu    sync.Mutex
	saved []savedEstimate
	err   error
}

func (f *mockJournal) SaveEstimation(_ context.Context, r domain.EstimationResult, usedHistorical bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, savedEstimate{result: r, usedHistorical: usedHistorical})
	return "id-1", nil
}

func (f *mockJournal) GetHistory(context.Context, time.Time, time.Time) ([]ports.EstimationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ports.EstimationRecord
	for _, s := range f.saved {
		out = append(out, ports.EstimationRecord{ID: "id-1", UsedHistorical: s.usedHistorical, Result: s.result})
	}
	return out, f.err
}

func (f *mockJournal) Close() error { return nil }

func dashboard(id string, status domain.CycleStatus, conversion float64, costs ...float64) domain.CycleDashboard {
	d := domain.CycleDashboard{
		Cycle: domain.Cycle{ID: id, Status: status},
		Summary: domain.CycleSummary{
			TotalAccounts:     len(costs),
			ConversionRatePct: conversion,
		},
	}
	for _, c := range costs {
		d.Accounts = append(d.Accounts, domain.TradingAccount{Cost: c})
	}
	return d
}
