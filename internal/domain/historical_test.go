package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDashboard(status CycleStatus, conversion float64, costs ...float64) CycleDashboard {
	d := CycleDashboard{
		Cycle:   Cycle{ID: "c", Name: "Ciclo", Status: status},
		Summary: CycleSummary{TotalAccounts: len(costs), ConversionRatePct: conversion},
	}
	for _, c := range costs {
		d.Accounts = append(d.Accounts, TradingAccount{Cost: c, Phase: PhaseOne})
	}
	return d
}

func TestAggregateHistory_Averages(t *testing.T) {
	dashboards := []CycleDashboard{
		makeDashboard(CycleCompleted, 10, 100, 200),      // 2 cuentas, $300
		makeDashboard(CycleCompleted, 30, 150, 150, 300), // 3 cuentas, $600
	}

	h, ok := AggregateHistory(dashboards, 5000)
	require.True(t, ok)

	assert.InDelta(t, 20.0, h.AvgConversionRate, 1e-9)
	// (300 + 600) / 5 cuentas
	assert.InDelta(t, 180.0, h.AvgCostPerAccount, 1e-9)
	assert.InDelta(t, 5000.0, h.AvgProfitPerAccount, 1e-9)
	assert.Equal(t, 2, h.CompletedCycles)
	assert.Equal(t, 5, h.AccountsAnalyzed)
}

func TestAggregateHistory_SkipsEmptyAndNotCompleted(t *testing.T) {
	dashboards := []CycleDashboard{
		makeDashboard(CycleCompleted, 0),           // sin cuentas
		makeDashboard(CycleActive, 50, 100),        // no completado
		makeDashboard(CycleCancelled, 50, 100),     // no completado
		makeDashboard(CycleCompleted, 25, 120, 80), // califica
	}

	h, ok := AggregateHistory(dashboards, 3000)
	require.True(t, ok)
	assert.Equal(t, 1, h.CompletedCycles)
	assert.InDelta(t, 25.0, h.AvgConversionRate, 1e-9)
	assert.InDelta(t, 100.0, h.AvgCostPerAccount, 1e-9)
	assert.InDelta(t, 3000.0, h.AvgProfitPerAccount, 1e-9)
}

func TestAggregateHistory_NoQualifyingCycles(t *testing.T) {
	_, ok := AggregateHistory([]CycleDashboard{makeDashboard(CycleCompleted, 0)}, 5000)
	assert.False(t, ok)

	_, ok = AggregateHistory(nil, 5000)
	assert.False(t, ok)
}

// --- AnalyzeCycle ---

func TestAnalyzeCycle_Projection(t *testing.T) {
	d := makeDashboard(CycleActive, 25, 100, 100, 200, 200)
	d.Summary.RealAccounts = 1

	a := AnalyzeCycle(d, 5000)

	assert.InDelta(t, 600.0, a.TotalCost, 1e-9)
	assert.InDelta(t, 150.0, a.AvgCostPerAccount, 1e-9)
	assert.InDelta(t, 5000.0, a.ProjectedProfit, 1e-9)
	assert.InDelta(t, 4400.0, a.NetProfit, 1e-9)
	roi, err := a.ROI()
	require.NoError(t, err)
	assert.InDelta(t, 733.3333, roi, 0.0001)
}

func TestAnalyzeCycle_NoAccounts(t *testing.T) {
	a := AnalyzeCycle(makeDashboard(CycleActive, 0), 5000)

	assert.Equal(t, 0.0, a.TotalCost)
	assert.Equal(t, 0.0, a.AvgCostPerAccount)
	assert.False(t, a.ROIDefined)
	_, err := a.ROI()
	assert.ErrorIs(t, err, ErrUndefinedROI)
}

func TestAnalyzeCycle_DerivesSummaryWithoutResumen(t *testing.T) {
	res := 300.0
	d := CycleDashboard{
		Cycle: Cycle{ID: "c", Status: CycleActive},
		Accounts: []TradingAccount{
			{Cost: 100, Phase: PhaseOne},
			{Cost: 100, Phase: PhaseTwo},
			{Cost: 100, Phase: PhaseReal},
			{Cost: 100, Phase: PhaseQuemada},
		},
		Tiros: []Tiro{
			{ID: "t1", Symbol: "EURUSD", Status: TiroOpen, Leg1: makeLeg(Buy, "a1"), Leg2: makeLeg(Sell, "b1")},
			{ID: "t2", Symbol: "GBPUSD", Status: TiroClosed, Result: &res},
		},
	}

	a := AnalyzeCycle(d, 5000)

	assert.Equal(t, PhaseCounts{Fase1: 1, Fase2: 1, Real: 1, Quemada: 1}, a.Summary.AccountsByPhase)
	assert.Equal(t, 4, a.Summary.TotalAccounts)
	assert.Equal(t, 1, a.Summary.RealAccounts)
	assert.InDelta(t, 25.0, a.Summary.ConversionRatePct, 1e-9)
	assert.Equal(t, 2, a.Summary.TotalTiros)
	assert.Equal(t, 1, a.Summary.OpenTiros)
	assert.Equal(t, 1, a.Summary.ClosedTiros)
	assert.InDelta(t, 300.0, a.Summary.TirosResult, 1e-9)
	assert.InDelta(t, 100.0, a.AvgCostPerAccount, 1e-9)
	assert.InDelta(t, 5000.0, a.ProjectedProfit, 1e-9)

	require.Len(t, a.Tiros, 2)
	assert.True(t, a.Tiros[0].Valid)
	assert.Equal(t, "EURUSD", a.Tiros[0].Symbol)
	assert.False(t, a.Tiros[1].Valid)
	assert.InDelta(t, 300.0, a.Tiros[1].Result, 1e-9)
}

func TestSummarize_KeepsAPIResumen(t *testing.T) {
	d := makeDashboard(CycleActive, 40, 100, 100)
	d.Summary.RealAccounts = 1
	d.Summary.TotalTiros = 3
	d.Summary.TirosResult = 900
	d.Tiros = []Tiro{{Status: TiroOpen}}

	s := d.Summarize()

	assert.Equal(t, 2, s.TotalAccounts)
	assert.InDelta(t, 40.0, s.ConversionRatePct, 1e-9)
	assert.Equal(t, PhaseCounts{}, s.AccountsByPhase)
	assert.Equal(t, 3, s.TotalTiros)
	assert.InDelta(t, 900.0, s.TirosResult, 1e-9)
}

func TestCountPhases_IgnoresUnknown(t *testing.T) {
	p := CountPhases([]TradingAccount{
		{Phase: PhaseReal},
		{Phase: PhaseReal},
		{Phase: PhaseOne},
		{Phase: Phase("Archivada")},
	})
	assert.Equal(t, PhaseCounts{Fase1: 1, Real: 2}, p)
	assert.Equal(t, 3, p.Total())
}
