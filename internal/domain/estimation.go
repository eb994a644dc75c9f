package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput se devuelve cuando los parámetros de la calculadora violan las
	// restricciones del formulario.
	ErrInvalidInput = errors.New("invalid estimation input")

	// ErrUndefinedROI indica que el ROI no existe porque el coste total es 0.
	ErrUndefinedROI = errors.New("roi undefined: total cost is zero")
)

// EstimationInput son los parámetros de la calculadora de ciclo.
type EstimationInput struct {
	AccountCount           int
	CostPerAccount         float64
	ConversionRatePct      float64 // % de cuentas que pasan a real, 0–100
	ProfitTargetPerAccount float64
}

// EstimationResult son las métricas derivadas de un EstimationInput.
// No se redondea nada: el redondeo es cosa de la presentación.
type EstimationResult struct {
	Input             EstimationInput
	TotalCost         float64
	ConvertedAccounts float64
	ProjectedProfit   float64
	NetProfit         float64
	// ROIPct solo tiene sentido si ROIDefined es true. Con coste total 0 vale 0.
	ROIPct     float64
	ROIDefined bool
}

// Estimate calcula coste, cuentas convertidas, profit proyectado y ROI.
// Es una función pura: nunca falla y nunca devuelve valores no finitos.
//
// Fórmula:
//
//	totalCost         = accountCount × costPerAccount
//	convertedAccounts = accountCount × conversionRatePct / 100
//	projectedProfit   = convertedAccounts × profitTargetPerAccount
//	roiPct            = (projectedProfit − totalCost) / totalCost × 100
func Estimate(in EstimationInput) EstimationResult {
	n := float64(in.AccountCount)

	r := EstimationResult{Input: in}
	r.TotalCost = n * in.CostPerAccount
	r.ConvertedAccounts = n * (in.ConversionRatePct / 100)
	r.ProjectedProfit = r.ConvertedAccounts * in.ProfitTargetPerAccount
	r.NetProfit = r.ProjectedProfit - r.TotalCost
	r.ROIPct, r.ROIDefined = roiPct(r.ProjectedProfit, r.TotalCost)
	return r
}

// ROI devuelve el ROI en porcentaje, o ErrUndefinedROI si el coste total es 0.
func (r EstimationResult) ROI() (float64, error) {
	if !r.ROIDefined {
		return 0, ErrUndefinedROI
	}
	return r.ROIPct, nil
}

// Validate aplica las restricciones del formulario de la calculadora.
// Estimate no las aplica: quien llama decide si valida.
func (in EstimationInput) Validate() error {
	switch {
	case in.AccountCount < 1:
		return fmt.Errorf("%w: account count must be >= 1, got %d", ErrInvalidInput, in.AccountCount)
	case in.CostPerAccount < 0:
		return fmt.Errorf("%w: cost per account must be >= 0, got %.2f", ErrInvalidInput, in.CostPerAccount)
	case in.ConversionRatePct < 0 || in.ConversionRatePct > 100:
		return fmt.Errorf("%w: conversion rate must be in [0,100], got %.2f", ErrInvalidInput, in.ConversionRatePct)
	case in.ProfitTargetPerAccount < 0:
		return fmt.Errorf("%w: profit target must be >= 0, got %.2f", ErrInvalidInput, in.ProfitTargetPerAccount)
	}
	return nil
}

// WithHistorical rellena el input con los promedios históricos.
// Cada promedio distinto de 0 reemplaza al campo correspondiente; el número de
// cuentas no se toca.
func (in EstimationInput) WithHistorical(h HistoricalAverages) EstimationInput {
	if h.AvgConversionRate != 0 {
		in.ConversionRatePct = h.AvgConversionRate
	}
	if h.AvgCostPerAccount != 0 {
		in.CostPerAccount = h.AvgCostPerAccount
	}
	if h.AvgProfitPerAccount != 0 {
		in.ProfitTargetPerAccount = h.AvgProfitPerAccount
	}
	return in
}

// roiPct devuelve (profit − cost) / cost × 100 y si está definido.
func roiPct(profit, cost float64) (float64, bool) {
	if cost == 0 {
		return 0, false
	}
	return (profit - cost) / cost * 100, true
}
