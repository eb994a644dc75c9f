package domain

// HistoricalAverages son los promedios de los ciclos completados.
// Solo sirven para rellenar los defaults de la calculadora.
type HistoricalAverages struct {
	AvgConversionRate   float64
	AvgCostPerAccount   float64
	AvgProfitPerAccount float64
	CompletedCycles     int
	AccountsAnalyzed    int
}

// AggregateHistory agrega los dashboards de ciclos completados con al menos una cuenta.
//
//   - AvgConversionRate: media simple de la tasa de conversión de cada ciclo.
//   - AvgCostPerAccount: coste total / cuentas totales (media ponderada por cuentas).
//   - AvgProfitPerAccount: profitTarget; no se deriva de datos.
//
// Devuelve ok=false si ningún ciclo califica.
func AggregateHistory(dashboards []CycleDashboard, profitTarget float64) (HistoricalAverages, bool) {
	var (
		sumConversion float64
		sumCost       float64
		accounts      int
		cycles        int
	)

	for _, d := range dashboards {
		if !d.Cycle.IsCompleted() || d.Summary.TotalAccounts == 0 {
			continue
		}
		sumConversion += d.Summary.ConversionRatePct
		sumCost += d.TotalCost()
		accounts += d.Summary.TotalAccounts
		cycles++
	}

	if cycles == 0 {
		return HistoricalAverages{}, false
	}

	h := HistoricalAverages{
		AvgConversionRate:   sumConversion / float64(cycles),
		AvgProfitPerAccount: profitTarget,
		CompletedCycles:     cycles,
		AccountsAnalyzed:    accounts,
	}
	if accounts > 0 {
		h.AvgCostPerAccount = sumCost / float64(accounts)
	}
	return h, true
}
