package domain

// CycleAnalysis es el rendimiento real de un ciclo existente y su proyección.
type CycleAnalysis struct {
	Cycle             Cycle
	Summary           CycleSummary
	TotalCost         float64
	AvgCostPerAccount float64
	ProfitTarget      float64
	ProjectedProfit   float64
	NetProfit         float64
	ROIPct            float64
	ROIDefined        bool
	Tiros             []TiroOutcome
}

// TiroOutcome es el resultado de un tiro del ciclo.
type TiroOutcome struct {
	ID     string
	Symbol string
	Status TiroStatus
	Result float64
	Valid  bool // false si las patas no cumplen la estructura de un tiro
}

// AnalyzeCycle proyecta el profit de un ciclo a partir de sus cuentas en real:
// projectedProfit = cuentas en real × profitTarget. El ROI sigue la misma regla que
// Estimate: indefinido si el coste total es 0.
func AnalyzeCycle(d CycleDashboard, profitTarget float64) CycleAnalysis {
	a := CycleAnalysis{
		Cycle:        d.Cycle,
		Summary:      d.Summarize(),
		TotalCost:    d.TotalCost(),
		ProfitTarget: profitTarget,
	}
	if a.Summary.TotalAccounts > 0 {
		a.AvgCostPerAccount = a.TotalCost / float64(a.Summary.TotalAccounts)
	}
	a.ProjectedProfit = float64(a.Summary.RealAccounts) * profitTarget
	a.NetProfit = a.ProjectedProfit - a.TotalCost
	a.ROIPct, a.ROIDefined = roiPct(a.ProjectedProfit, a.TotalCost)

	for _, t := range d.Tiros {
		a.Tiros = append(a.Tiros, TiroOutcome{
			ID:     t.ID,
			Symbol: t.Symbol,
			Status: t.Status,
			Result: t.TotalResult(),
			Valid:  t.Validate() == nil,
		})
	}
	return a
}

// ROI devuelve el ROI en porcentaje, o ErrUndefinedROI si el ciclo no tiene coste.
func (a CycleAnalysis) ROI() (float64, error) {
	if !a.ROIDefined {
		return 0, ErrUndefinedROI
	}
	return a.ROIPct, nil
}
