package domain

// Overview son las cifras globales del back-office.
type Overview struct {
	TotalAUM      float64
	TotalAccounts int
	FundedCount   int
	TotalKYCs     int
	TotalCycles   int
	ActiveCycles  int
	TotalPayouts  float64
	TotalInvested float64
	Investors     int

	// Capital de inversores asignado a ciclos activos.
	ActiveInvested float64
}

// BuildOverview calcula las cifras globales a partir de los datos cargados.
func BuildOverview(kycs []KYC, cycles []Cycle, investors []Investor) Overview {
	o := Overview{
		TotalKYCs:   len(kycs),
		TotalCycles: len(cycles),
		Investors:   len(investors),
	}
	for _, k := range kycs {
		o.TotalAUM += k.AUM()
		o.TotalPayouts += k.TotalPayouts()
		o.TotalAccounts += len(k.Accounts)
		for _, a := range k.Accounts {
			if a.IsFunded() {
				o.FundedCount++
			}
		}
	}
	for _, inv := range investors {
		o.TotalInvested += inv.TotalInvested
	}
	for _, c := range cycles {
		if c.Status != CycleActive {
			continue
		}
		o.ActiveCycles++
		for _, inv := range investors {
			o.ActiveInvested += inv.InvestedIn(c.ID)
		}
	}
	return o
}
