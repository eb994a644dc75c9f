package gtapi

import (
	"time"

	"github.com/gtfunds/calculos/internal/domain"
)

// La API (Python) serializa datetimes sin zona horaria; se asumen UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime intenta los formatos conocidos. Devuelve el zero value si ninguno encaja.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func mapCycle(r cycleDTO) domain.Cycle {
	return domain.Cycle{
		ID:        r.value(),
		Name:      r.Name,
		Status:    domain.CycleStatus(r.Status),
		StartDate: parseTime(r.StartDate),
	}
}

func mapCycles(raw []cycleDTO) []domain.Cycle {
	cycles := make([]domain.Cycle, 0, len(raw))
	for _, r := range raw {
		cycles = append(cycles, mapCycle(r))
	}
	return cycles
}

func mapDashboard(r dashboardResponse) domain.CycleDashboard {
	d := domain.CycleDashboard{
		Cycle: mapCycle(r.Metadata),
		Summary: domain.CycleSummary{
			TotalAccounts: r.Resumen.TotalCuentas,
			AccountsByPhase: domain.PhaseCounts{
				Fase1:   r.Resumen.CuentasPorFase.Fase1,
				Fase2:   r.Resumen.CuentasPorFase.Fase2,
				Real:    r.Resumen.CuentasPorFase.Real,
				Quemada: r.Resumen.CuentasPorFase.Quemada,
			},
			RealAccounts:      r.Resumen.CuentasEnReal,
			ConversionRatePct: r.Resumen.TasaConversion,
			TotalTiros:        r.Resumen.TotalTiros,
			OpenTiros:         r.Resumen.TirosAbiertos,
			ClosedTiros:       r.Resumen.TirosCerrados,
			TirosResult:       r.Resumen.ResultadoTotalTiros,
		},
		Accounts: mapAccounts(r.Cuentas),
		Tiros:    make([]domain.Tiro, 0, len(r.Tiros)),
	}
	for _, t := range r.Tiros {
		d.Tiros = append(d.Tiros, mapTiro(t))
	}
	return d
}

func mapStatistics(r statisticsResponse) domain.HistoricalAverages {
	return domain.HistoricalAverages{
		AvgConversionRate:   r.PromedioTasaConversion,
		AvgCostPerAccount:   r.PromedioCostoPorCuenta,
		AvgProfitPerAccount: r.PromedioProfitPorCuenta,
		CompletedCycles:     r.TotalCiclosCompletados,
		AccountsAnalyzed:    r.TotalCuentasAnalizadas,
	}
}

func mapAccounts(raw []accountDTO) []domain.TradingAccount {
	accounts := make([]domain.TradingAccount, 0, len(raw))
	for _, r := range raw {
		accounts = append(accounts, domain.TradingAccount{
			ID:            r.value(),
			KycID:         r.KycID,
			CycleID:       r.CycleID,
			AccountNumber: r.AccountNumber,
			PropFirm:      r.PropFirm,
			AccountSize:   r.AccountSize,
			Cost:          r.Cost,
			Phase:         domain.Phase(r.Phase),
			Status:        domain.AccountStatus(r.Status),
		})
	}
	return accounts
}

func mapTiro(r tiroDTO) domain.Tiro {
	t := domain.Tiro{
		ID:       r.value(),
		CycleID:  r.CycleID,
		Symbol:   r.Symbol,
		Status:   domain.TiroStatus(r.Status),
		Leg1:     mapLeg(r.Leg1),
		Leg2:     mapLeg(r.Leg2),
		Result:   r.Result,
		Notes:    r.Notes,
		OpenDate: parseTime(r.OpenDate),
	}
	if closed := parseTime(r.CloseDate); !closed.IsZero() {
		t.CloseDate = &closed
	}
	return t
}

func mapLeg(r legDTO) domain.Leg {
	leg := domain.Leg{Direction: domain.Direction(r.Direction)}
	for _, acc := range r.Accounts {
		ops := make([]domain.Operation, 0, len(acc.Operations))
		for _, op := range acc.Operations {
			ops = append(ops, domain.Operation{
				Volume:     op.Volume,
				EntryPrice: op.EntryPrice,
				ExitPrice:  op.ExitPrice,
				TicketID:   op.TicketID,
				Result:     op.Result,
			})
		}
		leg.Accounts = append(leg.Accounts, domain.AccountInLeg{AccountID: acc.AccountID, Operations: ops})
	}
	return leg
}

func mapKYC(r kycDTO) domain.KYC {
	return domain.KYC{
		ID:               r.value(),
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		Active:           r.Status,
		DashboardEnabled: r.DashboardEnabled,
		CycleID:          r.CycleID,
		SubmittedDate:    parseTime(r.SubmittedDate),
	}
}

func mapPayouts(raw []payoutDTO) []domain.Payout {
	payouts := make([]domain.Payout, 0, len(raw))
	for _, r := range raw {
		payouts = append(payouts, domain.Payout{
			ID:     r.value(),
			KycID:  r.KycID,
			Amount: r.Amount,
			Date:   parseTime(r.PayoutDate),
		})
	}
	return payouts
}

func mapInvestors(raw []investorDTO) []domain.Investor {
	investors := make([]domain.Investor, 0, len(raw))
	for _, r := range raw {
		inv := domain.Investor{
			ID:            r.value(),
			Name:          r.Name,
			Email:         r.Email,
			Country:       r.Country,
			TotalInvested: r.TotalInvested,
		}
		for _, i := range r.Investments {
			inv.Investments = append(inv.Investments, domain.Investment{
				CycleID:          i.CycleID,
				Amount:           i.Amount,
				ProfitPercentage: i.ProfitPercentage,
				Date:             parseTime(i.InvestmentDate),
				Status:           i.Status,
			})
		}
		investors = append(investors, inv)
	}
	return investors
}
