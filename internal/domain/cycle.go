package domain

import "time"

// CycleStatus es el estado de un ciclo de inversión.
type CycleStatus string

const (
	CycleActive    CycleStatus = "Activo"
	CycleCompleted CycleStatus = "Completado"
	CycleCancelled CycleStatus = "Cancelado"
)

// Cycle agrupa cuentas y tiros de un periodo para reporting.
type Cycle struct {
	ID        string
	Name      string
	Status    CycleStatus
	StartDate time.Time
}

// IsCompleted devuelve true si el ciclo entra en las estadísticas históricas.
func (c Cycle) IsCompleted() bool {
	return c.Status == CycleCompleted
}

// PhaseCounts es la distribución de cuentas por fase.
type PhaseCounts struct {
	Fase1   int
	Fase2   int
	Real    int
	Quemada int
}

// Total devuelve el número de cuentas contadas.
func (p PhaseCounts) Total() int {
	return p.Fase1 + p.Fase2 + p.Real + p.Quemada
}

// CycleSummary es el resumen precalculado por la API para un ciclo.
type CycleSummary struct {
	TotalAccounts     int
	AccountsByPhase   PhaseCounts
	RealAccounts      int
	ConversionRatePct float64 // cuentas en real / total × 100, redondeado por la API
	TotalTiros        int
	OpenTiros         int
	ClosedTiros       int
	TirosResult       float64
}

// CycleDashboard es la vista completa de un ciclo: metadata, resumen, cuentas y tiros.
type CycleDashboard struct {
	Cycle    Cycle
	Summary  CycleSummary
	Accounts []TradingAccount
	Tiros    []Tiro
}

// TotalCost suma el coste de compra de todas las cuentas del ciclo.
func (d CycleDashboard) TotalCost() float64 {
	total := 0.0
	for _, a := range d.Accounts {
		total += a.Cost
	}
	return total
}

// Summarize devuelve el resumen del ciclo. Si la API no trajo resumen de cuentas
// o de tiros, lo deriva de las cuentas y tiros cargados.
func (d CycleDashboard) Summarize() CycleSummary {
	s := d.Summary
	if s.TotalAccounts == 0 && len(d.Accounts) > 0 {
		s.AccountsByPhase = CountPhases(d.Accounts)
		s.TotalAccounts = s.AccountsByPhase.Total()
		s.RealAccounts = s.AccountsByPhase.Real
		if s.TotalAccounts > 0 {
			s.ConversionRatePct = float64(s.RealAccounts) / float64(s.TotalAccounts) * 100
		}
	}
	if s.TotalTiros == 0 && len(d.Tiros) > 0 {
		s.OpenTiros, s.ClosedTiros, s.TirosResult = SummarizeTiros(d.Tiros)
		s.TotalTiros = len(d.Tiros)
	}
	return s
}
