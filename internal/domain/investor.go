package domain

import "time"

// Investment es el capital de un inversor asignado a un ciclo.
type Investment struct {
	CycleID          string
	Amount           float64
	ProfitPercentage float64 // % de ganancia acordado
	Date             time.Time
	Status           string // Active | Completed | Cancelled
}

// Investor aporta capital a uno o varios ciclos.
type Investor struct {
	ID            string
	Name          string
	Email         string
	Country       string
	TotalInvested float64
	Investments   []Investment
}

// InvestedIn suma lo invertido por el inversor en un ciclo concreto.
func (i Investor) InvestedIn(cycleID string) float64 {
	total := 0.0
	for _, inv := range i.Investments {
		if inv.CycleID == cycleID {
			total += inv.Amount
		}
	}
	return total
}
