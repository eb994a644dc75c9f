package domain

import "time"

// KYC es el registro de identidad de un cliente. Es dueño de cuentas y payouts.
type KYC struct {
	ID               string
	Name             string
	Email            string
	Phone            string
	Active           bool
	DashboardEnabled bool
	CycleID          string
	SubmittedDate    time.Time
	Accounts         []TradingAccount
	Payouts          []Payout
}

// AUM suma el tamaño nominal de las cuentas del cliente.
func (k KYC) AUM() float64 {
	total := 0.0
	for _, a := range k.Accounts {
		total += a.AccountSize
	}
	return total
}

// TotalPayouts suma los retiros registrados del cliente.
func (k KYC) TotalPayouts() float64 {
	total := 0.0
	for _, p := range k.Payouts {
		total += p.Amount
	}
	return total
}

// Payout es un retiro registrado contra un KYC.
type Payout struct {
	ID     string
	KycID  string
	Amount float64
	Date   time.Time
}
