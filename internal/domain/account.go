package domain

// Phase es la etapa de vida de una cuenta de prop firm.
type Phase string

const (
	PhaseOne     Phase = "fase1"
	PhaseTwo     Phase = "fase2"
	PhaseReal    Phase = "real"    // cuenta fondeada
	PhaseQuemada Phase = "quemada" // evaluación fallida
)

// AccountStatus es el estado administrativo de la cuenta.
type AccountStatus string

const (
	AccountPending AccountStatus = "Pending"
	AccountActive  AccountStatus = "Active"
	AccountBurned  AccountStatus = "Burned"
)

// TradingAccount es una cuenta comprada a una prop firm y asignada a un KYC.
type TradingAccount struct {
	ID            string
	KycID         string
	CycleID       string
	AccountNumber string
	PropFirm      string
	AccountSize   float64 // tamaño nominal en USD
	Cost          float64 // precio de compra en USD
	Phase         Phase
	Status        AccountStatus
}

// IsFunded devuelve true si la cuenta llegó a real.
func (a TradingAccount) IsFunded() bool {
	return a.Phase == PhaseReal
}

// CountPhases cuenta las cuentas por fase. Fases desconocidas se ignoran.
func CountPhases(accounts []TradingAccount) PhaseCounts {
	var p PhaseCounts
	for _, a := range accounts {
		switch a.Phase {
		case PhaseOne:
			p.Fase1++
		case PhaseTwo:
			p.Fase2++
		case PhaseReal:
			p.Real++
		case PhaseQuemada:
			p.Quemada++
		}
	}
	return p
}
