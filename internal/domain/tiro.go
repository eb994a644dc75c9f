package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTiro se devuelve cuando la estructura de un tiro no es válida.
var ErrInvalidTiro = errors.New("invalid tiro")

// Direction es el sentido de todas las operaciones de una pata.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// TiroStatus es el estado de un tiro.
type TiroStatus string

const (
	TiroOpen   TiroStatus = "Abierto"
	TiroClosed TiroStatus = "Cerrado"
)

// Operation es una orden individual ejecutada en una cuenta.
type Operation struct {
	Volume     float64  // lotaje
	EntryPrice float64
	ExitPrice  *float64 // nil mientras la operación está abierta
	TicketID   string
	Result     *float64 // resultado en USD, nil si no se conoce
}

// AccountInLeg es una cuenta con sus operaciones dentro de una pata.
type AccountInLeg struct {
	AccountID  string
	Operations []Operation
}

// Leg es una de las dos patas del tiro.
type Leg struct {
	Direction Direction
	Accounts  []AccountInLeg
}

// Tiro es una operación cubierta en dos patas sobre cuentas distintas.
type Tiro struct {
	ID        string
	CycleID   string
	Symbol    string
	Status    TiroStatus
	Leg1      Leg
	Leg2      Leg
	Result    *float64 // resultado total registrado, nil si no se cerró
	Notes     string
	OpenDate  time.Time
	CloseDate *time.Time
}

// Validate comprueba la forma del tiro: direcciones opuestas, 1–2 cuentas por pata
// y al menos una operación por cuenta.
func (t Tiro) Validate() error {
	for i, leg := range []Leg{t.Leg1, t.Leg2} {
		if leg.Direction != Buy && leg.Direction != Sell {
			return fmt.Errorf("%w: leg%d direction %q", ErrInvalidTiro, i+1, leg.Direction)
		}
		if n := len(leg.Accounts); n < 1 || n > 2 {
			return fmt.Errorf("%w: leg%d must have 1 or 2 accounts, got %d", ErrInvalidTiro, i+1, n)
		}
		for _, acc := range leg.Accounts {
			if len(acc.Operations) == 0 {
				return fmt.Errorf("%w: leg%d account %s has no operations", ErrInvalidTiro, i+1, acc.AccountID)
			}
		}
	}
	if t.Leg1.Direction == t.Leg2.Direction {
		return fmt.Errorf("%w: legs must have opposite directions", ErrInvalidTiro)
	}
	return nil
}

// TotalResult devuelve el resultado del tiro. Si hay un resultado total registrado se usa
// ese; si no, la suma de los resultados conocidos de cada operación.
func (t Tiro) TotalResult() float64 {
	if t.Result != nil {
		return *t.Result
	}
	total := 0.0
	for _, leg := range []Leg{t.Leg1, t.Leg2} {
		for _, acc := range leg.Accounts {
			for _, op := range acc.Operations {
				if op.Result != nil {
					total += *op.Result
				}
			}
		}
	}
	return total
}

// SummarizeTiros cuenta tiros abiertos/cerrados y suma los resultados registrados.
func SummarizeTiros(tiros []Tiro) (open, closed int, result float64) {
	for _, t := range tiros {
		switch t.Status {
		case TiroOpen:
			open++
		case TiroClosed:
			closed++
		}
		if t.Result != nil {
			result += *t.Result
		}
	}
	return
}
