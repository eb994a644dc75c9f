package ports

import (
	"context"

	"github.com/gtfunds/calculos/internal/domain"
)

// BackOfficeProvider obtiene clientes e inversores para la vista general.
type BackOfficeProvider interface {
	// ListKYCs devuelve los KYCs con sus cuentas y payouts ya cargados.
	ListKYCs(ctx context.Context) ([]domain.KYC, error)

	ListInvestors(ctx context.Context) ([]domain.Investor, error)
}
