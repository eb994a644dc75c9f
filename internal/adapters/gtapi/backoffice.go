package gtapi

// backoffice.go: KYCs con relaciones e inversores.
//
// ListKYCs dispara las requests de cuentas y payouts de cada KYC en paralelo.
// El rate limiter de doWithRetry marca el ritmo; el errgroup solo acota cuántas
// goroutines hay vivas a la vez.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/gtfunds/calculos/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	kycsPath         = "/kycs/"
	kycAccountsPath  = "/kycs/%s/accounts/"
	kycPayoutsPath   = "/kycs/%s/payouts/"
	investorsPath    = "/investors/"
	relationsWorkers = 8
)

// ListKYCs devuelve todos los KYCs con sus cuentas y payouts.
// Si fallan las relaciones de un KYC se devuelve con listas vacías, igual que el
// dashboard web; solo falla si no se puede obtener la lista de KYCs.
func (c *Client) ListKYCs(ctx context.Context) ([]domain.KYC, error) {
	var body json.RawMessage
	if err := c.get(ctx, c.url(kycsPath), &body); err != nil {
		return nil, fmt.Errorf("gtapi.ListKYCs: %w", err)
	}
	raw, err := decodeKYCList(body)
	if err != nil {
		return nil, fmt.Errorf("gtapi.ListKYCs: %w", err)
	}

	kycs := make([]domain.KYC, len(raw))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(relationsWorkers)

	for i, r := range raw {
		kycs[i] = mapKYC(r)
		g.Go(func() error {
			accounts, payouts, err := c.fetchRelations(gctx, kycs[i].ID)
			if err != nil {
				slog.Warn("kyc relations unavailable", "kyc_id", kycs[i].ID, "err", err)
				accounts, payouts = []domain.TradingAccount{}, []domain.Payout{}
			}
			kycs[i].Accounts = accounts
			kycs[i].Payouts = payouts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("gtapi.ListKYCs: %w", err)
	}

	slog.Debug("kycs fetched", "total", len(kycs))
	return kycs, nil
}

// ListInvestors devuelve todos los inversores con sus inversiones.
func (c *Client) ListInvestors(ctx context.Context) ([]domain.Investor, error) {
	var raw []investorDTO
	if err := c.get(ctx, c.url(investorsPath), &raw); err != nil {
		return nil, fmt.Errorf("gtapi.ListInvestors: %w", err)
	}
	return mapInvestors(raw), nil
}

// fetchRelations obtiene cuentas y payouts de un KYC.
func (c *Client) fetchRelations(ctx context.Context, kycID string) ([]domain.TradingAccount, []domain.Payout, error) {
	id := url.PathEscape(kycID)

	var accounts []accountDTO
	if err := c.get(ctx, c.url(kycAccountsPath, id), &accounts); err != nil {
		return nil, nil, fmt.Errorf("accounts: %w", err)
	}
	var payouts []payoutDTO
	if err := c.get(ctx, c.url(kycPayoutsPath, id), &payouts); err != nil {
		return nil, nil, fmt.Errorf("payouts: %w", err)
	}
	return mapAccounts(accounts), mapPayouts(payouts), nil
}

// decodeKYCList acepta tanto un array como el sobre paginado {"data": [...]}.
func decodeKYCList(body []byte) ([]kycDTO, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '{' {
		var page kycPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode kyc page: %w", err)
		}
		return page.Data, nil
	}
	var list []kycDTO
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode kyc list: %w", err)
	}
	return list, nil
}
