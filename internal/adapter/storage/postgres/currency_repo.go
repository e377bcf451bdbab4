package postgres

import (
	"context"
	"errors"
	"fmt"

	"walletledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CurrencyRepo implements ports.CurrencyRepository against the reference
// table. Read-only.
type CurrencyRepo struct {
	pool Pool
}

// NewCurrencyRepo creates a new CurrencyRepo.
func NewCurrencyRepo(pool Pool) *CurrencyRepo {
	return &CurrencyRepo{pool: pool}
}

// GetByName fetches a currency by its short name (e.g. "USD").
// Returns nil, nil when the name is unknown.
func (r *CurrencyRepo) GetByName(ctx context.Context, name string) (*domain.Currency, error) {
	query := `SELECT id, name, title, is_national FROM wallet_currency WHERE name = $1`
	return r.scanCurrency(r.pool.QueryRow(ctx, query, name))
}

// GetByID fetches a currency by ID. Returns nil, nil when no row matches.
func (r *CurrencyRepo) GetByID(ctx context.Context, id int64) (*domain.Currency, error) {
	query := `SELECT id, name, title, is_national FROM wallet_currency WHERE id = $1`
	return r.scanCurrency(r.pool.QueryRow(ctx, query, id))
}

func (r *CurrencyRepo) scanCurrency(row pgx.Row) (*domain.Currency, error) {
	c := &domain.Currency{}
	err := row.Scan(&c.ID, &c.Name, &c.Title, &c.IsNational)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan currency: %w", err)
	}
	return c, nil
}
