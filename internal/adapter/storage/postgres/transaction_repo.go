package postgres

import (
	"context"
	"fmt"
	"strings"

	"walletledger/internal/core/domain"
	"walletledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository. The table is
// append-only: there are deliberately no update or delete methods.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Append inserts an immutable ledger entry within a unit of work.
func (r *TransactionRepo) Append(ctx context.Context, tx pgx.Tx, t *domain.WalletTransaction) error {
	query := `INSERT INTO wallet_transaction (id, wallet_id, currency_id, reason, type, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.WalletID, t.CurrencyID, t.Reason, t.Type, t.Value, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet transaction: %w", err)
	}
	return nil
}

// ListByWallet fetches the wallet's transactions matching filter, newest
// first. Each call runs a fresh query, so callers always observe a
// consistent snapshot of the committed ledger.
func (r *TransactionRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, filter ports.TransactionFilter) ([]domain.WalletTransaction, error) {
	conditions := []string{"wallet_id = $1"}
	args := []any{walletID}
	argIdx := 2

	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.Reason != nil {
		conditions = append(conditions, fmt.Sprintf("reason = $%d", argIdx))
		args = append(args, *filter.Reason)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	query := fmt.Sprintf(`SELECT id, wallet_id, currency_id, reason, type, value, created_at
		FROM wallet_transaction WHERE %s ORDER BY created_at DESC`,
		strings.Join(conditions, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.WalletTransaction
	for rows.Next() {
		t := domain.WalletTransaction{}
		err := rows.Scan(
			&t.ID, &t.WalletID, &t.CurrencyID,
			&t.Reason, &t.Type, &t.Value, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wallet transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet transaction rows: %w", err)
	}
	return txns, nil
}
