package postgres

import (
	"context"
	"errors"
	"fmt"

	"walletledger/internal/core/domain"
	"walletledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet within a unit of work. The partial unique
// index on user_id guarantees at most one live wallet per user; a violation
// maps to ports.ErrWalletConflict so concurrent creates resolve to exactly
// one winner.
func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallet (id, user_id, currency_id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.UserID, w.CurrencyID, w.Balance, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("insert wallet: %w", ports.ErrWalletConflict)
		}
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByUserID fetches the user's live wallet with its currency descriptor
// and owning user resolved in one read-side join. Returns nil, nil when the
// user has no wallet.
func (r *WalletRepo) GetByUserID(ctx context.Context, userID int64) (*domain.WalletDetail, error) {
	query := `SELECT w.id, w.user_id, w.currency_id, w.balance, w.created_at, w.updated_at, w.deleted_at,
		c.id, c.name, c.title, c.is_national,
		u.id, u.email, u.name, u.created_at, u.updated_at
		FROM wallet w
		JOIN wallet_currency c ON c.id = w.currency_id
		JOIN users u ON u.id = w.user_id
		WHERE w.user_id = $1 AND w.deleted_at IS NULL`

	d := &domain.WalletDetail{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&d.ID, &d.UserID, &d.CurrencyID, &d.Balance, &d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
		&d.Currency.ID, &d.Currency.Name, &d.Currency.Title, &d.Currency.IsNational,
		&d.User.ID, &d.User.Email, &d.User.Name, &d.User.CreatedAt, &d.User.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by user id: %w", err)
	}
	return d, nil
}

// GetByUserIDForUpdate fetches the user's live wallet with pessimistic
// locking. This MUST be called within a transaction.
func (r *WalletRepo) GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*domain.Wallet, error) {
	query := `SELECT id, user_id, currency_id, balance, created_at, updated_at, deleted_at
		FROM wallet WHERE user_id = $1 AND deleted_at IS NULL FOR UPDATE`

	w := &domain.Wallet{}
	err := tx.QueryRow(ctx, query, userID).Scan(
		&w.ID, &w.UserID, &w.CurrencyID, &w.Balance,
		&w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet for update: %w", err)
	}
	return w, nil
}

// UpdateBalance persists a recomputed balance within a transaction. The
// balance is a derived value: callers compute it from the committed ledger,
// never from client input.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE wallet SET balance = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`

	tag, err := tx.Exec(ctx, query, balance, walletID)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

// SoftDelete marks a wallet as logically removed. The row and its
// transaction history stay behind for audit; there is no way back.
func (r *WalletRepo) SoftDelete(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) error {
	query := `UPDATE wallet SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	tag, err := tx.Exec(ctx, query, walletID)
	if err != nil {
		return fmt.Errorf("soft delete wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}
