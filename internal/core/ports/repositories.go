package ports

import (
	"context"
	"errors"
	"time"

	"walletledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CurrencyRepository defines read-only access to the currency reference table.
type CurrencyRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Currency, error)
	GetByID(ctx context.Context, id int64) (*domain.Currency, error)
}

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside a unit of work; GetByUserIDForUpdate
// takes a row-level lock so concurrent balance updates serialize.
type WalletRepository interface {
	// Create inserts a wallet. Returns domain.ErrWalletConflict-mapped
	// storage errors when the partial unique index on user_id rejects a
	// second live wallet.
	Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	// GetByUserID resolves the user's live wallet together with its
	// currency descriptor and owning user (read-side join). Returns
	// nil, nil when the user has no wallet.
	GetByUserID(ctx context.Context, userID int64) (*domain.WalletDetail, error)
	// GetByUserIDForUpdate fetches the user's live wallet with a
	// pessimistic lock. Must be called within a transaction.
	GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*domain.Wallet, error)
	// UpdateBalance persists a recomputed balance within a transaction.
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error
	// SoftDelete marks the wallet as logically removed.
	SoftDelete(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) error
}

// ErrWalletConflict is the sentinel WalletRepository.Create returns when a
// live wallet already exists for the user.
var ErrWalletConflict = errors.New("wallet already exists for user")

// TransactionRepository defines the append-only ledger store.
type TransactionRepository interface {
	// Append inserts an immutable transaction record within a unit of
	// work. There is no update or delete operation.
	Append(ctx context.Context, tx pgx.Tx, txn *domain.WalletTransaction) error
	// ListByWallet returns the wallet's transactions matching filter,
	// ordered by created_at descending. Each call yields a fresh snapshot.
	ListByWallet(ctx context.Context, walletID uuid.UUID, filter TransactionFilter) ([]domain.WalletTransaction, error)
}

// TransactionFilter narrows a transaction history query. Nil members match
// everything.
type TransactionFilter struct {
	Type   *domain.TransactionType
	Reason *domain.TransactionReason
	From   *time.Time
	To     *time.Time
}

// DBTransactor provides database transaction management for units of work.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// AuditRepository persists audit trail entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
}
