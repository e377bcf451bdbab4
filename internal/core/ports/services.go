package ports

import (
	"context"
	"time"

	"walletledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// CurrencyCatalog resolves a currency identifier to its descriptor.
// Pure lookup, no mutation. Returns nil, nil when the name is unknown;
// callers treat that as a validation failure, not a fatal error.
type CurrencyCatalog interface {
	Resolve(ctx context.Context, name string) (*domain.Currency, error)
}

// CurrencyCache is a best-effort read-through cache for currency
// descriptors. Get returns nil, nil on a miss.
type CurrencyCache interface {
	Get(ctx context.Context, name string) (*domain.Currency, error)
	Set(ctx context.Context, cur *domain.Currency, ttl time.Duration) error
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID int64, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID int64
	Email  string
}

// --- Service Ports (Business Logic) ---

// WalletService is the orchestrator for wallet creation, transaction
// posting and history queries. Each mutating operation runs as a single
// atomic unit of work: all mutations commit together or roll back together.
type WalletService interface {
	CreateWallet(ctx context.Context, req CreateWalletRequest) (*domain.WalletDetail, error)
	PostTransaction(ctx context.Context, req PostTransactionRequest) (*domain.WalletTransaction, error)
	GetWallet(ctx context.Context, userID int64) (*domain.WalletDetail, error)
	ListTransactions(ctx context.Context, userID int64, filter TransactionFilter) ([]domain.WalletTransaction, error)
	DeleteWallet(ctx context.Context, userID int64) error
}

// CreateWalletRequest holds validated input for wallet creation.
// UserID is injected by the authentication layer, never caller-supplied.
type CreateWalletRequest struct {
	UserID       int64
	CurrencyName string
	Deposit      decimal.Decimal
}

// PostTransactionRequest holds validated input for transaction posting.
// CurrencyName is optional; when present it must match the wallet's
// currency.
type PostTransactionRequest struct {
	UserID       int64
	CurrencyName string
	Reason       domain.TransactionReason
	Type         domain.TransactionType
	Value        decimal.Decimal
}

// AuthService defines authentication business logic.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error) // token, expiry, error
}

// RegisterRequest holds input for user registration.
type RegisterRequest struct {
	Email    string
	Name     string
	Password string
}

// AuditService records audit trail entries. Recording is fire-and-forget:
// it must never fail or delay the operation being audited.
type AuditService interface {
	Record(ctx context.Context, entry *domain.AuditEntry)
}
