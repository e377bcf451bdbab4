package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceScale is the fixed number of fractional digits a wallet balance
// and transaction value are stored with.
const BalanceScale = 2

// Wallet is a per-user monetary account in a single currency. Balance is a
// derived value: at every point after a committed unit of work it equals the
// sum of signed deltas of the wallet's committed transactions. DeletedAt
// non-nil marks the wallet as soft-deleted; the row and its transaction
// history are retained for audit.
type Wallet struct {
	ID         uuid.UUID       `json:"id"`
	UserID     int64           `json:"user_id"`
	CurrencyID int64           `json:"currency_id"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  *time.Time      `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the wallet has been soft-deleted.
func (w *Wallet) IsDeleted() bool {
	return w.DeletedAt != nil
}

// WalletDetail is the read-side projection of a wallet with its currency
// descriptor and owning user resolved, so presentation layers need no
// further lookups.
type WalletDetail struct {
	Wallet
	Currency Currency `json:"currency"`
	User     User     `json:"user"`
}
