package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType determines the sign of a transaction's balance delta.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// TransactionReason categorizes why a balance movement happened.
type TransactionReason string

const (
	TransactionReasonTransfer TransactionReason = "transfer"
	TransactionReasonPayment  TransactionReason = "payment"
	TransactionReasonRefund   TransactionReason = "refund"
)

// IsValid reports whether r is a known transaction reason.
func (r TransactionReason) IsValid() bool {
	switch r {
	case TransactionReasonTransfer, TransactionReasonPayment, TransactionReasonRefund:
		return true
	}
	return false
}

// WalletTransaction is an immutable, append-only ledger entry. Value is a
// positive magnitude; the sign of the balance delta is derived from Type.
// A transaction belongs to exactly one wallet and carries the wallet's
// currency; it is never updated or physically deleted once committed.
type WalletTransaction struct {
	ID         uuid.UUID         `json:"id"`
	WalletID   uuid.UUID         `json:"wallet_id"`
	CurrencyID int64             `json:"currency_id"`
	Reason     TransactionReason `json:"reason"`
	Type       TransactionType   `json:"type"`
	Value      decimal.Decimal   `json:"value"`
	CreatedAt  time.Time         `json:"created_at"`
}

// SignedValue returns the balance delta this transaction contributes:
// positive for credits, negative for debits.
func (t *WalletTransaction) SignedValue() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Value.Neg()
	}
	return t.Value
}
