package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionRegister        AuditAction = "REGISTER"
	AuditActionLogin           AuditAction = "LOGIN"
	AuditActionWalletCreate    AuditAction = "WALLET_CREATE"
	AuditActionWalletDelete    AuditAction = "WALLET_DELETE"
	AuditActionTransactionPost AuditAction = "TRANSACTION_POST"
)

// AuditEntry records a single audited action. Wallet deletion is soft,
// so together with the append-only ledger these rows give a complete
// trail of who changed what and from where.
type AuditEntry struct {
	ID           uuid.UUID   `json:"id"`
	UserID       *int64      `json:"user_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
