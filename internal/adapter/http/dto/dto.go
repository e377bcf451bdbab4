package dto

import "github.com/shopspring/decimal"

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// CreateWalletRequest is the request body for wallet creation. The
// deposit funds the wallet's first ledger entry.
type CreateWalletRequest struct {
	Currency string          `json:"currency" binding:"required,currency_name"`
	Deposit  decimal.Decimal `json:"deposit" binding:"required"`
}

// PostTransactionRequest is the request body for posting a ledger entry.
// Currency is optional; when present it must match the wallet's currency.
type PostTransactionRequest struct {
	Reason   string          `json:"reason" binding:"required,oneof=transfer payment refund"`
	Type     string          `json:"type" binding:"required,oneof=credit debit"`
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency" binding:"omitempty,currency_name"`
}

// WalletResponse is the response body for wallet queries.
type WalletResponse struct {
	ID        string `json:"id"`
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	Currency  string `json:"currency"`       // currency code, e.g. USD
	Title     string `json:"currency_title"` // human readable name
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at"`
}

// TransactionResponse is the response body for a single ledger entry.
type TransactionResponse struct {
	ID        string `json:"id"`
	WalletID  string `json:"wallet_id"`
	Reason    string `json:"reason"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	CreatedAt string `json:"created_at"`
}

// TransactionListResponse wraps a transaction history query.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Count int                   `json:"count"`
}
