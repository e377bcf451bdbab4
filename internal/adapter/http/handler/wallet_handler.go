package handler

import (
	"time"

	"walletledger/internal/adapter/http/dto"
	"walletledger/internal/adapter/http/middleware"
	"walletledger/internal/core/domain"
	"walletledger/internal/core/ports"
	"walletledger/pkg/apperror"
	"walletledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet and transaction endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// CreateWallet handles POST /api/v1/wallet.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	detail, err := h.walletSvc.CreateWallet(c.Request.Context(), ports.CreateWalletRequest{
		UserID:       userID,
		CurrencyName: req.Currency,
		Deposit:      req.Deposit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWalletResponse(detail))
}

// GetWallet handles GET /api/v1/wallet.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	detail, err := h.walletSvc.GetWallet(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWalletResponse(detail))
}

// DeleteWallet handles DELETE /api/v1/wallet.
func (h *WalletHandler) DeleteWallet(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	if err := h.walletSvc.DeleteWallet(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"deleted": true})
}

// PostTransaction handles POST /api/v1/wallet/transactions.
func (h *WalletHandler) PostTransaction(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	txn, err := h.walletSvc.PostTransaction(c.Request.Context(), ports.PostTransactionRequest{
		UserID:       userID,
		CurrencyName: req.Currency,
		Reason:       domain.TransactionReason(req.Reason),
		Type:         domain.TransactionType(req.Type),
		Value:        req.Value,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// ListTransactions handles GET /api/v1/wallet/transactions.
// Optional query params: type, reason, from, to (RFC 3339).
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	txns, err := h.walletSvc.ListTransactions(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResponse(&txns[i]))
	}

	response.OK(c, dto.TransactionListResponse{
		Items: items,
		Count: len(items),
	})
}

func authUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(middleware.CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func parseTransactionFilter(c *gin.Context) (ports.TransactionFilter, error) {
	var filter ports.TransactionFilter

	if raw := c.Query("type"); raw != "" {
		tt := domain.TransactionType(raw)
		if !tt.IsValid() {
			return filter, apperror.FieldError("type", "must be credit or debit")
		}
		filter.Type = &tt
	}
	if raw := c.Query("reason"); raw != "" {
		tr := domain.TransactionReason(raw)
		if !tr.IsValid() {
			return filter, apperror.FieldError("reason", "must be transfer, payment or refund")
		}
		filter.Reason = &tr
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, apperror.FieldError("from", "must be an RFC 3339 timestamp")
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, apperror.FieldError("to", "must be an RFC 3339 timestamp")
		}
		filter.To = &to
	}

	return filter, nil
}

func toWalletResponse(d *domain.WalletDetail) dto.WalletResponse {
	return dto.WalletResponse{
		ID:        d.ID.String(),
		UserID:    d.UserID,
		UserName:  d.User.Name,
		Currency:  d.Currency.Name,
		Title:     d.Currency.Title,
		Balance:   d.Balance.StringFixed(domain.BalanceScale),
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toTransactionResponse(t *domain.WalletTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        t.ID.String(),
		WalletID:  t.WalletID.String(),
		Reason:    string(t.Reason),
		Type:      string(t.Type),
		Value:     t.Value.StringFixed(domain.BalanceScale),
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
}
