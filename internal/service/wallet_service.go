package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"walletledger/internal/core/domain"
	"walletledger/internal/core/ports"
	"walletledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletServiceImpl implements ports.WalletService. Every mutating
// operation runs inside a single database transaction: the wallet row,
// the ledger entry and the recomputed balance commit together or not
// at all.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	catalog    ports.CurrencyCatalog
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	catalog ports.CurrencyCatalog,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		catalog:    catalog,
		transactor: transactor,
		log:        log,
	}
}

// CreateWallet opens the user's wallet and posts the mandatory initial
// deposit as the wallet's first ledger entry. Wallet insert, deposit
// entry and balance all commit in one transaction; a failure at any
// step leaves no wallet behind.
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, req ports.CreateWalletRequest) (*domain.WalletDetail, error) {
	if req.UserID == 0 {
		return nil, apperror.ErrUserRequired()
	}

	deposit := req.Deposit.Round(domain.BalanceScale)
	if !deposit.IsPositive() {
		return nil, apperror.FieldError("deposit", "must be greater than zero")
	}

	currency, err := s.catalog.Resolve(ctx, req.CurrencyName)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("resolve currency: %w", err))
	}
	if currency == nil {
		return nil, apperror.ErrCurrencyNotFound()
	}

	// Cheap precheck; the partial unique index remains the authority
	// under concurrency.
	existing, err := s.walletRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check existing wallet: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrWalletExists()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// The wallet opens empty; the initial deposit entry below establishes
	// the balance, keeping balance == sum of committed entries from the
	// first commit on.
	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:         uuid.New(),
		UserID:     req.UserID,
		CurrencyID: currency.ID,
		Balance:    decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.walletRepo.Create(ctx, dbTx, wallet); err != nil {
		if errors.Is(err, ports.ErrWalletConflict) {
			return nil, apperror.ErrWalletExists()
		}
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	txn := &domain.WalletTransaction{
		ID:         uuid.New(),
		WalletID:   wallet.ID,
		CurrencyID: currency.ID,
		Reason:     domain.TransactionReasonTransfer,
		Type:       domain.TransactionTypeCredit,
		Value:      deposit,
		CreatedAt:  now,
	}
	if err := s.txRepo.Append(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append initial deposit: %w", err))
	}

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, deposit); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("set initial balance: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Int64("user_id", req.UserID).
		Str("currency", currency.Name).
		Str("deposit", deposit.StringFixed(domain.BalanceScale)).
		Msg("wallet created")

	detail, err := s.walletRepo.GetByUserID(ctx, req.UserID)
	if err != nil || detail == nil {
		return nil, apperror.InternalError(fmt.Errorf("load created wallet: %w", err))
	}
	return detail, nil
}

// PostTransaction appends a credit or debit to the user's wallet and
// moves the balance by the signed delta. The wallet row is locked for
// the duration of the transaction so concurrent postings serialize.
func (s *WalletServiceImpl) PostTransaction(ctx context.Context, req ports.PostTransactionRequest) (*domain.WalletTransaction, error) {
	if req.UserID == 0 {
		return nil, apperror.ErrUserRequired()
	}
	if !req.Type.IsValid() {
		return nil, apperror.FieldError("type", "must be credit or debit")
	}
	if !req.Reason.IsValid() {
		return nil, apperror.FieldError("reason", "must be transfer, payment or refund")
	}

	value := req.Value.Round(domain.BalanceScale)
	if !value.IsPositive() {
		return nil, apperror.FieldError("value", "must be greater than zero")
	}

	var currency *domain.Currency
	if req.CurrencyName != "" {
		var err error
		currency, err = s.catalog.Resolve(ctx, req.CurrencyName)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("resolve currency: %w", err))
		}
		if currency == nil {
			return nil, apperror.ErrCurrencyNotFound()
		}
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByUserIDForUpdate(ctx, dbTx, req.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNoWallet()
	}

	if currency != nil && currency.ID != wallet.CurrencyID {
		return nil, apperror.FieldError("currency", "does not match wallet currency")
	}

	txn := &domain.WalletTransaction{
		ID:         uuid.New(),
		WalletID:   wallet.ID,
		CurrencyID: wallet.CurrencyID,
		Reason:     req.Reason,
		Type:       req.Type,
		Value:      value,
		CreatedAt:  time.Now().UTC(),
	}

	newBalance := wallet.Balance.Add(txn.SignedValue()).Round(domain.BalanceScale)
	if newBalance.IsNegative() {
		return nil, apperror.ErrInsufficientFunds()
	}

	if err := s.txRepo.Append(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append transaction: %w", err))
	}

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("wallet_id", wallet.ID.String()).
		Str("type", string(txn.Type)).
		Str("reason", string(txn.Reason)).
		Str("value", value.StringFixed(domain.BalanceScale)).
		Str("balance", newBalance.StringFixed(domain.BalanceScale)).
		Msg("transaction posted")

	return txn, nil
}

// GetWallet returns the user's wallet with currency and owner resolved.
func (s *WalletServiceImpl) GetWallet(ctx context.Context, userID int64) (*domain.WalletDetail, error) {
	if userID == 0 {
		return nil, apperror.ErrUserRequired()
	}

	detail, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if detail == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return detail, nil
}

// ListTransactions returns the wallet's history, newest first.
func (s *WalletServiceImpl) ListTransactions(ctx context.Context, userID int64, filter ports.TransactionFilter) ([]domain.WalletTransaction, error) {
	if userID == 0 {
		return nil, apperror.ErrUserRequired()
	}

	detail, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if detail == nil {
		return nil, apperror.ErrNoWallet()
	}

	txns, err := s.txRepo.ListByWallet(ctx, detail.ID, filter)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}

// DeleteWallet soft-deletes the user's wallet. The row and its ledger
// survive for audit; the partial unique index frees the user to open a
// new wallet afterwards.
func (s *WalletServiceImpl) DeleteWallet(ctx context.Context, userID int64) error {
	if userID == 0 {
		return apperror.ErrUserRequired()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByUserIDForUpdate(ctx, dbTx, userID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return apperror.ErrNoWallet()
	}

	if err := s.walletRepo.SoftDelete(ctx, dbTx, wallet.ID); err != nil {
		return apperror.InternalError(fmt.Errorf("soft delete wallet: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Int64("user_id", userID).
		Msg("wallet deleted")

	return nil
}
