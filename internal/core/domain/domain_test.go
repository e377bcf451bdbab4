package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionType_IsValid(t *testing.T) {
	assert.True(t, TransactionTypeCredit.IsValid())
	assert.True(t, TransactionTypeDebit.IsValid())
	assert.False(t, TransactionType("refund").IsValid())
	assert.False(t, TransactionType("").IsValid())
}

func TestTransactionReason_IsValid(t *testing.T) {
	assert.True(t, TransactionReasonTransfer.IsValid())
	assert.True(t, TransactionReasonPayment.IsValid())
	assert.True(t, TransactionReasonRefund.IsValid())
	assert.False(t, TransactionReason("gift").IsValid())
}

func TestWalletTransaction_SignedValue(t *testing.T) {
	credit := WalletTransaction{
		Type:  TransactionTypeCredit,
		Value: decimal.RequireFromString("100.50"),
	}
	assert.True(t, credit.SignedValue().Equal(decimal.RequireFromString("100.50")))

	debit := WalletTransaction{
		Type:  TransactionTypeDebit,
		Value: decimal.RequireFromString("30.25"),
	}
	assert.True(t, debit.SignedValue().Equal(decimal.RequireFromString("-30.25")))
}

func TestWallet_BalanceEqualsSumOfDeltas(t *testing.T) {
	walletID := uuid.New()
	txns := []WalletTransaction{
		{WalletID: walletID, Type: TransactionTypeCredit, Value: decimal.RequireFromString("100.00")},
		{WalletID: walletID, Type: TransactionTypeDebit, Value: decimal.RequireFromString("30.00")},
		{WalletID: walletID, Type: TransactionTypeCredit, Value: decimal.RequireFromString("0.05")},
	}

	sum := decimal.Zero
	for i := range txns {
		sum = sum.Add(txns[i].SignedValue())
	}
	assert.True(t, sum.Round(BalanceScale).Equal(decimal.RequireFromString("70.05")))
}

func TestWallet_IsDeleted(t *testing.T) {
	w := Wallet{}
	assert.False(t, w.IsDeleted())

	now := time.Now()
	w.DeletedAt = &now
	assert.True(t, w.IsDeleted())
}
