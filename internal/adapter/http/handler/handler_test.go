package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"walletledger/internal/adapter/http/dto"
	"walletledger/internal/adapter/http/middleware"
	"walletledger/internal/core/domain"
	"walletledger/internal/core/ports"
	"walletledger/internal/core/ports/mocks"
	"walletledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Auth Handler Tests ---

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), ports.RegisterRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "password123",
	}).Return(&domain.User{
		ID:    42,
		Email: "alice@example.com",
		Name:  "Alice",
	}, nil)

	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "password123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(42), data["id"])
	assert.Equal(t, "alice@example.com", data["email"])
}

func TestRegister_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	// Empty body => binding error
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrEmailExists())

	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "taken@example.com",
		Name:     "Taken",
		Password: "password123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(24 * time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), "alice@example.com", "password123").Return("jwt-token-123", expiry, nil)

	body, _ := json.Marshal(dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "jwt-token-123", data["token"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "bad@example.com", "bad-pass9").Return("", time.Time{}, apperror.ErrInvalidCredentials())

	body, _ := json.Marshal(dto.LoginRequest{
		Email:    "bad@example.com",
		Password: "bad-pass9",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Wallet Handler Tests ---

func testWalletDetail(userID int64) *domain.WalletDetail {
	return &domain.WalletDetail{
		Wallet: domain.Wallet{
			ID:         uuid.New(),
			UserID:     userID,
			CurrencyID: 1,
			Balance:    decimal.RequireFromString("100.00"),
			CreatedAt:  time.Now().UTC(),
		},
		Currency: domain.Currency{ID: 1, Name: "USD", Title: "US Dollar"},
		User:     domain.User{ID: userID, Email: "alice@example.com", Name: "Alice"},
	}
}

func TestCreateWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	userID := int64(7)
	detail := testWalletDetail(userID)

	mockWallet.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req ports.CreateWalletRequest) (*domain.WalletDetail, error) {
			assert.Equal(t, userID, req.UserID)
			assert.Equal(t, "USD", req.CurrencyName)
			assert.True(t, req.Deposit.Equal(decimal.RequireFromString("100.00")))
			return detail, nil
		})

	body, _ := json.Marshal(dto.CreateWalletRequest{
		Currency: "USD",
		Deposit:  decimal.RequireFromString("100.00"),
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, userID)

	h.CreateWallet(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "100.00", data["balance"])
	assert.Equal(t, "USD", data["currency"])
}

func TestCreateWallet_MissingAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	h.CreateWallet(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateWallet_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrWalletExists())

	body, _ := json.Marshal(dto.CreateWalletRequest{
		Currency: "USD",
		Deposit:  decimal.RequireFromString("10.00"),
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, int64(7))

	h.CreateWallet(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WLT_002", resp["error_code"])
	errs := resp["errors"].(map[string]interface{})
	assert.Equal(t, "the user already has a wallet", errs["user_id"])
}

func TestCreateWallet_InvalidCurrencyFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	body, _ := json.Marshal(map[string]interface{}{
		"currency": "us dollars",
		"deposit":  "10.00",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, int64(7))

	h.CreateWallet(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateWallet_MissingDeposit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	// No deposit field at all: binding rejects it before the service runs.
	body, _ := json.Marshal(map[string]interface{}{
		"currency": "USD",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, int64(7))

	h.CreateWallet(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WLT_001", resp["error_code"])
}

func TestGetWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	userID := int64(7)
	mockWallet.EXPECT().GetWallet(gomock.Any(), userID).Return(testWalletDetail(userID), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(middleware.CtxUserID, userID)

	h.GetWallet(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "US Dollar", data["currency_title"])
	assert.Equal(t, "Alice", data["user_name"])
}

func TestGetWallet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().GetWallet(gomock.Any(), int64(7)).Return(nil, apperror.ErrWalletNotFound())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(middleware.CtxUserID, int64(7))

	h.GetWallet(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().DeleteWallet(gomock.Any(), int64(7)).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
	c.Set(middleware.CtxUserID, int64(7))

	h.DeleteWallet(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPostTransaction_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	userID := int64(7)
	walletID := uuid.New()
	txID := uuid.New()

	mockWallet.EXPECT().PostTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req ports.PostTransactionRequest) (*domain.WalletTransaction, error) {
			assert.Equal(t, userID, req.UserID)
			assert.Equal(t, domain.TransactionTypeDebit, req.Type)
			assert.Equal(t, domain.TransactionReasonPayment, req.Reason)
			return &domain.WalletTransaction{
				ID:        txID,
				WalletID:  walletID,
				Reason:    req.Reason,
				Type:      req.Type,
				Value:     req.Value,
				CreatedAt: time.Now().UTC(),
			}, nil
		})

	body, _ := json.Marshal(dto.PostTransactionRequest{
		Reason: "payment",
		Type:   "debit",
		Value:  decimal.RequireFromString("30.00"),
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, userID)

	h.PostTransaction(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, txID.String(), data["id"])
	assert.Equal(t, "debit", data["type"])
	assert.Equal(t, "30.00", data["value"])
}

func TestPostTransaction_InvalidType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	body, _ := json.Marshal(map[string]interface{}{
		"reason": "payment",
		"type":   "withdrawal",
		"value":  "30.00",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, int64(7))

	h.PostTransaction(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostTransaction_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().PostTransaction(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrInsufficientFunds())

	body, _ := json.Marshal(dto.PostTransactionRequest{
		Reason: "payment",
		Type:   "debit",
		Value:  decimal.RequireFromString("9999.00"),
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, int64(7))

	h.PostTransaction(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WLT_004", resp["error_code"])
}

func TestListTransactions_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	userID := int64(7)
	walletID := uuid.New()

	mockWallet.EXPECT().ListTransactions(gomock.Any(), userID, gomock.Any()).DoAndReturn(
		func(_ interface{}, _ int64, filter ports.TransactionFilter) ([]domain.WalletTransaction, error) {
			require.NotNil(t, filter.Type)
			assert.Equal(t, domain.TransactionTypeDebit, *filter.Type)
			return []domain.WalletTransaction{
				{ID: uuid.New(), WalletID: walletID, Type: domain.TransactionTypeDebit, Reason: domain.TransactionReasonPayment, Value: decimal.RequireFromString("30.00")},
			}, nil
		})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?type=debit", nil)
	c.Set(middleware.CtxUserID, userID)

	h.ListTransactions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	assert.Len(t, items, 1)
	assert.Equal(t, float64(1), data["count"])
}

func TestListTransactions_BadFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?from=yesterday", nil)
	c.Set(middleware.CtxUserID, int64(7))

	h.ListTransactions(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Health Check Test ---

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck()(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}
