package service

import (
	"context"
	"testing"
	"time"

	"walletledger/internal/core/domain"
	"walletledger/internal/core/ports"
	"walletledger/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authTestDeps struct {
	svc      *AuthServiceImpl
	userRepo *mocks.MockUserRepository
	hashSvc  *mocks.MockHashService
	tokenSvc *mocks.MockTokenService
	ctrl     *gomock.Controller
}

func setupAuthService(t *testing.T) *authTestDeps {
	ctrl := gomock.NewController(t)
	d := &authTestDeps{
		userRepo: mocks.NewMockUserRepository(ctrl),
		hashSvc:  mocks.NewMockHashService(ctrl),
		tokenSvc: mocks.NewMockTokenService(ctrl),
		ctrl:     ctrl,
	}
	d.svc = NewAuthService(d.userRepo, d.hashSvc, d.tokenSvc)
	return d
}

func TestAuthService_Register_Success(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := ports.RegisterRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "S3cret!pass",
	}

	d.userRepo.EXPECT().GetByEmail(ctx, req.Email).Return(nil, nil)
	d.hashSvc.EXPECT().Hash(req.Password).Return("$argon2id$hash", nil)
	d.userRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, user *domain.User) error {
			assert.Equal(t, req.Email, user.Email)
			assert.Equal(t, "$argon2id$hash", user.PasswordHash)
			user.ID = 42
			return nil
		})

	user, err := d.svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(42), user.ID)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.userRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(&domain.User{ID: 1}, nil)

	user, err := d.svc.Register(ctx, ports.RegisterRequest{Email: "alice@example.com", Password: "x"})
	assert.Nil(t, user)
	assertAppError(t, err, "AUTH_002")
}

func TestAuthService_Login_Success(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	expiry := time.Now().Add(24 * time.Hour)

	d.userRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(&domain.User{
		ID:           42,
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$hash",
	}, nil)
	d.hashSvc.EXPECT().Verify("S3cret!pass", "$argon2id$hash").Return(true, nil)
	d.tokenSvc.EXPECT().Generate(int64(42), "alice@example.com").Return("jwt-token", expiry, nil)

	token, exp, err := d.svc.Login(ctx, "alice@example.com", "S3cret!pass")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, expiry, exp)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.userRepo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, nil)

	token, _, err := d.svc.Login(ctx, "ghost@example.com", "whatever")
	assert.Empty(t, token)
	assertAppError(t, err, "AUTH_001")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.userRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(&domain.User{
		ID:           42,
		PasswordHash: "$argon2id$hash",
	}, nil)
	d.hashSvc.EXPECT().Verify("wrong", "$argon2id$hash").Return(false, nil)

	token, _, err := d.svc.Login(ctx, "alice@example.com", "wrong")
	assert.Empty(t, token)
	assertAppError(t, err, "AUTH_001")
}
