package service

import (
	"context"
	"testing"
	"time"

	"walletledger/internal/core/domain"
	"walletledger/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func TestAuditService_Record_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, zerolog.Nop())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, entry *domain.AuditEntry) error {
			if entry.Action != domain.AuditActionWalletCreate {
				t.Errorf("expected WALLET_CREATE, got %s", entry.Action)
			}
			close(done)
			return nil
		},
	)

	userID := int64(7)
	svc.Record(context.Background(), &domain.AuditEntry{
		ID:           uuid.New(),
		UserID:       &userID,
		Action:       domain.AuditActionWalletCreate,
		ResourceType: "wallet",
		ResourceID:   uuid.New().String(),
		IPAddress:    "127.0.0.1",
		CreatedAt:    time.Now().UTC(),
	})

	select {
	case <-done:
		// OK
	case <-time.After(2 * time.Second):
		t.Fatal("audit entry not persisted in time")
	}
}

func TestAuditService_Record_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, zerolog.Nop())

	userID := int64(7)
	// Should not panic
	svc.Record(context.Background(), &domain.AuditEntry{
		ID:           uuid.New(),
		UserID:       &userID,
		Action:       domain.AuditActionLogin,
		ResourceType: "session",
		IPAddress:    "127.0.0.1",
		CreatedAt:    time.Now().UTC(),
	})

	time.Sleep(50 * time.Millisecond) // let goroutine run
}
