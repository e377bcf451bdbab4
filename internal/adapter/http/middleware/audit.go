package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"walletledger/internal/core/domain"
	"walletledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditTrail records successful write operations. It runs after the
// handler and maps method plus path to an audit action; reads and
// failed requests leave no trail.
func AuditTrail(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		action, resourceType := mapPathToAction(c.Request.URL.Path, c.Request.Method)
		if action == "" {
			return
		}

		var userID *int64
		if uid, exists := c.Get(CtxUserID); exists {
			if id, ok := uid.(int64); ok {
				userID = &id
			}
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		auditSvc.Record(c.Request.Context(), &domain.AuditEntry{
			ID:           uuid.New(),
			UserID:       userID,
			Action:       action,
			ResourceType: resourceType,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

func mapPathToAction(path, method string) (domain.AuditAction, string) {
	switch {
	case path == "/api/v1/auth/register" && method == http.MethodPost:
		return domain.AuditActionRegister, "user"
	case path == "/api/v1/auth/login" && method == http.MethodPost:
		return domain.AuditActionLogin, "session"
	case path == "/api/v1/wallet" && method == http.MethodPost:
		return domain.AuditActionWalletCreate, "wallet"
	case path == "/api/v1/wallet" && method == http.MethodDelete:
		return domain.AuditActionWalletDelete, "wallet"
	case path == "/api/v1/wallet/transactions" && method == http.MethodPost:
		return domain.AuditActionTransactionPost, "transaction"
	}
	return "", ""
}
