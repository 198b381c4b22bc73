package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stayflow/stayflow-backend/internal/db"
)

// TenantContext resolves the authenticated tenant row and rejects
// requests from disabled accounts. Runs after AuthRequired.
func TenantContext(repo *db.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetString("tenant_id")
		if tenantID == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Tenant not resolved"})
			c.Abort()
			return
		}

		tenant, err := repo.GetTenant(tenantID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown tenant"})
			c.Abort()
			return
		}

		if !tenant.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account disabled"})
			c.Abort()
			return
		}

		c.Set("tenant", tenant)
		c.Next()
	}
}
