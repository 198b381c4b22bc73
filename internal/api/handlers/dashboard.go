package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetDashboardStats returns the aggregate numbers the management
// dashboard renders. Served from a short-lived cache unless
// ?refresh=true forces recomputation.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	refresh := c.Query("refresh") == "true"

	result, err := h.stats.Dashboard(c.Request.Context(), tenantID, refresh)
	if err != nil {
		h.logger.Error("Failed to compute dashboard stats",
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, result)
}
