package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stayflow/stayflow-backend/internal/db"
	"github.com/stayflow/stayflow-backend/internal/minisite"
)

// Public mini-site surface. No auth; tenants are addressed by slug and
// only active catalogs are exposed.

func (h *Handler) GetSite(c *gin.Context) {
	tenant, ok := h.siteTenant(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":          tenant.Name,
		"slug":          tenant.Slug,
		"custom_domain": tenant.CustomDomain,
	})
}

func (h *Handler) ListSiteProperties(c *gin.Context) {
	tenant, ok := h.siteTenant(c)
	if !ok {
		return
	}

	properties, err := h.repo.GetActivePropertiesByTenant(tenant.ID)
	if err != nil {
		h.logger.Error("Failed to load site catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	filter := minisite.Filter{City: c.Query("city")}
	if v := c.Query("min_price"); v != "" {
		filter.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.Query("max_price"); v != "" {
		filter.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.Query("guests"); v != "" {
		filter.Guests, _ = strconv.Atoi(v)
	}

	matched := minisite.FilterProperties(properties, filter)

	c.JSON(http.StatusOK, gin.H{
		"properties": matched,
		"total":      len(matched),
	})
}

func (h *Handler) GetSiteProperty(c *gin.Context) {
	tenant, ok := h.siteTenant(c)
	if !ok {
		return
	}

	property, err := h.repo.GetProperty(c.Param("id"), tenant.ID)
	if err != nil || !property.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	response := gin.H{"property": property}

	// Optional availability probe: ?check_in=2024-07-01&check_out=2024-07-05
	checkIn, errIn := time.Parse("2006-01-02", c.Query("check_in"))
	checkOut, errOut := time.Parse("2006-01-02", c.Query("check_out"))
	if errIn == nil && errOut == nil && checkOut.After(checkIn) {
		stays, err := h.repo.GetConfirmedReservationsForProperty(property.ID, checkIn, checkOut)
		if err != nil {
			h.logger.Error("Failed to check availability", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		response["available"] = minisite.IsAvailable(stays, checkIn, checkOut)
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) siteTenant(c *gin.Context) (*db.Tenant, bool) {
	tenant, err := h.repo.GetTenantBySlug(c.Param("slug"))
	if err != nil || !tenant.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return nil, false
	}
	return tenant, true
}

// Custom domain management (authenticated).

type SetDomainRequest struct {
	Domain string `json:"domain" binding:"required,fqdn"`
}

func (h *Handler) SetCustomDomain(c *gin.Context) {
	var req SetDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := c.GetString("tenant_id")

	if err := h.repo.UpdateTenantDomain(tenantID, req.Domain, db.DomainUnverified); err != nil {
		h.logger.Error("Failed to set custom domain", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set domain"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"domain": req.Domain,
		"status": db.DomainUnverified,
		"target": h.config.Minisite.PlatformHost,
	})
}

// VerifyCustomDomain runs the DNS/whois check synchronously on demand.
// The worker repeats the same check on a schedule.
func (h *Handler) VerifyCustomDomain(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	tenant := c.MustGet("tenant").(*db.Tenant)

	if tenant.CustomDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No custom domain configured"})
		return
	}

	result := h.domains.Check(c.Request.Context(), tenant.CustomDomain)

	status := db.DomainFailed
	if result.Verified {
		status = db.DomainVerified
	}

	if err := h.repo.UpdateTenantDomain(tenantID, tenant.CustomDomain, status); err != nil {
		h.logger.Error("Failed to save domain status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save domain status"})
		return
	}

	h.metrics.RecordDomainCheck(tenantID, tenant.CustomDomain, result.Verified, result.DaysToExpiry)

	c.JSON(http.StatusOK, result)
}
