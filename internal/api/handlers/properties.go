package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stayflow/stayflow-backend/internal/db"
)

type CreatePropertyRequest struct {
	Name          string                 `json:"name" binding:"required,min=1,max=255"`
	Description   string                 `json:"description"`
	City          string                 `json:"city"`
	Address       string                 `json:"address"`
	PricePerNight float64                `json:"price_per_night" binding:"required,gt=0"`
	MaxGuests     int                    `json:"max_guests" binding:"required,min=1,max=50"`
	Bedrooms      int                    `json:"bedrooms" binding:"min=0,max=50"`
	Amenities     map[string]interface{} `json:"amenities"`
	Photos        []string               `json:"photos"`
	IsActive      *bool                  `json:"is_active" binding:"required"`
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := c.GetString("tenant_id")
	tenant := c.MustGet("tenant").(*db.Tenant)

	count, err := h.repo.CountPropertiesByTenant(tenantID)
	if err != nil {
		h.logger.Error("Failed to count properties", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if count >= tenant.MaxProperties {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Property limit exceeded for your plan"})
		return
	}

	property := &db.Property{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		Name:          req.Name,
		Description:   req.Description,
		City:          req.City,
		Address:       req.Address,
		PricePerNight: req.PricePerNight,
		MaxGuests:     req.MaxGuests,
		Bedrooms:      req.Bedrooms,
		Amenities:     db.JSONB(req.Amenities),
		Photos:        db.StringSlice(req.Photos),
		IsActive:      *req.IsActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := h.repo.CreateProperty(property); err != nil {
		h.logger.Error("Failed to create property", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	h.stats.Invalidate(c.Request.Context(), tenantID)

	h.logger.Info("Property created",
		zap.String("property_id", property.ID),
		zap.String("tenant_id", tenantID),
	)

	c.JSON(http.StatusCreated, property)
}

func (h *Handler) GetProperty(c *gin.Context) {
	propertyID := c.Param("id")
	tenantID := c.GetString("tenant_id")

	property, err := h.repo.GetProperty(propertyID, tenantID)
	if err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		h.logger.Error("Failed to get property", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *Handler) ListProperties(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	properties, err := h.repo.GetPropertiesByTenant(tenantID)
	if err != nil {
		h.logger.Error("Failed to list properties", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"total":      len(properties),
	})
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	propertyID := c.Param("id")
	tenantID := c.GetString("tenant_id")

	property, err := h.repo.GetProperty(propertyID, tenantID)
	if err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property.Name = req.Name
	property.Description = req.Description
	property.City = req.City
	property.Address = req.Address
	property.PricePerNight = req.PricePerNight
	property.MaxGuests = req.MaxGuests
	property.Bedrooms = req.Bedrooms
	property.Amenities = db.JSONB(req.Amenities)
	property.Photos = db.StringSlice(req.Photos)
	property.IsActive = *req.IsActive
	property.UpdatedAt = time.Now()

	if err := h.repo.UpdateProperty(property); err != nil {
		h.logger.Error("Failed to update property", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	h.stats.Invalidate(c.Request.Context(), tenantID)

	c.JSON(http.StatusOK, property)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	propertyID := c.Param("id")
	tenantID := c.GetString("tenant_id")

	if _, err := h.repo.GetProperty(propertyID, tenantID); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.repo.DeleteProperty(propertyID, tenantID); err != nil {
		h.logger.Error("Failed to delete property", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	h.stats.Invalidate(c.Request.Context(), tenantID)

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}
