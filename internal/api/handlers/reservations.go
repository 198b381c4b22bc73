package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stayflow/stayflow-backend/internal/db"
)

// Reservation payloads use db.FlexDate for check-in/check-out so data
// exported from other booking platforms (Firestore dumps, epoch
// timestamps, plain dates) imports without client-side conversion.
type ReservationRequest struct {
	PropertyID string      `json:"property_id" binding:"required,uuid"`
	GuestName  string      `json:"guest_name" binding:"required,min=1,max=255"`
	GuestPhone string      `json:"guest_phone"`
	Status     string      `json:"status" binding:"required,oneof=pending confirmed cancelled checked_in checked_out visit"`
	CheckIn    db.FlexDate `json:"check_in" binding:"required"`
	CheckOut   db.FlexDate `json:"check_out" binding:"required"`
	Guests     int         `json:"guests" binding:"omitempty,min=1,max=50"`
	TotalPrice *float64    `json:"total_price"`
	Notes      string      `json:"notes"`
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := c.GetString("tenant_id")

	property, err := h.repo.GetProperty(req.PropertyID, tenantID)
	if err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	reservation := &db.Reservation{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		PropertyID: req.PropertyID,
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		Status:     db.ReservationStatus(req.Status),
		CheckIn:    req.CheckIn.Time,
		CheckOut:   req.CheckOut.Time,
		Guests:     req.Guests,
		Notes:      req.Notes,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if req.TotalPrice != nil {
		reservation.TotalPrice = *req.TotalPrice
	} else {
		reservation.TotalPrice = float64(reservation.Nights()) * property.PricePerNight
	}

	if err := h.repo.CreateReservation(reservation); err != nil {
		h.logger.Error("Failed to create reservation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}

	h.stats.Invalidate(c.Request.Context(), tenantID)

	h.logger.Info("Reservation created",
		zap.String("reservation_id", reservation.ID),
		zap.String("tenant_id", tenantID),
		zap.String("status", string(reservation.Status)),
	)

	c.JSON(http.StatusCreated, reservation)
}

func (h *Handler) GetReservation(c *gin.Context) {
	reservationID := c.Param("id")
	tenantID := c.GetString("tenant_id")

	reservation, err := h.repo.GetReservation(reservationID, tenantID)
	if err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		h.logger.Error("Failed to get reservation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func (h *Handler) ListReservations(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := db.ReservationFilter{
		Status:     db.ReservationStatus(c.Query("status")),
		PropertyID: c.Query("property_id"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	if filter.Status != "" && !filter.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		filter.To = &t
	}

	reservations, err := h.repo.GetReservationsByTenant(tenantID, filter)
	if err != nil {
		h.logger.Error("Failed to list reservations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"page":         page,
		"limit":        limit,
	})
}

func (h *Handler) UpdateReservation(c *gin.Context) {
	reservationID := c.Param("id")
	tenantID := c.GetString("tenant_id")

	reservation, err := h.repo.GetReservation(reservationID, tenantID)
	if err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newStatus := db.ReservationStatus(req.Status)
	if reservation.Status.IsTerminal() && newStatus != reservation.Status {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Reservation is " + string(reservation.Status) + " and cannot change status",
		})
		return
	}

	reservation.GuestName = req.GuestName
	reservation.GuestPhone = req.GuestPhone
	reservation.Status = newStatus
	reservation.CheckIn = req.CheckIn.Time
	reservation.CheckOut = req.CheckOut.Time
	reservation.Guests = req.Guests
	reservation.Notes = req.Notes
	if req.TotalPrice != nil {
		reservation.TotalPrice = *req.TotalPrice
	}
	reservation.UpdatedAt = time.Now()

	if err := h.repo.UpdateReservation(reservation); err != nil {
		h.logger.Error("Failed to update reservation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
		return
	}

	h.stats.Invalidate(c.Request.Context(), tenantID)

	c.JSON(http.StatusOK, reservation)
}

func (h *Handler) DeleteReservation(c *gin.Context) {
	reservationID := c.Param("id")
	tenantID := c.GetString("tenant_id")

	if _, err := h.repo.GetReservation(reservationID, tenantID); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.repo.DeleteReservation(reservationID, tenantID); err != nil {
		h.logger.Error("Failed to delete reservation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reservation"})
		return
	}

	h.stats.Invalidate(c.Request.Context(), tenantID)

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted"})
}

type ImportReservationsRequest struct {
	Reservations []ReservationRequest `json:"reservations" binding:"required,min=1,max=500,dive"`
}

// ImportReservations bulk-loads reservations exported from another
// platform. Rows referencing unknown properties are reported back and
// skipped rather than failing the whole batch.
func (h *Handler) ImportReservations(c *gin.Context) {
	var req ImportReservationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := c.GetString("tenant_id")

	properties, err := h.repo.GetPropertiesByTenant(tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	known := make(map[string]bool, len(properties))
	for _, p := range properties {
		known[p.ID] = true
	}

	var toInsert []*db.Reservation
	var skipped []int
	for i, row := range req.Reservations {
		if !known[row.PropertyID] {
			skipped = append(skipped, i)
			continue
		}

		reservation := &db.Reservation{
			ID:         uuid.New().String(),
			TenantID:   tenantID,
			PropertyID: row.PropertyID,
			GuestName:  row.GuestName,
			GuestPhone: row.GuestPhone,
			Status:     db.ReservationStatus(row.Status),
			CheckIn:    row.CheckIn.Time,
			CheckOut:   row.CheckOut.Time,
			Guests:     row.Guests,
			Notes:      row.Notes,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if row.TotalPrice != nil {
			reservation.TotalPrice = *row.TotalPrice
		}
		toInsert = append(toInsert, reservation)
	}

	if err := h.repo.BulkInsertReservations(toInsert); err != nil {
		h.logger.Error("Failed to import reservations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import reservations"})
		return
	}

	h.stats.Invalidate(c.Request.Context(), tenantID)

	h.logger.Info("Reservations imported",
		zap.String("tenant_id", tenantID),
		zap.Int("imported", len(toInsert)),
		zap.Int("skipped", len(skipped)),
	)

	c.JSON(http.StatusOK, gin.H{
		"imported":     len(toInsert),
		"skipped_rows": skipped,
	})
}
