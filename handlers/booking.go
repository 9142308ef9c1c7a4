package handlers

import (
	"net/http"

	"github.com/renjoshini/hereforyou/models"
	"github.com/renjoshini/hereforyou/services/booking"
	"github.com/renjoshini/hereforyou/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}
	input.CustomerID = userID

	created, err := h.Service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"data":    created,
	})
}

// GetMyBookings handles GET /api/bookings/my-bookings.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	filter, ok := listFilterFromQuery(c)
	if !ok {
		return
	}

	page, err := h.Service.ListCustomerBookings(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       page.Bookings,
		"pagination": page.Pagination,
	})
}

// GetProfessionalBookings handles GET /api/bookings/professional-bookings.
func (h *BookingHandler) GetProfessionalBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	filter, ok := listFilterFromQuery(c)
	if !ok {
		return
	}

	page, err := h.Service.ListProfessionalBookings(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       page.Bookings,
		"pagination": page.Pagination,
	})
}

// GetBooking handles GET /api/bookings/:id, where id is a booking code or internal id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": b})
}

// UpdateStatus handles PUT /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.StatusUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	updated, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Logger.Debug("Status updated via API",
		zap.String("bookingCode", updated.BookingCode), zap.String("status", string(updated.Status)))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking status updated successfully",
		"data":    updated,
	})
}

// CancelBooking handles PUT /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.CancelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Cancellation reason is required", err.Error())
		return
	}

	result, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"), userID, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
		"data":    result,
	})
}

// UpdateLocation handles PUT /api/bookings/:id/location.
func (h *BookingHandler) UpdateLocation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.LocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Valid latitude and longitude are required", err.Error())
		return
	}

	if err := h.Service.UpdateLocation(c.Request.Context(), c.Param("id"), userID, *input.Latitude, *input.Longitude); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Location updated successfully"})
}

// RecordActualCost handles PUT /api/bookings/:id/cost.
func (h *BookingHandler) RecordActualCost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.ActualCostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	updated, err := h.Service.RecordActualCost(c.Request.Context(), c.Param("id"), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Actual cost recorded",
		"data":    updated,
	})
}

// GetAvailability handles GET /api/professionals/:id/availability.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	cal, err := h.Service.GetAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cal})
}
