package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shutterhub/models"
	booking "shutterhub/services/booking"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// actorID returns the authenticated actor set by the auth middleware.
func actorID(c *gin.Context) (string, bool) {
	id, exists := c.Get("actorID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id.(string), true
}

// CreateBookingHandler creates a booking (online or manual source).
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListBookingsHandler lists bookings matching query filters.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}

	var filter models.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter", "details": err.Error()})
		return
	}

	bookings, err := h.Service.ListBookings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBookingHandler fetches one booking by id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}

	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ConfirmPaymentHandler charges the requester and confirms the booking.
func (h *BookingHandler) ConfirmPaymentHandler(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	b, err := h.Service.ConfirmPayment(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateStatusHandler applies a lifecycle transition.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, actor)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler cancels the booking on behalf of either party.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	b, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBookingHandler removes a booking record entirely.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteBooking(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
